package classify

import (
	"fmt"
	"github.com/packagewjx/feature-clusterer/pkg/core"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"math/rand"
	"time"
)

// 聚类算法接口。实例持有可变状态，非并发安全，每次并发调用应使用独立的实例。
type Algorithm interface {
	Cluster(points []core.Point) ([][]core.Point, error)
}

type AlgorithmType string

const (
	GreedyType    = AlgorithmType("greedy")
	KMeansType    = AlgorithmType("kmeans")
	SpectralType  = AlgorithmType("spectral")
	AutomaticType = AlgorithmType("automatic")
	KMeansPPType  = AlgorithmType("kmeanspp")
)

func AlgorithmTypes() []AlgorithmType {
	return []AlgorithmType{AutomaticType, GreedyType, KMeansType, SpectralType, KMeansPPType}
}

type Options struct {
	K            int     // kmeans、spectral、kmeanspp使用
	Threshold    float64 // greedy使用
	RefreshRatio float64 // greedy的中心刷新比例，0表示默认值
	Round        int     // kmeanspp的迭代轮次，0表示默认值
	Measure      core.DistanceMeasure
	Rand         *rand.Rand
	Logger       *zap.Logger
	Eigensolver  Eigensolver
}

// Complete 填充默认值并检查参数
func (o *Options) Complete(algorithmType AlgorithmType) error {
	if o.Measure == nil {
		o.Measure = core.SquaredEuclidean{}
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Eigensolver == nil {
		o.Eigensolver = GonumEigensolver{}
	}
	if o.RefreshRatio < 0 {
		return fmt.Errorf("中心刷新比例不能为负数，现在为%f", o.RefreshRatio)
	}

	switch algorithmType {
	case KMeansType, SpectralType, KMeansPPType:
		if o.K < 1 {
			return errors.Wrapf(ErrInvalidK, "现在为%d", o.K)
		}
	case GreedyType:
		if o.Threshold < 0 {
			return fmt.Errorf("贪心聚类的距离阈值不能为负数，现在为%f", o.Threshold)
		}
	}
	return nil
}

func NewAlgorithm(algorithmType AlgorithmType, opts *Options) (Algorithm, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := opts.Complete(algorithmType); err != nil {
		return nil, err
	}

	switch algorithmType {
	case GreedyType:
		return &greedyRunner{
			greedy: NewGreedy[core.Point](core.Mean, opts.Measure.Distance, opts.Threshold,
				WithRefreshRatio[core.Point](opts.RefreshRatio)),
		}, nil
	case KMeansType:
		random, err := NewRandom[core.Point](opts.K, opts.Rand)
		if err != nil {
			return nil, err
		}
		return &kMeansRunner{
			kmeans: NewKMeans[core.Point](random.Centroids, core.Mean, opts.Measure.Distance),
		}, nil
	case SpectralType:
		spectral, err := NewSpectral(opts.K, opts.Measure,
			WithEigensolver(opts.Eigensolver), WithRand(opts.Rand), WithLogger(opts.Logger))
		if err != nil {
			return nil, err
		}
		return spectral, nil
	case AutomaticType:
		return NewAutomatic(opts.Measure, opts.Logger), nil
	case KMeansPPType:
		if _, ok := opts.Measure.(core.SquaredEuclidean); !ok {
			opts.Logger.Warn("KMeans++仅支持平方欧氏距离，忽略指定的距离度量")
		}
		pp, err := NewKMeansPP(opts.K, opts.Round)
		if err != nil {
			return nil, err
		}
		return pp, nil
	default:
		return nil, fmt.Errorf("不支持的聚类算法：%s", algorithmType)
	}
}

type greedyRunner struct {
	greedy *Greedy[core.Point]
}

func (g *greedyRunner) Cluster(points []core.Point) ([][]core.Point, error) {
	return g.greedy.Cluster(points), nil
}

type kMeansRunner struct {
	kmeans *KMeans[core.Point]
}

func (k *kMeansRunner) Cluster(points []core.Point) ([][]core.Point, error) {
	return k.kmeans.Cluster(points), nil
}
