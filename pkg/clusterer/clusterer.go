package clusterer

import (
	"github.com/packagewjx/feature-clusterer/internal/classify"
	"github.com/packagewjx/feature-clusterer/pkg/core"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"sort"
)

// Clusterer 将任意类型的元素通过特征提取函数转换为点后聚类，再转换回元素。
// 内部算法持有可变状态，非并发安全，并发调用时每个goroutine应使用独立的实例。
type Clusterer[T comparable] struct {
	algorithm classify.Algorithm
	logger    *zap.Logger
}

func New[T comparable](config Config) (*Clusterer[T], error) {
	if config.Algorithm == "" {
		config.Algorithm = Automatic
	}
	opts := config.options()
	algorithm, err := classify.NewAlgorithm(config.Algorithm, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "创建聚类算法%s出错", config.Algorithm)
	}
	return &Clusterer[T]{
		algorithm: algorithm,
		logger:    opts.Logger,
	}, nil
}

func NewAutomatic[T comparable](measure core.DistanceMeasure) *Clusterer[T] {
	c, _ := New[T](Config{Algorithm: Automatic, Measure: measure})
	return c
}

func NewGreedy[T comparable](measure core.DistanceMeasure, threshold float64) (*Clusterer[T], error) {
	return New[T](Config{Algorithm: Greedy, Measure: measure, Threshold: threshold})
}

func NewKMeans[T comparable](measure core.DistanceMeasure, k int) (*Clusterer[T], error) {
	return New[T](Config{Algorithm: KMeans, Measure: measure, K: k})
}

func NewSpectral[T comparable](measure core.DistanceMeasure, k int) (*Clusterer[T], error) {
	return New[T](Config{Algorithm: Spectral, Measure: measure, K: k})
}

func NewKMeansPP[T comparable](k, rounds int) (*Clusterer[T], error) {
	return New[T](Config{Algorithm: KMeansPP, K: k, Rounds: rounds})
}

// ClusterPoints 对点直接聚类。点的ID必须连续地分布在[0, n)中。
func (c *Clusterer[T]) ClusterPoints(points []core.Point) ([][]core.Point, error) {
	if len(points) == 0 {
		return [][]core.Point{}, nil
	}
	return c.algorithm.Cluster(points)
}

// Cluster 为每个元素分配连续的ID并提取特征后聚类。返回的每个类是元素到其特征的映射，
// 按类大小降序排列，大小相同时保持算法输出的顺序，空类不返回。
func (c *Clusterer[T]) Cluster(items []T, extractor func(T) []float32) ([]map[T][]float32, error) {
	points := core.PointsFromList(items, extractor)
	clusters, err := c.ClusterPoints(points)
	if err != nil {
		return nil, errors.Wrap(err, "聚类出错")
	}

	result := make([]map[T][]float32, 0, len(clusters))
	for _, cluster := range clusters {
		if len(cluster) == 0 {
			continue
		}
		m := make(map[T][]float32, len(cluster))
		for _, p := range cluster {
			m[items[p.ID]] = p.Coordinates
		}
		result = append(result, m)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return len(result[i]) > len(result[j])
	})

	c.logger.Debug("聚类完成", zap.Int("items", len(items)), zap.Int("clusters", len(result)))
	return result, nil
}
