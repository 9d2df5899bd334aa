package classify

import (
	"fmt"
	"github.com/packagewjx/feature-clusterer/pkg/core"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"math"
	"math/rand"
	"time"
)

var ErrUnmappedEmbedding = fmt.Errorf("谱嵌入中的点无法映射回原始点")

type SpectralOption func(s *Spectral)

func WithEigensolver(solver Eigensolver) SpectralOption {
	return func(s *Spectral) {
		if solver != nil {
			s.solver = solver
		}
	}
}

func WithRand(rnd *rand.Rand) SpectralOption {
	return func(s *Spectral) {
		if rnd != nil {
			s.rnd = rnd
		}
	}
}

func WithLogger(logger *zap.Logger) SpectralOption {
	return func(s *Spectral) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Spectral 谱聚类：以距离中位数为带宽构造高斯核相似度图，取对称归一化拉普拉斯矩阵最小特征值对应的
// 特征向量作为嵌入，再用KMeans对嵌入聚类。非并发安全。
type Spectral struct {
	k       int
	measure core.DistanceMeasure
	solver  Eigensolver
	rnd     *rand.Rand
	logger  *zap.Logger
	cache   *PointDistanceCache
}

func NewSpectral(k int, measure core.DistanceMeasure, opts ...SpectralOption) (*Spectral, error) {
	if k < 1 {
		return nil, errors.Wrapf(ErrInvalidK, "现在为%d", k)
	}
	if measure == nil {
		measure = core.SquaredEuclidean{}
	}

	s := &Spectral{
		k:       k,
		measure: measure,
		solver:  GonumEigensolver{},
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  zap.NewNop(),
		cache:   NewPointDistanceCache(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Spectral) K() int {
	return s.k
}

func (s *Spectral) Cluster(points []core.Point) ([][]core.Point, error) {
	n := len(points)

	// 以ID为下标的原始点，用于将嵌入空间的聚类结果映射回来
	original := make([]*core.Point, n)
	for i := range points {
		p := &points[i]
		if p.ID < 0 || p.ID >= n || original[p.ID] != nil {
			return nil, errors.Wrapf(ErrNonContiguousIds, "ID为%d，点数为%d", p.ID, n)
		}
		original[p.ID] = p
	}

	if n == 0 {
		return [][]core.Point{}, nil
	}
	if n <= s.k {
		result := make([][]core.Point, n)
		for i, p := range points {
			result[i] = []core.Point{p}
		}
		return result, nil
	}

	if err := s.cache.Setup(points, s.measure); err != nil {
		return nil, err
	}

	laplacian := s.laplacian(n)
	vectors, rank, err := s.solver.SymmetricEigendecompose(laplacian)
	if err != nil {
		return nil, errors.Wrap(err, "计算拉普拉斯矩阵特征向量出错")
	}

	effectiveK := max(n-rank, s.k)
	if effectiveK > s.k {
		s.logger.Debug("相似度图不连通，使用更多的特征向量",
			zap.Int("n", n), zap.Int("rank", rank), zap.Int("k", s.k), zap.Int("effectiveK", effectiveK))
	}

	embedding := embed(vectors, n, effectiveK)

	random, err := NewRandom[core.Point](s.k, s.rnd)
	if err != nil {
		return nil, err
	}
	kmeans := NewKMeans[core.Point](random.Centroids, core.Mean, core.SquaredEuclideanDistance)

	clusters := kmeans.Cluster(embedding)
	result := make([][]core.Point, len(clusters))
	for i, cluster := range clusters {
		result[i] = make([]core.Point, len(cluster))
		for j, p := range cluster {
			if p.ID < 0 || p.ID >= n || original[p.ID] == nil {
				return nil, errors.Wrapf(ErrUnmappedEmbedding, "ID为%d", p.ID)
			}
			result[i][j] = *original[p.ID]
		}
	}

	return result, nil
}

// laplacian 构造 L = I - D^(-1/2)·W·D^(-1/2)，W[i][j] = exp(-dist²/denom)
func (s *Spectral) laplacian(n int) *mat.SymDense {
	squared := s.measure.IsSquared()
	median := s.cache.Threshold()
	denom := median
	if !squared {
		denom = median * median
	}

	weights := mat.NewSymDense(n, nil)
	degree := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			dist := s.cache.distances[i][j]
			dist2 := dist
			if !squared {
				dist2 = dist * dist
			}
			w := similarity(dist2, denom)
			weights.SetSym(i, j, w)
			degree[i] += w
			degree[j] += w
		}
	}

	invSqrt := make([]float64, n)
	for i, d := range degree {
		if d > 0 {
			invSqrt[i] = 1 / math.Sqrt(d)
		}
	}

	laplacian := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		laplacian.SetSym(i, i, 1)
		for j := 0; j < i; j++ {
			laplacian.SetSym(i, j, -invSqrt[i]*weights.At(i, j)*invSqrt[j])
		}
	}
	return laplacian
}

// 带宽为0（超过一半的点对重合）时，重合点相似度为1，其余为0
func similarity(dist2, denom float64) float64 {
	if denom > 0 {
		return math.Exp(-dist2 / denom)
	}
	if dist2 == 0 {
		return 1
	}
	return 0
}

// embed 取最小的effectiveK个特征值对应的特征向量作为嵌入，每行归一化为单位长度，ID为行号
func embed(vectors *mat.Dense, n, effectiveK int) []core.Point {
	result := make([]core.Point, n)
	for i := 0; i < n; i++ {
		row := make([]float32, effectiveK)
		norm := 0.0
		for j := 0; j < effectiveK; j++ {
			v := vectors.At(i, j)
			norm += v * v
		}
		norm = math.Sqrt(norm)
		for j := 0; j < effectiveK; j++ {
			if norm > 0 {
				row[j] = float32(vectors.At(i, j) / norm)
			}
		}
		result[i] = core.Point{ID: i, Coordinates: row}
	}
	return result
}
