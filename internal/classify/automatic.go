package classify

import (
	"github.com/packagewjx/feature-clusterer/pkg/core"
	"go.uber.org/zap"
)

// Automatic 自动决定类别数量：以距离中位数为阈值贪心聚类，过滤掉过小的类，
// 剩下的中心作为KMeans的初始中心，KMeans使用medoid作为中心、缓存的距离作为度量。
type Automatic struct {
	measure core.DistanceMeasure
	cache   *PointDistanceCache
	logger  *zap.Logger
}

func NewAutomatic(measure core.DistanceMeasure, logger *zap.Logger) *Automatic {
	if measure == nil {
		measure = core.SquaredEuclidean{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Automatic{
		measure: measure,
		cache:   NewPointDistanceCache(),
		logger:  logger,
	}
}

func (a *Automatic) Cluster(points []core.Point) ([][]core.Point, error) {
	if len(points) == 0 {
		return [][]core.Point{}, nil
	}

	if err := a.cache.Setup(points, a.measure); err != nil {
		return nil, err
	}

	seeds := a.cache.Initialiser(points)
	if len(seeds) == 0 {
		// 所有类都过小时，保留贪心聚类的全部中心以覆盖所有点
		seeds, _ = NewGreedy[core.Point](a.cache.Centroid, a.cache.Distance, a.cache.Threshold()).Run(points)
	}

	a.logger.Debug("自动确定类别数量",
		zap.Int("points", len(points)),
		zap.Float64("threshold", a.cache.Threshold()),
		zap.Int("k", len(seeds)))

	kmeans := NewKMeans[core.Point](func([]core.Point) []core.Point {
		return seeds
	}, a.cache.Centroid, a.cache.Distance)

	return kmeans.Cluster(points), nil
}
