package classify

import (
	"fmt"
	"github.com/packagewjx/feature-clusterer/internal/utils"
	"github.com/packagewjx/feature-clusterer/pkg/core"
	"github.com/pkg/errors"
	"math"
)

var ErrNonContiguousIds = fmt.Errorf("点的ID必须连续地分布在[0, n)中")

// 初始化中心时过滤小类的比例
const (
	minClusterShareOfTotal   = 0.01
	minClusterShareOfLargest = 0.02
)

// PointDistanceCache 缓存一组点两两之间的距离，以ID为下标存储于下三角矩阵中。
// 点集或距离函数变化时必须重新Setup。非并发安全。
type PointDistanceCache struct {
	distances [][]float64
	samples   []float64
	threshold float64
}

func NewPointDistanceCache() *PointDistanceCache {
	return &PointDistanceCache{threshold: math.NaN()}
}

// Setup 计算所有点对的距离及其中位数。点数不变时复用已分配的矩阵。
func (c *PointDistanceCache) Setup(points []core.Point, measure core.DistanceMeasure) error {
	n := len(points)
	if err := checkContiguousIds(points); err != nil {
		return err
	}

	if len(c.distances) != n {
		c.distances = make([][]float64, n)
		for i := 0; i < n; i++ {
			c.distances[i] = make([]float64, i)
		}
		c.samples = make([]float64, 0, n*(n-1)/2)
	} else {
		c.samples = c.samples[:0]
	}

	for i, p := range points {
		for _, q := range points[:i] {
			d := measure.Distance(p, q)
			row, col := p.ID, q.ID
			if row < col {
				row, col = col, row
			}
			c.distances[row][col] = d
			c.samples = append(c.samples, d)
		}
	}
	c.threshold = utils.Median(c.samples)

	return nil
}

func (c *PointDistanceCache) Size() int {
	return len(c.distances)
}

func (c *PointDistanceCache) Distance(p, q core.Point) float64 {
	if p.ID == q.ID {
		return 0
	}
	row, col := p.ID, q.ID
	if row < col {
		row, col = col, row
	}
	return c.distances[row][col]
}

// Threshold 返回上次Setup记录的所有距离的中位数，没有任何点对时为NaN
func (c *PointDistanceCache) Threshold() float64 {
	return c.threshold
}

// Centroid 返回类的中心点（medoid），即到类内其他成员距离之和最小的成员，相等时取先出现者
func (c *PointDistanceCache) Centroid(cluster []core.Point) core.Point {
	if len(cluster) == 0 {
		return core.Point{ID: core.SyntheticID}
	}

	best := 0
	bestSum := math.Inf(1)
	for i, p := range cluster {
		sum := 0.0
		for _, q := range cluster {
			sum += c.Distance(p, q)
		}
		if sum < bestSum {
			best = i
			bestSum = sum
		}
	}
	return cluster[best]
}

// Initialiser 以中位数为阈值做一次贪心聚类，过滤掉过小的类后，剩下的类中心作为KMeans的初始中心
func (c *PointDistanceCache) Initialiser(input []core.Point) []core.Point {
	greedy := NewGreedy[core.Point](c.Centroid, c.Distance, c.Threshold())
	centroids, clusters := greedy.Run(input)
	return filterCentroids(centroids, clusters, len(input))
}

func filterCentroids(centroids []core.Point, clusters [][]core.Point, total int) []core.Point {
	largest := 0
	for _, cluster := range clusters {
		largest = max(largest, len(cluster))
	}

	result := make([]core.Point, 0, len(centroids))
	for i, centroid := range centroids {
		size := float64(len(clusters[i]))
		if len(clusters[i]) > 1 &&
			size/float64(total) > minClusterShareOfTotal &&
			size/float64(largest) > minClusterShareOfLargest {
			result = append(result, centroid)
		}
	}
	return result
}

func checkContiguousIds(points []core.Point) error {
	n := len(points)
	seen := make([]bool, n)
	for _, p := range points {
		if p.ID < 0 || p.ID >= n {
			return errors.Wrapf(ErrNonContiguousIds, "ID为%d，点数为%d", p.ID, n)
		}
		if seen[p.ID] {
			return errors.Wrapf(ErrNonContiguousIds, "ID %d重复", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
