package classify

import (
	"math"
)

// 新旧中心距离小于此值视为未变化（约四位有效数字）
const convergenceTolerance = 1e-4

const (
	minIterations = 5
	maxIterations = 50
)

type CentroidInitialiser[T any] func(input []T) []T

// KMeans 通用的Lloyd算法。初始中心的数量决定了k。
type KMeans[T any] struct {
	initialiser CentroidInitialiser[T]
	updater     CentroidUpdater[T]
	distance    DistanceFunc[T]
}

func NewKMeans[T any](initialiser CentroidInitialiser[T], updater CentroidUpdater[T], distance DistanceFunc[T]) *KMeans[T] {
	return &KMeans[T]{
		initialiser: initialiser,
		updater:     updater,
		distance:    distance,
	}
}

// MaxIterations 返回n个元素时的最大迭代次数：max(5, min(round(sqrt(n)), 50))
func MaxIterations(n int) int {
	return max(minIterations, min(int(math.Round(math.Sqrt(float64(n)))), maxIterations))
}

// Cluster 返回长度为k的类列表，部分类可能为空
func (km *KMeans[T]) Cluster(input []T) [][]T {
	clusters, _ := km.run(input)
	return clusters
}

// run 额外返回实际的迭代次数
func (km *KMeans[T]) run(input []T) ([][]T, int) {
	centroids := append([]T(nil), km.initialiser(input)...)
	k := len(centroids)
	clusters := make([][]T, k)
	if k == 0 {
		return clusters, 0
	}

	limit := MaxIterations(len(input))
	iterations := 0
	for iterations < limit {
		iterations++

		for i := range clusters {
			clusters[i] = clusters[i][:0]
		}
		for _, item := range input {
			nearest := 0
			nearestDistance := math.Inf(1)
			for i, centroid := range centroids {
				if d := km.distance(centroid, item); d < nearestDistance {
					nearest = i
					nearestDistance = d
				}
			}
			clusters[nearest] = append(clusters[nearest], item)
		}

		converged := true
		for i, cluster := range clusters {
			if len(cluster) == 0 {
				continue
			}
			updated := km.updater(cluster)
			if math.Abs(km.distance(centroids[i], updated)) >= convergenceTolerance {
				converged = false
			}
			centroids[i] = updated
		}
		if converged {
			break
		}
	}

	return clusters, iterations
}
