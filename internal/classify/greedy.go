package classify

// 默认的中心刷新比例：类内新增成员数达到类大小的三分之一时重新计算中心
const DefaultRefreshRatio = 1.0 / 3.0

type CentroidUpdater[T any] func(cluster []T) T

type DistanceFunc[T any] func(a, b T) float64

type GreedyOption[T any] func(g *Greedy[T])

func WithRefreshRatio[T any](ratio float64) GreedyOption[T] {
	return func(g *Greedy[T]) {
		if ratio > 0 {
			g.refreshRatio = ratio
		}
	}
}

// Greedy 单遍贪心聚类。每个元素加入距离不超过阈值且最近的已有中心所在的类，否则自成一类。
// 类中心在累计的新增成员足够多时才重新计算。实例持有运行状态，非并发安全。
type Greedy[T any] struct {
	updater      CentroidUpdater[T]
	distance     DistanceFunc[T]
	threshold    float64
	refreshRatio float64

	centroids []T
	clusters  [][]T
	updates   []int
}

func NewGreedy[T any](updater CentroidUpdater[T], distance DistanceFunc[T], threshold float64, opts ...GreedyOption[T]) *Greedy[T] {
	g := &Greedy[T]{
		updater:      updater,
		distance:     distance,
		threshold:    threshold,
		refreshRatio: DefaultRefreshRatio,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Greedy[T]) Threshold() float64 {
	return g.threshold
}

// Run 返回各类的中心以及各类的成员，两者下标一一对应
func (g *Greedy[T]) Run(input []T) (centroids []T, clusters [][]T) {
	g.centroids = make([]T, 0)
	g.clusters = make([][]T, 0)
	g.updates = make([]int, 0)

	for _, item := range input {
		best := -1
		bestDistance := 0.0
		for i, centroid := range g.centroids {
			d := g.distance(centroid, item)
			if d <= g.threshold && (best == -1 || d < bestDistance) {
				best = i
				bestDistance = d
			}
		}

		if best == -1 {
			g.centroids = append(g.centroids, item)
			g.clusters = append(g.clusters, []T{item})
			g.updates = append(g.updates, 0)
			continue
		}

		g.clusters[best] = append(g.clusters[best], item)
		g.updates[best]++
		if float64(g.updates[best])/float64(len(g.clusters[best])) >= g.refreshRatio {
			g.centroids[best] = g.updater(g.clusters[best])
			g.updates[best] = 0
		}
	}

	return g.centroids, g.clusters
}

func (g *Greedy[T]) Cluster(input []T) [][]T {
	_, clusters := g.Run(input)
	return clusters
}
