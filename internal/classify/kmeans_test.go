package classify

import (
	"github.com/packagewjx/feature-clusterer/pkg/core"
	"github.com/stretchr/testify/assert"
	"math/rand"
	"testing"
)

func TestMaxIterations(t *testing.T) {
	assert.Equal(t, 5, MaxIterations(0))
	assert.Equal(t, 5, MaxIterations(4))
	assert.Equal(t, 7, MaxIterations(49))
	assert.Equal(t, 10, MaxIterations(100))
	assert.Equal(t, 50, MaxIterations(3000))
	assert.Equal(t, 50, MaxIterations(1000000))
}

func TestKMeans_AnySeedPair(t *testing.T) {
	points := fourPoints()
	for i := range points {
		for j := range points {
			if i == j {
				continue
			}
			seeds := []core.Point{points[i], points[j]}
			kmeans := NewKMeans[core.Point](func([]core.Point) []core.Point {
				return seeds
			}, core.Mean, core.SquaredEuclideanDistance)

			clusters, iterations := kmeans.run(points)
			assert.Equal(t, "0,1|2,3", partitionKey(clusters), "初始中心%d,%d", i, j)
			assert.LessOrEqual(t, iterations, MaxIterations(len(points)))
		}
	}
}

func TestKMeans_DoesNotModifySeeds(t *testing.T) {
	points := fourPoints()
	seeds := []core.Point{points[0], points[1]}
	kmeans := NewKMeans[core.Point](func([]core.Point) []core.Point {
		return seeds
	}, core.Mean, core.SquaredEuclideanDistance)
	kmeans.Cluster(points)
	assert.Equal(t, 0, seeds[0].ID)
	assert.Equal(t, 1, seeds[1].ID)
}

func TestKMeans_Completeness(t *testing.T) {
	points := blobs(rand.New(rand.NewSource(5)), 30)
	random, _ := NewRandom[core.Point](4, rand.New(rand.NewSource(5)))
	kmeans := NewKMeans[core.Point](random.Centroids, core.Mean, core.SquaredEuclideanDistance)

	clusters := kmeans.Cluster(points)
	assert.Equal(t, 4, len(clusters))
	assert.LessOrEqual(t, nonEmpty(clusters), 4)

	counts := idCounts(clusters)
	assert.Equal(t, len(points), len(counts))
	for _, c := range counts {
		assert.Equal(t, 1, c)
	}
}

func TestKMeans_NoCentroids(t *testing.T) {
	kmeans := NewKMeans[core.Point](func([]core.Point) []core.Point {
		return nil
	}, core.Mean, core.SquaredEuclideanDistance)
	clusters, iterations := kmeans.run(fourPoints())
	assert.Equal(t, 0, len(clusters))
	assert.Equal(t, 0, iterations)
}

func TestKMeans_StopsWhenConverged(t *testing.T) {
	// 初始中心已经是各类的均值，第一轮后中心不变
	points := fourPoints()
	seeds := []core.Point{
		core.NewPoint(core.SyntheticID, []float32{0, 0.5}),
		core.NewPoint(core.SyntheticID, []float32{10, 10.5}),
	}
	kmeans := NewKMeans[core.Point](func([]core.Point) []core.Point {
		return seeds
	}, core.Mean, core.SquaredEuclideanDistance)
	clusters, iterations := kmeans.run(points)
	assert.Equal(t, 1, iterations)
	assert.Equal(t, "0,1|2,3", partitionKey(clusters))
}
