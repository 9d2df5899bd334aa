package clusterer

import (
	"github.com/packagewjx/feature-clusterer/internal/classify"
	"github.com/packagewjx/feature-clusterer/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sort"
	"strings"
	"testing"
)

type workload struct {
	name     string
	features [2]float32
}

func extract(w workload) []float32 {
	return w.features[:]
}

var workloads = []workload{
	{"a", [2]float32{0, 0}},
	{"b", [2]float32{0, 1}},
	{"c", [2]float32{10, 10}},
	{"d", [2]float32{10, 11}},
}

func names(m map[workload][]float32) string {
	result := make([]string, 0, len(m))
	for w := range m {
		result = append(result, w.name)
	}
	sort.Strings(result)
	return strings.Join(result, "")
}

func partition(clusters []map[workload][]float32) []string {
	result := make([]string, len(clusters))
	for i, c := range clusters {
		result[i] = names(c)
	}
	sort.Strings(result)
	return result
}

func TestClusterer_FourPoints(t *testing.T) {
	greedy, err := NewGreedy[workload](core.SquaredEuclidean{}, 2)
	require.NoError(t, err)
	kmeans, err := New[workload](Config{Algorithm: KMeans, K: 2, Seed: 1})
	require.NoError(t, err)
	spectral, err := New[workload](Config{Algorithm: Spectral, K: 2, Seed: 1})
	require.NoError(t, err)

	for _, c := range []*Clusterer[workload]{greedy, kmeans, spectral, NewAutomatic[workload](nil)} {
		clusters, err := c.Cluster(workloads, extract)
		require.NoError(t, err)
		assert.Equal(t, []string{"ab", "cd"}, partition(clusters))
	}
}

func TestClusterer_RoundTrip(t *testing.T) {
	kmeans, _ := NewKMeans[workload](nil, 2)
	spectral, _ := NewSpectral[workload](nil, 3)
	pp, _ := NewKMeansPP[workload](2, 5)
	for _, c := range []*Clusterer[workload]{kmeans, spectral, pp, NewAutomatic[workload](core.Euclidean{})} {
		clusters, err := c.Cluster(workloads, extract)
		require.NoError(t, err)

		var features [][]float32
		for _, cluster := range clusters {
			for w, f := range cluster {
				assert.Equal(t, extract(w), f)
				features = append(features, f)
			}
		}
		var expected [][]float32
		for _, w := range workloads {
			expected = append(expected, extract(w))
		}
		assert.ElementsMatch(t, expected, features)
	}
}

func TestClusterer_SortedBySize(t *testing.T) {
	items := append([]workload{{"e", [2]float32{10, 12}}}, workloads...)
	greedy, _ := NewGreedy[workload](nil, 5)
	clusters, err := greedy.Cluster(items, extract)
	require.NoError(t, err)
	require.Equal(t, 2, len(clusters))
	assert.Equal(t, "cde", names(clusters[0]))
	assert.Equal(t, "ab", names(clusters[1]))
}

func TestClusterer_SortStableOnTies(t *testing.T) {
	greedy, _ := NewGreedy[workload](nil, 0)
	clusters, err := greedy.Cluster(workloads, extract)
	require.NoError(t, err)
	require.Equal(t, 4, len(clusters))
	for i, w := range workloads {
		assert.Equal(t, w.name, names(clusters[i]))
	}
}

func TestClusterer_Empty(t *testing.T) {
	for _, algorithm := range classify.AlgorithmTypes() {
		c, err := New[workload](Config{Algorithm: algorithm, K: 2})
		require.NoError(t, err)
		clusters, err := c.Cluster(nil, extract)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(clusters))
	}
}

func TestNew_Invalid(t *testing.T) {
	_, err := NewKMeans[workload](nil, 0)
	assert.Equal(t, classify.ErrInvalidK, errors.Cause(err))

	_, err = NewSpectral[workload](nil, -1)
	assert.Equal(t, classify.ErrInvalidK, errors.Cause(err))

	_, err = New[workload](Config{Algorithm: "dbscan"})
	assert.Error(t, err)
}

func TestClusterer_ClusterPoints(t *testing.T) {
	c, _ := NewGreedy[int](nil, 2)
	points := core.PointsFromList(workloads, extract)
	clusters, err := c.ClusterPoints(points)
	require.NoError(t, err)
	assert.Equal(t, 2, len(clusters))

	_, err = NewAutomatic[int](nil).ClusterPoints([]core.Point{core.NewPoint(7, []float32{1})})
	assert.Equal(t, classify.ErrNonContiguousIds, errors.Cause(err))
}
