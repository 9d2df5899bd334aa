package classify

import (
	"github.com/packagewjx/feature-clusterer/pkg/core"
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

// 两组相距很远的点：{(0,0),(0,1)} 与 {(10,10),(10,11)}
func fourPoints() []core.Point {
	return []core.Point{
		core.NewPoint(0, []float32{0, 0}),
		core.NewPoint(1, []float32{0, 1}),
		core.NewPoint(2, []float32{10, 10}),
		core.NewPoint(3, []float32{10, 11}),
	}
}

// 三个高斯团，每团size个点，ID连续
func blobs(rnd *rand.Rand, size int) []core.Point {
	centers := [][]float32{{0, 0}, {50, 50}, {-50, 50}}
	points := make([]core.Point, 0, size*len(centers))
	for _, center := range centers {
		for i := 0; i < size; i++ {
			points = append(points, core.NewPoint(len(points), []float32{
				center[0] + float32(rnd.NormFloat64()),
				center[1] + float32(rnd.NormFloat64()),
			}))
		}
	}
	return points
}

// 将划分转换为与类顺序无关的字符串，便于比较
func partitionKey(clusters [][]core.Point) string {
	keys := make([]string, 0, len(clusters))
	for _, cluster := range clusters {
		if len(cluster) == 0 {
			continue
		}
		ids := make([]int, len(cluster))
		for i, p := range cluster {
			ids[i] = p.ID
		}
		sort.Ints(ids)
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.Itoa(id)
		}
		keys = append(keys, strings.Join(parts, ","))
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

// 统计每个ID在划分中出现的次数
func idCounts(clusters [][]core.Point) map[int]int {
	counts := make(map[int]int)
	for _, cluster := range clusters {
		for _, p := range cluster {
			counts[p.ID]++
		}
	}
	return counts
}

func nonEmpty(clusters [][]core.Point) int {
	cnt := 0
	for _, cluster := range clusters {
		if len(cluster) > 0 {
			cnt++
		}
	}
	return cnt
}
