package classify

import (
	"github.com/packagewjx/feature-clusterer/pkg/core"
	"github.com/packagewjx/kmeanspp"
	"github.com/pkg/errors"
	"sort"
)

const KMeansPPDefaultRound = 30

// KMeansPP 使用kmeanspp库的KMeans++实现作为基线算法，仅支持平方欧氏距离
type KMeansPP struct {
	k     int
	round int
}

func NewKMeansPP(k, round int) (*KMeansPP, error) {
	if k < 1 {
		return nil, errors.Wrapf(ErrInvalidK, "现在为%d", k)
	}
	if round <= 0 {
		round = KMeansPPDefaultRound
	}
	return &KMeansPP{k: k, round: round}, nil
}

func (k *KMeansPP) Cluster(points []core.Point) ([][]core.Point, error) {
	if len(points) == 0 {
		return [][]core.Point{}, nil
	}
	if len(points) <= k.k {
		result := make([][]core.Point, len(points))
		for i, p := range points {
			result[i] = []core.Point{p}
		}
		return result, nil
	}

	data := make([][]float32, len(points))
	for i, p := range points {
		data[i] = p.Coordinates
	}
	_, class := kmeanspp.KMeansPP(k.k, k.round, data)
	if len(class) != len(points) {
		return nil, errors.Errorf("KMeans++结果数量有误，输入%d个点，得到%d个类别", len(points), len(class))
	}

	// 库返回的类别编号不一定从0开始，按编号排序后转换为划分
	groups := make(map[int][]core.Point)
	for i, c := range class {
		groups[c] = append(groups[c], points[i])
	}
	labels := make([]int, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	result := make([][]core.Point, len(labels))
	for i, label := range labels {
		result[i] = groups[label]
	}
	return result, nil
}
