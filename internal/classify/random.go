package classify

import (
	"fmt"
	"github.com/pkg/errors"
	"math/rand"
	"time"
)

var ErrInvalidK = fmt.Errorf("类别数量必须大于0")

// 随机划分保证所有桶非空的最大尝试次数，超过后从最大的桶中挪出元素填补空桶
const randomRetryLimit = 64

// Random 将输入均匀随机地划分为k个桶，作为基线算法，也用于为KMeans生成k个非空的初始中心
type Random[T any] struct {
	k   int
	rnd *rand.Rand
}

func NewRandom[T any](k int, rnd *rand.Rand) (*Random[T], error) {
	if k < 1 {
		return nil, errors.Wrapf(ErrInvalidK, "现在为%d", k)
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Random[T]{k: k, rnd: rnd}, nil
}

func (r *Random[T]) K() int {
	return r.k
}

func (r *Random[T]) Cluster(input []T) [][]T {
	clusters := make([][]T, r.k)
	for _, item := range input {
		i := r.rnd.Intn(r.k)
		clusters[i] = append(clusters[i], item)
	}
	return clusters
}

// Centroids 返回每个非空桶的第一个元素。元素数量不超过k时，每个元素都是中心。
func (r *Random[T]) Centroids(input []T) []T {
	if len(input) <= r.k {
		result := make([]T, len(input))
		copy(result, input)
		return result
	}

	var clusters [][]T
	for attempt := 0; ; attempt++ {
		clusters = r.Cluster(input)
		if allNonEmpty(clusters) {
			break
		}
		if attempt >= randomRetryLimit {
			fillEmpty(clusters)
			break
		}
	}

	result := make([]T, r.k)
	for i, cluster := range clusters {
		result[i] = cluster[0]
	}
	return result
}

func allNonEmpty[T any](clusters [][]T) bool {
	for _, cluster := range clusters {
		if len(cluster) == 0 {
			return false
		}
	}
	return true
}

// 要求元素总数不少于桶数
func fillEmpty[T any](clusters [][]T) {
	for i := range clusters {
		if len(clusters[i]) != 0 {
			continue
		}
		largest := 0
		for j := range clusters {
			if len(clusters[j]) > len(clusters[largest]) {
				largest = j
			}
		}
		last := len(clusters[largest]) - 1
		clusters[i] = append(clusters[i], clusters[largest][last])
		clusters[largest] = clusters[largest][:last]
	}
}
