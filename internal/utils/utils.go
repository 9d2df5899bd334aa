package utils

import (
	"math"
)

// SelectKth 返回arr排序后第k个位置的值。会打乱arr的顺序。
func SelectKth(arr []float64, k int) float64 {
	if k < 0 || k >= len(arr) {
		return math.NaN()
	}

	l := 0
	r := len(arr) - 1
	for l < r {
		lt, gt := Partition(arr, l, r)
		if k < lt {
			r = lt - 1
		} else if k > gt {
			l = gt + 1
		} else {
			break
		}
	}

	return arr[k]
}

// Partition 以[l, r]中间的元素为轴三路划分，返回与轴相等的区间[lt, gt]。
// 划分后[l, lt)中的元素小于轴，(gt, r]中的元素大于轴，重复元素一次即可跳过。
func Partition(arr []float64, l, r int) (lt, gt int) {
	if l > r {
		return l, r
	}
	pivot := arr[l+(r-l)/2]

	lt, gt = l, r
	for i := l; i <= gt; {
		if arr[i] < pivot {
			arr[lt], arr[i] = arr[i], arr[lt]
			lt++
			i++
		} else if arr[i] > pivot {
			arr[gt], arr[i] = arr[i], arr[gt]
			gt--
		} else {
			i++
		}
	}

	return lt, gt
}

// Median 返回中位数，偶数个时取中间两个的平均值，空数组返回NaN。不修改输入。
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}

	arr := make([]float64, n)
	copy(arr, values)

	upper := SelectKth(arr, n/2)
	if n%2 == 1 {
		return upper
	}
	// SelectKth之后，n/2之前的元素都不大于upper
	lower := arr[0]
	for i := 1; i < n/2; i++ {
		if arr[i] > lower {
			lower = arr[i]
		}
	}
	return (lower + upper) / 2
}
