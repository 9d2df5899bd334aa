package classify

import (
	"fmt"
	"gonum.org/v1/gonum/mat"
	"math"
)

// Eigensolver 对实对称矩阵做特征分解。返回的特征向量矩阵各列按特征值升序排列，同时返回矩阵的数值秩。
type Eigensolver interface {
	SymmetricEigendecompose(m *mat.SymDense) (vectors *mat.Dense, rank int, err error)
}

type GonumEigensolver struct{}

var _ Eigensolver = GonumEigensolver{}

func (GonumEigensolver) SymmetricEigendecompose(m *mat.SymDense) (*mat.Dense, int, error) {
	var eigen mat.EigenSym
	if ok := eigen.Factorize(m, true); !ok {
		return nil, 0, fmt.Errorf("对称矩阵特征分解失败")
	}

	values := eigen.Values(nil)
	vectors := &mat.Dense{}
	eigen.VectorsTo(vectors)

	return vectors, NumericalRank(values), nil
}

// NumericalRank 统计绝对值大于 n·ε·max|λ| 的特征值个数
func NumericalRank(eigenvalues []float64) int {
	largest := 0.0
	for _, v := range eigenvalues {
		largest = math.Max(largest, math.Abs(v))
	}
	tolerance := float64(len(eigenvalues)) * epsilon * largest

	rank := 0
	for _, v := range eigenvalues {
		if math.Abs(v) > tolerance {
			rank++
		}
	}
	return rank
}

// 双精度浮点数的机器精度
const epsilon = 2.220446049250313e-16
