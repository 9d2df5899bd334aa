package core

import (
	"fmt"
	"math"
	"strings"
)

// DistanceMeasure 为可插拔的距离函数。IsSquared表示Distance的结果是否已经是距离的平方，
// 谱聚类计算高斯核时依此决定是否需要平方。
type DistanceMeasure interface {
	Distance(a, b Point) float64
	IsSquared() bool
}

const (
	MeasureSquaredEuclidean = "squared-euclidean"
	MeasureEuclidean        = "euclidean"
	MeasureManhattan        = "manhattan"
)

// MeasureFunc 将普通函数适配为非平方的DistanceMeasure
type MeasureFunc func(a, b Point) float64

func (f MeasureFunc) Distance(a, b Point) float64 { return f(a, b) }
func (f MeasureFunc) IsSquared() bool              { return false }

// SquaredMeasureFunc 将返回平方距离的函数适配为DistanceMeasure
type SquaredMeasureFunc func(a, b Point) float64

func (f SquaredMeasureFunc) Distance(a, b Point) float64 { return f(a, b) }
func (f SquaredMeasureFunc) IsSquared() bool              { return true }

type SquaredEuclidean struct{}

func (SquaredEuclidean) Distance(a, b Point) float64 { return SquaredEuclideanDistance(a, b) }
func (SquaredEuclidean) IsSquared() bool              { return true }

type Euclidean struct{}

func (Euclidean) Distance(a, b Point) float64 { return math.Sqrt(SquaredEuclideanDistance(a, b)) }
func (Euclidean) IsSquared() bool              { return false }

type Manhattan struct{}

func (Manhattan) Distance(a, b Point) float64 {
	n := min(len(a.Coordinates), len(b.Coordinates))
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(float64(a.Coordinates[i]) - float64(b.Coordinates[i]))
	}
	return sum
}

func (Manhattan) IsSquared() bool { return false }

// SquaredEuclideanDistance 按两者中较短的维度计算，维度不一致时不报错
func SquaredEuclideanDistance(a, b Point) float64 {
	n := min(len(a.Coordinates), len(b.Coordinates))
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a.Coordinates[i]) - float64(b.Coordinates[i])
		sum += d * d
	}
	return sum
}

func MeasureByName(name string) (DistanceMeasure, error) {
	switch strings.ToLower(name) {
	case "", MeasureSquaredEuclidean:
		return SquaredEuclidean{}, nil
	case MeasureEuclidean:
		return Euclidean{}, nil
	case MeasureManhattan:
		return Manhattan{}, nil
	default:
		return nil, fmt.Errorf("不支持的距离度量：%s", name)
	}
}
