package core

import (
	"fmt"
	"github.com/pkg/errors"
	"sort"
	"strconv"
	"strings"
)

// 合成点（如均值点）的ID
const SyntheticID = -1

var ErrDimensionMismatch = fmt.Errorf("特征向量维度不一致")

// Point 为不可变的特征向量，带有一个在同一输入集合中唯一的ID。
type Point struct {
	ID          int
	Coordinates []float32
}

func NewPoint(id int, coordinates []float32) Point {
	c := make([]float32, len(coordinates))
	copy(c, coordinates)
	return Point{
		ID:          id,
		Coordinates: c,
	}
}

func (p Point) Dimension() int {
	return len(p.Coordinates)
}

func (p Point) Equal(other Point) bool {
	if p.ID != other.ID || len(p.Coordinates) != len(other.Coordinates) {
		return false
	}
	for i, c := range p.Coordinates {
		if c != other.Coordinates[i] {
			return false
		}
	}
	return true
}

// 自然顺序按照ID排序
func (p Point) Less(other Point) bool {
	return p.ID < other.ID
}

func (p Point) String() string {
	builder := &strings.Builder{}
	builder.WriteString(strconv.Itoa(p.ID))
	builder.WriteString(": [")
	for i, c := range p.Coordinates {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(strconv.FormatFloat(float64(c), 'g', -1, 32))
	}
	builder.WriteString("]")
	return builder.String()
}

func SortByID(points []Point) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Less(points[j])
	})
}

// PointFactory 生成固定维度的点，ID自增。非并发安全。
type PointFactory struct {
	dimension int
	nextId    int
}

func NewPointFactory(dimension int) *PointFactory {
	return &PointFactory{dimension: dimension}
}

func (f *PointFactory) NewPoint(coordinates ...float32) (Point, error) {
	if len(coordinates) != f.dimension {
		return Point{}, errors.Wrapf(ErrDimensionMismatch, "需要%d维，实际为%d维", f.dimension, len(coordinates))
	}
	p := NewPoint(f.nextId, coordinates)
	f.nextId++
	return p, nil
}

func (f *PointFactory) Dimension() int {
	return f.dimension
}

func (f *PointFactory) Reset() {
	f.nextId = 0
}

// PointsFromList 将任意元素转换为点，ID为元素在列表中的位置
func PointsFromList[T any](items []T, extractor func(T) []float32) []Point {
	result := make([]Point, len(items))
	for i, item := range items {
		result[i] = NewPoint(i, extractor(item))
	}
	return result
}

// Mean 计算各坐标的算术平均值，结果为合成点
func Mean(points []Point) Point {
	if len(points) == 0 {
		return Point{ID: SyntheticID, Coordinates: []float32{}}
	}

	dim := 0
	for _, p := range points {
		if len(p.Coordinates) > dim {
			dim = len(p.Coordinates)
		}
	}

	sum := make([]float64, dim)
	for _, p := range points {
		for i, c := range p.Coordinates {
			sum[i] += float64(c)
		}
	}

	coordinates := make([]float32, dim)
	for i, s := range sum {
		coordinates[i] = float32(s / float64(len(points)))
	}
	return Point{ID: SyntheticID, Coordinates: coordinates}
}
