package core

import (
	"github.com/stretchr/testify/assert"
	"math"
	"testing"
)

func TestSquaredEuclideanDistance(t *testing.T) {
	a := NewPoint(0, []float32{1, 2, 3})
	b := NewPoint(1, []float32{4, 6, 3})
	assert.Equal(t, 25.0, SquaredEuclideanDistance(a, b))
	assert.Equal(t, 0.0, SquaredEuclideanDistance(a, a))

	// 维度不一致时按较短的计算
	c := NewPoint(2, []float32{4, 6})
	assert.Equal(t, 25.0, SquaredEuclideanDistance(a, c))
	assert.Equal(t, 25.0, SquaredEuclideanDistance(c, a))
}

func TestMeasures(t *testing.T) {
	a := NewPoint(0, []float32{0, 0})
	b := NewPoint(1, []float32{3, 4})

	assert.Equal(t, 25.0, SquaredEuclidean{}.Distance(a, b))
	assert.True(t, SquaredEuclidean{}.IsSquared())

	assert.InDelta(t, 5.0, Euclidean{}.Distance(a, b), 1e-12)
	assert.False(t, Euclidean{}.IsSquared())

	assert.Equal(t, 7.0, Manhattan{}.Distance(a, b))
	assert.False(t, Manhattan{}.IsSquared())

	f := MeasureFunc(func(a, b Point) float64 { return math.Abs(float64(a.Coordinates[0] - b.Coordinates[0])) })
	assert.Equal(t, 3.0, f.Distance(a, b))
	assert.False(t, f.IsSquared())

	sf := SquaredMeasureFunc(SquaredEuclideanDistance)
	assert.Equal(t, 25.0, sf.Distance(a, b))
	assert.True(t, sf.IsSquared())
}

func TestMeasureByName(t *testing.T) {
	m, err := MeasureByName("")
	assert.NoError(t, err)
	assert.IsType(t, SquaredEuclidean{}, m)

	m, err = MeasureByName("Euclidean")
	assert.NoError(t, err)
	assert.IsType(t, Euclidean{}, m)

	m, err = MeasureByName(MeasureManhattan)
	assert.NoError(t, err)
	assert.IsType(t, Manhattan{}, m)

	_, err = MeasureByName("cosine")
	assert.Error(t, err)
}
