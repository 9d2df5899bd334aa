package clusterer

import (
	"github.com/packagewjx/feature-clusterer/internal/classify"
	"github.com/packagewjx/feature-clusterer/pkg/core"
	"go.uber.org/zap"
	"math/rand"
	"time"
)

type Algorithm = classify.AlgorithmType

const (
	Automatic = classify.AutomaticType
	Greedy    = classify.GreedyType
	KMeans    = classify.KMeansType
	Spectral  = classify.SpectralType
	KMeansPP  = classify.KMeansPPType
)

type Config struct {
	Algorithm    Algorithm
	K            int
	Threshold    float64
	Measure      core.DistanceMeasure
	RefreshRatio float64
	Rounds       int
	// 随机种子，0表示使用当前时间
	Seed   int64
	Logger *zap.Logger
}

func (c *Config) options() *classify.Options {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &classify.Options{
		K:            c.K,
		Threshold:    c.Threshold,
		RefreshRatio: c.RefreshRatio,
		Round:        c.Rounds,
		Measure:      c.Measure,
		Rand:         rand.New(rand.NewSource(seed)),
		Logger:       c.Logger,
	}
}
