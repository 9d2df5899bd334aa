package server

import (
	"github.com/packagewjx/feature-clusterer/internal/utils"
	"github.com/packagewjx/feature-clusterer/pkg/server"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"strconv"
	"strings"
)

type ClusterRunDO struct {
	gorm.Model
	RunId       string `gorm:"uniqueIndex;type:VARCHAR(36)"`
	Algorithm   string `gorm:"type:VARCHAR(32)"`
	Measure     string `gorm:"type:VARCHAR(32)"`
	NumClusters int
}

type ClusterMemberDO struct {
	gorm.Model
	RunId string `gorm:"index:run_label;type:VARCHAR(36)"`
	Label int    `gorm:"index:run_label"`
	Name  string `gorm:"type:VARCHAR(256)"`
	// 逗号分隔的特征
	Features string `gorm:"type:TEXT"`
}

const featureSplitter = ","

func encodeFeatures(features []float32) string {
	return strings.Join(utils.FormatFeatures(features, -1), featureSplitter)
}

func decodeFeatures(s string) ([]float32, error) {
	if s == "" {
		return []float32{}, nil
	}
	split := strings.Split(s, featureSplitter)
	result := make([]float32, len(split))
	for i, f := range split {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "解析第%d个特征出错，特征为%s", i, f)
		}
		result[i] = float32(v)
	}
	return result, nil
}

func runToDO(run *server.ClusterRun) (*ClusterRunDO, []*ClusterMemberDO) {
	runDO := &ClusterRunDO{
		RunId:       run.RunId,
		Algorithm:   run.Algorithm,
		Measure:     run.Measure,
		NumClusters: len(run.Clusters),
	}
	runDO.CreatedAt = run.CreatedAt

	members := make([]*ClusterMemberDO, 0)
	for label, cluster := range run.Clusters {
		for _, p := range cluster {
			members = append(members, &ClusterMemberDO{
				RunId:    run.RunId,
				Label:    label,
				Name:     p.Name,
				Features: encodeFeatures(p.Features),
			})
		}
	}
	return runDO, members
}

// doToRun 成员需按label排序
func doToRun(runDO *ClusterRunDO, members []*ClusterMemberDO) (*server.ClusterRun, error) {
	run := &server.ClusterRun{
		RunId:     runDO.RunId,
		Algorithm: runDO.Algorithm,
		Measure:   runDO.Measure,
		CreatedAt: runDO.CreatedAt,
		Clusters:  make([][]server.NamedPoint, runDO.NumClusters),
	}
	for _, member := range members {
		if member.Label < 0 || member.Label >= runDO.NumClusters {
			return nil, errors.Errorf("聚类记录%s的成员%s类别为%d，超出类别数量%d",
				runDO.RunId, member.Name, member.Label, runDO.NumClusters)
		}
		features, err := decodeFeatures(member.Features)
		if err != nil {
			return nil, errors.Wrapf(err, "聚类记录%s的成员%s特征有误", runDO.RunId, member.Name)
		}
		run.Clusters[member.Label] = append(run.Clusters[member.Label], server.NamedPoint{
			Name:     member.Name,
			Features: features,
		})
	}
	return run, nil
}
