package server

import (
	"fmt"
	"time"
)

var ErrRunNotFound = fmt.Errorf("不存在本次聚类记录")

var ErrInvalidRequest = fmt.Errorf("聚类请求参数有误")

type NamedPoint struct {
	Name     string    `json:"name" validate:"required"`
	Features []float32 `json:"features" validate:"required,min=1"`
}

type ClusterRequest struct {
	Algorithm string `json:"algorithm,omitempty" validate:"omitempty,oneof=automatic greedy kmeans spectral kmeanspp"`
	Measure   string `json:"measure,omitempty" validate:"omitempty,oneof=squared-euclidean euclidean manhattan"`
	// kmeans、spectral、kmeanspp的类别数量
	K int `json:"k,omitempty" validate:"gte=0"`
	// greedy的距离阈值
	Threshold float64 `json:"threshold,omitempty" validate:"gte=0"`
	// 0表示随机
	Seed   int64        `json:"seed,omitempty"`
	Points []NamedPoint `json:"points" validate:"required,min=1,dive"`
}

type ClusterResponse struct {
	RunId string `json:"runId"`
	// 按类大小降序排列
	Clusters [][]NamedPoint `json:"clusters"`
}

type ClusterRun struct {
	RunId     string         `json:"runId"`
	Algorithm string         `json:"algorithm"`
	Measure   string         `json:"measure"`
	CreatedAt time.Time      `json:"createdAt"`
	Clusters  [][]NamedPoint `json:"clusters"`
}

type API interface {
	Cluster(request *ClusterRequest) (*ClusterResponse, error)

	QueryRun(runId string) (*ClusterRun, error)

	RemoveRun(runId string) error
}
