package server

import (
	"github.com/google/uuid"
	"github.com/packagewjx/feature-clusterer/pkg/clusterer"
	"github.com/packagewjx/feature-clusterer/pkg/core"
	"github.com/packagewjx/feature-clusterer/pkg/server"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"sort"
	"time"
)

var _ server.API = &serverImpl{}

func (s *serverImpl) Cluster(request *server.ClusterRequest) (*server.ClusterResponse, error) {
	if err := s.validate.Struct(request); err != nil {
		return nil, errors.Wrap(server.ErrInvalidRequest, err.Error())
	}
	if len(request.Points) > s.config.MaxPoints {
		return nil, errors.Wrapf(server.ErrInvalidRequest, "点数%d超过上限%d", len(request.Points), s.config.MaxPoints)
	}

	algorithm := request.Algorithm
	if algorithm == "" {
		algorithm = s.config.DefaultAlgorithm
	}
	measure, err := core.MeasureByName(request.Measure)
	if err != nil {
		return nil, errors.Wrap(server.ErrInvalidRequest, err.Error())
	}

	c, err := clusterer.New[int](clusterer.Config{
		Algorithm: clusterer.Algorithm(algorithm),
		K:         request.K,
		Threshold: request.Threshold,
		Measure:   measure,
		Seed:      request.Seed,
		Logger:    s.logger,
	})
	if err != nil {
		return nil, errors.Wrap(server.ErrInvalidRequest, err.Error())
	}

	indices := make([]int, len(request.Points))
	for i := range indices {
		indices[i] = i
	}
	start := time.Now()
	clusters, err := c.Cluster(indices, func(i int) []float32 {
		return request.Points[i].Features
	})
	if err != nil {
		return nil, err
	}

	run := &server.ClusterRun{
		RunId:     uuid.NewString(),
		Algorithm: algorithm,
		Measure:   request.Measure,
		CreatedAt: start,
		Clusters:  make([][]server.NamedPoint, len(clusters)),
	}
	for ci, cluster := range clusters {
		members := make([]int, 0, len(cluster))
		for i := range cluster {
			members = append(members, i)
		}
		sort.Ints(members)
		run.Clusters[ci] = make([]server.NamedPoint, len(members))
		for j, i := range members {
			run.Clusters[ci][j] = request.Points[i]
		}
	}

	s.logger.Info("聚类完成",
		zap.String("runId", run.RunId),
		zap.String("algorithm", algorithm),
		zap.Int("points", len(request.Points)),
		zap.Int("clusters", len(run.Clusters)),
		zap.Duration("elapsed", time.Since(start)))

	if s.dao != nil {
		if err := s.dao.SaveRun(run); err != nil {
			return nil, errors.Wrap(err, "保存聚类结果出错")
		}
	}

	return &server.ClusterResponse{
		RunId:    run.RunId,
		Clusters: run.Clusters,
	}, nil
}

func (s *serverImpl) QueryRun(runId string) (*server.ClusterRun, error) {
	if s.dao == nil {
		return nil, server.ErrRunNotFound
	}
	return s.dao.QueryRun(runId)
}

func (s *serverImpl) RemoveRun(runId string) error {
	if s.dao == nil {
		return server.ErrRunNotFound
	}
	return s.dao.RemoveRun(runId)
}
