package server

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/packagewjx/feature-clusterer/pkg/server"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

type Server interface {
	Start() error
}

func NewServer(config *ServerConfig, logger *zap.Logger) (Server, error) {
	if err := config.Complete(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var dao Dao
	if config.MysqlHost != "" {
		d, err := NewDao(config.MysqlHost, logger)
		if err != nil {
			return nil, err
		}
		dao = d
	} else {
		logger.Warn("未配置MySQL，聚类结果将不会保存")
	}

	return newServer(config, dao, logger), nil
}

func newServer(config *ServerConfig, dao Dao, logger *zap.Logger) *serverImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &serverImpl{
		config:   config,
		dao:      dao,
		logger:   logger,
		validate: validator.New(),
	}
}

type serverImpl struct {
	config   *ServerConfig
	dao      Dao
	logger   *zap.Logger
	validate *validator.Validate
}

func (s *serverImpl) Start() error {
	s.logger.Info("服务器启动", zap.Stringer("config", s.config))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.buildRouter(),
	}
	errCh := make(chan error, 1)
	go s.serve(srv, errCh)

	// 注册信号接收器
	termSigChan := make(chan os.Signal, 1)
	signal.Notify(termSigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(termSigChan)

	select {
	case <-termSigChan:
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return errors.Wrap(err, "关闭HTTP服务器失败")
		}
	case err := <-errCh:
		return errors.Wrap(err, "HTTP服务器出现错误")
	}

	// 等待HTTP服务器结束
	if err := <-errCh; err != nil {
		return errors.Wrap(err, "HTTP关闭出现错误")
	}

	return nil
}

func (s *serverImpl) serve(srv *http.Server, errCh chan<- error) {
	s.logger.Info("API服务器启动", zap.String("addr", srv.Addr))

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		errCh <- err
		return
	}

	s.logger.Info("API服务器结束")
	errCh <- nil
}

func (s *serverImpl) buildRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte("OK"))
	})
	router.Post("/cluster", s.handleCluster)
	router.Get("/runs/{runId}", s.handleQueryRun)
	router.Delete("/runs/{runId}", s.handleRemoveRun)

	return router
}

func (s *serverImpl) handleCluster(writer http.ResponseWriter, request *http.Request) {
	req := &server.ClusterRequest{}
	if err := json.NewDecoder(request.Body).Decode(req); err != nil {
		http.Error(writer, fmt.Sprintf("解析请求出错：%v", err), http.StatusBadRequest)
		return
	}

	response, err := s.Cluster(req)
	if errors.Cause(err) == server.ErrInvalidRequest {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	} else if err != nil {
		s.logger.Error("聚类请求处理失败", zap.Error(err))
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJson(writer, response)
}

func (s *serverImpl) handleQueryRun(writer http.ResponseWriter, request *http.Request) {
	runId := chi.URLParam(request, "runId")
	run, err := s.QueryRun(runId)
	if err == server.ErrRunNotFound {
		http.NotFound(writer, request)
		return
	} else if err != nil {
		s.logger.Error("查询聚类记录失败", zap.String("runId", runId), zap.Error(err))
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJson(writer, run)
}

func (s *serverImpl) handleRemoveRun(writer http.ResponseWriter, request *http.Request) {
	runId := chi.URLParam(request, "runId")
	err := s.RemoveRun(runId)
	if err == server.ErrRunNotFound {
		http.NotFound(writer, request)
		return
	} else if err != nil {
		s.logger.Error("删除聚类记录失败", zap.String("runId", runId), zap.Error(err))
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}

func (s *serverImpl) writeJson(writer http.ResponseWriter, v interface{}) {
	marshal, err := json.Marshal(v)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	if _, err = writer.Write(marshal); err != nil {
		s.logger.Warn("写出响应失败", zap.Error(err))
	}
}
