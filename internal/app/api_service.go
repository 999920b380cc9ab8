package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sweethub-erp/internal/config"
)

// APIService 对外 HTTP 接口服务
type APIService struct {
	server *http.Server
}

// NewAPIService 按服务器配置创建接口服务
func NewAPIService(cfg config.ServerConfig, handler http.Handler) *APIService {
	return &APIService{
		server: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Name 服务名称
func (s *APIService) Name() string {
	return "api"
}

// Addr 返回监听地址
func (s *APIService) Addr() string {
	if s == nil || s.server == nil {
		return ""
	}
	return s.server.Addr
}

// Start 启动监听并阻塞到服务关闭
func (s *APIService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("api server not initialized")
	}
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 优雅停机，等待在途请求完成
func (s *APIService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
