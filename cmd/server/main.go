// RenLi 人力规划引擎服务
// 主程序入口

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/renli/renli/internal/config"
	"github.com/renli/renli/internal/handler"
	"github.com/renli/renli/internal/metrics"
	"github.com/renli/renli/internal/middleware"
	"github.com/renli/renli/pkg/logger"
	"github.com/renli/renli/pkg/planner"
	"github.com/renli/renli/pkg/planner/engine"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: "console",
	})

	// 打印版本信息
	fmt.Printf("RenLi 人力规划引擎 v%s\n", Version)
	fmt.Printf("Build: %s (%s)\n", BuildTime, GitCommit)
	fmt.Println()

	// 创建规划求解器
	pl := planner.New(engine.NewHiGHS())
	pl.SetTimeLimit(cfg.Planner.TimeLimit)

	// 创建处理器
	planHandler := handler.NewPlanHandler(pl, handler.Options{
		WhatIfWorkers:  cfg.Planner.WhatIfWorkers,
		DefaultTimeout: cfg.API.Timeout,
		MaxPeriods:     cfg.Planner.MaxPeriods,
		MaxScenarios:   cfg.Planner.MaxScenarios,
	})
	gradesHandler := handler.NewGradesHandler()
	statsHandler := handler.NewStatsHandler()

	// 创建 HTTP 服务器
	mux := http.NewServeMux()

	// ========================================
	// 系统端点
	// ========================================

	// 健康检查端点
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"renli"}`))
	})

	// 版本信息端点
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"version":"%s","build_time":"%s","git_commit":"%s"}`, Version, BuildTime, GitCommit)
	})

	// ========================================
	// API v1 端点
	// ========================================

	// API 根路由
	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"message": "RenLi 人力规划引擎 API v1",
			"endpoints": {
				"plan": {
					"solve": "POST /api/v1/plan/solve",
					"whatif": "POST /api/v1/plan/whatif",
					"analyze": "POST /api/v1/plan/analyze"
				},
				"grades": {
					"aggregate": "POST /api/v1/grades/aggregate"
				}
			}
		}`))
	})

	// 规划求解 API
	mux.HandleFunc("/api/v1/plan/solve", planHandler.Solve)

	// what-if 场景对比 API
	mux.HandleFunc("/api/v1/plan/whatif", planHandler.WhatIf)

	// 结果分析 API
	mux.HandleFunc("/api/v1/plan/analyze", statsHandler.Analyze)

	// 职级汇总 API
	mux.HandleFunc("/api/v1/grades/aggregate", gradesHandler.Aggregate)

	// ========================================
	// 监控端点
	// ========================================

	if cfg.Metrics.Enabled {
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	// ========================================
	// 中间件
	// ========================================

	// 中间件执行顺序：requestID -> apiKey -> securityHeaders -> metrics -> logging -> handler
	root := middleware.Chain(mux,
		middleware.RequestID,
		middleware.APIKey(cfg.App.APIKey, []string{"/health", "/version", cfg.Metrics.Path}),
		middleware.SecurityHeaders,
		middleware.Metrics,
		middleware.Logging,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      root,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 启动服务器（非阻塞）
	go func() {
		logger.Info().
			Int("port", cfg.App.Port).
			Str("version", Version).
			Str("engine", pl.Engine()).
			Str("url", fmt.Sprintf("http://localhost:%d", cfg.App.Port)).
			Msg("服务器启动")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("服务器启动失败")
			os.Exit(1)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
		os.Exit(1)
	}

	logger.Info().Msg("服务器已关闭")
}
