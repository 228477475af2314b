package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relay/ticket/config"
	_ "relay/ticket/pkg/apiurl/api"
	_ "relay/ticket/pkg/logticket/api"
	_ "relay/ticket/pkg/logticket/impl"
	_ "relay/ticket/pkg/reg"
	"relay/tools/ioc"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 创建日志记录器
	log := cfg.Logger()
	log.Info("Starting ticket relay service...")

	// 初始化 IOC 容器：先业务实现，再路由
	if err := ioc.ConController.Init(); err != nil {
		log.Fatal("Failed to init ioc: %v", err)
		os.Exit(1)
	}

	if err := ioc.Api.Init(); err != nil {
		log.Fatal("Failed to init ioc: %v", err)
		os.Exit(1)
	}

	// 注册 Prometheus 指标接口
	cfg.Application.GinServer().GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 配置HTTP服务器
	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      cfg.Application.GinServer(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// 启动服务器
	go func() {
		log.Info("Server starting on port %s...", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
