package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dermascan/internal/app/config"
	"dermascan/internal/app/domains/modules/mdnotify"
	"dermascan/internal/app/domains/modules/mdscan"
	"dermascan/internal/app/domains/modules/mduser"
	"dermascan/internal/app/domains/repo/rpscan"
	"dermascan/internal/app/domains/repo/rpuser"
	"dermascan/internal/app/domains/services/svscan"
	"dermascan/internal/app/domains/services/svuser"
	"dermascan/internal/app/infra/persistence/mysql"
	"dermascan/internal/app/infra/persistence/redis"
	"dermascan/internal/app/infra/predictor"
	"dermascan/internal/app/infra/storage"
	"dermascan/internal/app/pkg/authtoken"
	"dermascan/internal/app/pkg/logger"
	scanhandler "dermascan/internal/app/server/handlers/scan"
	userhandler "dermascan/internal/app/server/handlers/user"
	"dermascan/internal/app/server/routers"
)

func main() {
	// 1. 加载配置
	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// 2. 初始化日志
	zlog, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zlog.Sync()

	// 3. 初始化基础设施
	db, err := mysql.NewDB(cfg.MySQL.DSN)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	defer mysql.Close(db)

	blobStore, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalf("Failed to init blob store: %v", err)
	}

	pred := predictor.NewHTTPClient(
		cfg.Predictor.BaseURL,
		time.Duration(cfg.Predictor.TimeoutSeconds)*time.Second,
		zlog,
	)

	// Redis 可选：未配置时跳过分析完成通知
	var notifier svscan.Notifier
	if cfg.Redis.Addr != "" {
		redisClient, err := redis.NewPubSubClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("Failed to connect redis: %v", err)
		}
		defer redisClient.Close()
		notifier = mdnotify.NewNotifyModule(redisClient)
	}

	tokens := authtoken.NewManager(
		cfg.Auth.JWTSecret,
		cfg.App.Name,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)

	// 4. 组装各层
	scanModule := mdscan.NewScanModule(rpscan.NewScanRepository(db))
	userModule := mduser.NewUserModule(rpuser.NewUserRepository(db))

	scanService := svscan.NewScanService(scanModule, blobStore, pred, notifier, zlog)
	userService := svuser.NewUserService(userModule, tokens)

	scanHandler := scanhandler.NewScanHandler(scanService, zlog)
	userHandler := userhandler.NewUserHandler(userService, zlog)

	engine := routers.SetupRoutes(scanHandler, userHandler, tokens, zlog, cfg.Storage.UploadDir)

	// 5. 启动 HTTP Server（后台 goroutine）
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	// 6. 优雅停机处理
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Println("Received shutdown signal, gracefully shutting down...")
		gracefulShutdown(server)
	case err := <-serverErrChan:
		log.Fatalf("HTTP server error: %v", err)
	}

	log.Println("Application stopped")
}

// gracefulShutdown 优雅停机
func gracefulShutdown(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped gracefully")
	}
}
