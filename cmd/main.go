package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/config"
	"github.com/oksasatya/dream-journal-api/internal/container"
	pginfra "github.com/oksasatya/dream-journal-api/internal/infrastructure/postgres"
	"github.com/oksasatya/dream-journal-api/internal/interface/middleware"
	"github.com/oksasatya/dream-journal-api/internal/router"
	"github.com/oksasatya/dream-journal-api/pkg/helpers"
	"github.com/oksasatya/dream-journal-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	if !cfg.InMemory() {
		pool, err := pginfra.NewPool(ctx, cfg.Pool(), logger)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()

		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		container.SetPGPool(pool)
	} else {
		logger.Warn("STORAGE_DRIVER=memory; data is lost on restart")
	}

	// Redis backs the rate limiters only; limits fail open while it is unreachable
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if err := helpers.PingRedis(ctx, rdb, 2*time.Second); err != nil {
		logger.WithError(err).Warn("redis unreachable; rate limits are not enforced")
	}

	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		switch {
		case err != nil:
			logger.WithError(err).Warn("elasticsearch client init failed; story search uses the database")
		default:
			if err := helpers.PingES(ctx, es, 3*time.Second); err != nil {
				logger.WithError(err).Warn("elasticsearch unreachable; story search uses the database")
			} else {
				container.SetES(es)
			}
		}
	}

	if cfg.MailSendEnabled {
		if pub := openPublisher(logger, cfg.RabbitMQURL, cfg.RabbitMQEmailQueue); pub != nil {
			defer pub.Close()
			container.SetMailPub(pub)
		}
	}
	if cfg.ActivityEventsEnabled {
		if pub := openPublisher(logger, cfg.RabbitMQURL, cfg.RabbitMQActivityQueue); pub != nil {
			defer pub.Close()
			container.SetActivityPub(pub)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetRedis(rdb)
	container.SetJWT(jwtManager)
	container.SetRegistry(registry)

	validation.Init()

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(middleware.HTTPMetrics(metrics))
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(corsCfg))

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r, cfg.APIPrefix)
	if cfg.Env == "development" {
		// API routes only; keeps /metrics scrapes out of the access log
		reg.Use(gin.Logger())
	}
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}

// openPublisher connects a queue publisher. The API keeps serving without it.
func openPublisher(logger *logrus.Logger, url, queue string) *helpers.RabbitPublisher {
	pub, err := helpers.NewRabbitPublisher(url, queue)
	if err != nil {
		helpers.LogError(logger, "rabbitmq publisher unavailable", err, logrus.Fields{"queue": queue})
		return nil
	}
	return pub
}
