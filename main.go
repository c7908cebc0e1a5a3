package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spacex_dash/internal/chartcache"
	"spacex_dash/internal/config"
	"spacex_dash/internal/dashboard"
	"spacex_dash/internal/log"
	"spacex_dash/internal/metrics"
	"spacex_dash/internal/middleware"
	dash "spacex_dash/pkg/dashboard"
	"spacex_dash/pkg/render"
	"spacex_dash/pkg/storage"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log.Setup(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.DisableTimestamp)

	// Источник данных выбирается конфигурацией
	src, closeSrc, err := openSource(cfg.Data)
	if err != nil {
		logrus.Fatalf("Failed to open data source: %v", err)
	}
	defer closeSrc()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	ds, err := storage.Load(ctx, src)
	cancel()
	if err != nil {
		logrus.Fatalf("Failed to load launches: %v", err)
	}

	app, err := dash.NewApp(ds)
	if err != nil {
		logrus.Fatalf("Failed to build dashboard: %v", err)
	}

	cache := chartcache.New(cfg.Charts.CacheTTL, cfg.Charts.CacheCapacity)
	cache.Start()
	defer cache.Stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	h := dashboard.NewHandler(app, cache, m, render.Options{
		Width:  cfg.Charts.Width,
		Height: cfg.Charts.Height,
	}, cfg.Debug)

	// Настройка роутера
	r := setupRouter(cfg, h, m)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server failed: %v", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	logrus.Infof("Received %s, shutting down", sig)

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Graceful shutdown failed: %v", err)
	}
}

// openSource возвращает источник записей о запусках и функцию освобождения ресурсов.
func openSource(cfg config.DataConfig) (storage.Source, func(), error) {
	noop := func() {}
	switch cfg.Source {
	case "", "csv":
		return storage.CSVSource{Path: cfg.CSVPath}, noop, nil
	case "postgres":
		conn, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		// Проверка подключения
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, noop, fmt.Errorf("database ping failed: %w", err)
		}
		return storage.NewDB(conn, cfg.Sites), func() { conn.Close() }, nil
	case "sqlite":
		return storage.SQLiteSource{Path: cfg.SQLitePath, Sites: cfg.Sites}, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown data source %q", cfg.Source)
	}
}

// Настройка маршрутов
func setupRouter(cfg config.Config, h *dashboard.Handler, m *metrics.Metrics) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if cfg.Debug {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(m))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	dashboard.SetupRoutes(r.Group("/"), h)

	logrus.Infof("[ROUTER] Routes initialized:")
	logrus.Infof("[ROUTER] GET /")
	logrus.Infof("[ROUTER] POST /_dash-update-component")
	logrus.Infof("[ROUTER] GET /charts/:file")
	logrus.Infof("[ROUTER] GET /health")

	return r
}
