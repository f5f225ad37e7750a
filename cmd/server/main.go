package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fitplan/internal/api"
	"fitplan/internal/api/middleware"
	"fitplan/pkg/factory"
	"fitplan/pkg/tracing"
)

func main() {
	f, err := factory.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "uygulama başlatılamadı: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	log := f.Logger()
	cfg := f.Config()

	tp, err := tracing.InitTracer("fitplan", cfg.AppEnv)
	if err != nil {
		log.Fatal("Tracer başlatılamadı", map[string]interface{}{"error": err.Error()})
	}

	if err := f.RunMigrations(); err != nil {
		log.Fatal("Migrasyonlar uygulanamadı", map[string]interface{}{"error": err.Error()})
	}

	mux := http.NewServeMux()

	userHandler := api.NewUserHandler(f.UserService(), log)
	userHandler.RegisterRoutes(mux)

	auditHandler := api.NewAuditLogHandler(f.AuditService(), log)
	auditHandler.RegisterRoutes(mux)

	healthHandler := api.NewHealthHandler(f.DB(), f.Cache(), f.AuditPool(), log)
	healthHandler.RegisterRoutes(mux)

	if f.Cache() != nil {
		cacheHandler := api.NewCacheHandler(f.Cache(), log)
		cacheHandler.RegisterRoutes(mux)
	}

	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.Tracing(middleware.Metrics(mux))

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		log.Info("Sunucu başlatılıyor", map[string]interface{}{
			"port": cfg.Server.Port,
			"env":  cfg.AppEnv,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Sunucu başlatılamadı", map[string]interface{}{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Sunucu kapatılıyor", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Sunucu düzgün kapatılamadı", map[string]interface{}{"error": err.Error()})
	}

	if err := tp.Shutdown(ctx); err != nil {
		log.Error("Tracer kapatılamadı", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Sunucu kapatıldı", nil)
}
