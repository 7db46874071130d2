package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	pricinghttp "github.com/white07S/OptionPricing/internal/pricing/interfaces/http"
	"github.com/white07S/OptionPricing/internal/pricing/application"
	"github.com/white07S/OptionPricing/pkg/config"
	"github.com/white07S/OptionPricing/pkg/logger"
	"github.com/white07S/OptionPricing/pkg/middleware"
)

func main() {
	configPath := flag.String("config", "configs/pricing.toml", "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	log := logger.Get()

	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(), middleware.RequestID(), middleware.AccessLog())

	svc := application.NewPricingService(cfg.Engine.DefaultPaths, cfg.Engine.DefaultWorkers, cfg.Engine.MaxPaths, cfg.Engine.MaxWorkers)
	handler := pricinghttp.NewPricingHandler(svc)
	handler.RegisterRoutes(router.Group(""))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("pricing service started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down pricing service")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
