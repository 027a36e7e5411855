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

	"github.com/gin-gonic/gin"

	"conveyorhub/internal/live"
	"conveyorhub/internal/manifest"
	"conveyorhub/internal/metrics"
	"conveyorhub/internal/reconcile"
	"conveyorhub/internal/scans"
	"conveyorhub/pkg/database"
	"conveyorhub/pkg/utils"
)

func main() {
	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	srvCfg := utils.LoadServerConfig()

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	hub := live.NewHub()
	router.GET("/ws/reports", live.WSHandler(hub, live.TopicRecentScans))
	router.GET("/ws/overview", live.WSHandler(hub, live.TopicDailyOverview))
	router.GET("/ws/start", live.StartStopHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"subscribers": stats,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"subscribers": stats,
		})
	})

	router.GET("/metrics", metrics.Handler())

	scanRepo := scans.NewRepo(db)
	manifestRepo := manifest.NewRepo(db)

	reports := router.Group("/reports")
	scanHandler := scans.NewHandler(scanRepo, manifestRepo, hub, srvCfg.RecentScans)
	scanHandler.RegisterRoutes(reports)

	compareHandler := reconcile.NewHandler(scanRepo, manifestRepo)
	compareHandler.RegisterRoutes(reports)

	manifestHandler := manifest.NewHandler(manifestRepo)
	manifestHandler.RegisterRoutes(router.Group("/expected-data"))

	httpSrv := &http.Server{
		Addr:    srvCfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API server listening on %s", srvCfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}
