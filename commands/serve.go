package commands

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lodge-backend/config"
	"lodge-backend/jobs"
	"lodge-backend/routes"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(config.Load())
		},
	}
}

func serve(cfg config.Config) error {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Printf("❌ Database connect failed: %v", err)
		return err
	}
	log.Printf("✅ Database connected (%s), migrations applied", cfg.DBDriver)

	rdb, err := config.ConnectRedis(cfg)
	if err != nil {
		log.Printf("⚠️  Redis unavailable, falling back to in-process cache: %v", err)
		rdb = nil
	}

	a, err := buildApp(cfg, db, rdb)
	if err != nil {
		return err
	}
	router := routes.SetupRouter(a.Handlers, cfg.CORSOrigins, cfg.UploadDir)

	var scheduler *cron.Cron
	if cfg.JobsEnabled {
		scheduler = cron.New()
		if err := jobs.InitCronJobs(scheduler, a.Bookings); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return err
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	log.Println("✅ Server stopped gracefully")
	return nil
}
