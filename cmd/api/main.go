package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"docpulse/internal/gateway/config"
	"docpulse/internal/gateway/handler"
	"docpulse/internal/gateway/repository/projectstore"
	"docpulse/internal/gateway/repository/report"
	"docpulse/internal/gateway/runtime"
	"docpulse/internal/gateway/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	store := projectstore.NewFromEnv(filepath.Join("tmp", "docpulse_projects.json"))
	store.EnsureLoaded()

	var reports report.Store
	if cfg.Report.Enabled {
		s3, err := report.NewS3Store(report.S3Config{
			Endpoint:  cfg.Report.Endpoint,
			Region:    cfg.Report.Region,
			AccessKey: cfg.Report.AccessKey,
			SecretKey: cfg.Report.SecretKey,
			Bucket:    cfg.Report.Bucket,
			UseSSL:    cfg.Report.UseSSL,
		})
		if err != nil {
			log.Printf("report store: s3 unavailable (%v), using memory store", err)
		} else {
			reports = s3
		}
	}

	app := runtime.New(cfg, store, reports)
	srv := server.New(cfg.Port, handler.BuildMux(handler.NewService(app)))

	// Initial scan so the API serves data immediately.
	go func() {
		if _, err := app.Rescan(context.Background()); err != nil {
			log.Printf("initial scan: %v", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal(err)
		}
	case <-stop:
		log.Println("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
		store.Save()
	}
}
