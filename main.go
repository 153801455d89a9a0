package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"reco-review/config"
	"reco-review/providers"
	"reco-review/providers/influencer"
	"reco-review/services"
	"reco-review/storage"
)

var (
	savesCounter       prometheus.Counter
	saveFailureCounter prometheus.Counter
	navigationCounter  *prometheus.CounterVec
	booksGauge         prometheus.Gauge
	correctGauge       prometheus.Gauge
)

func init() {
	savesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "review_saves_total",
		Help: "Total number of successful annotation saves.",
	})
	saveFailureCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "review_save_failures_total",
		Help: "Total number of annotation saves that could not be persisted.",
	})
	navigationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "review_navigations_total",
		Help: "Total number of cursor moves by source.",
	}, []string{"direction"})
	booksGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "review_catalog_books",
		Help: "Number of books in the loaded catalog.",
	})
	correctGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "review_correct_recommendations",
		Help: "Number of recommendations currently marked as correct.",
	})
	prometheus.MustRegister(savesCounter, saveFailureCounter, navigationCounter, booksGauge, correctGauge)
}

// recordSave aktualisiert die Metriken nach einem erfolgreichen Commit.
func recordSave(session *services.ReviewSession) {
	savesCounter.Inc()
	updateCatalogGauges(session)
}

func updateCatalogGauges(session *services.ReviewSession) {
	books, correct := session.Stats()
	booksGauge.Set(float64(books))
	correctGauge.Set(float64(correct))
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	ctx := context.Background()

	store, err := storage.Open(ctx, cfg, logging)
	if err != nil {
		logging.Fatal("Failed to open catalog store", zap.Error(err))
	}
	books, err := store.Load(ctx)
	if err != nil {
		logging.Fatal("Failed to load catalog", zap.String("location", store.Location()), zap.Error(err))
	}
	logging.Info("Catalog loaded", zap.String("location", store.Location()), zap.Int("books", len(books)))

	var source providers.ReferenceSource = influencer.NewFetcher(cfg.ReferenceURL, logging)
	reference, err := source.Fetch(ctx)
	if err != nil {
		logging.Fatal("Failed to load reference table", zap.String("source", source.Name()), zap.Error(err))
	}

	session, err := services.NewReviewSession(books, reference, store, cfg.CoverBaseURL, logging)
	if err != nil {
		logging.Fatal("Failed to start review session", zap.Error(err))
	}
	updateCatalogGauges(session)

	if cfg.BackupCronSchedule != "" {
		s3Client, err := storage.NewS3Client(ctx, cfg)
		if err != nil {
			logging.Fatal("S3 client creation failed", zap.Error(err))
		}
		backupService := services.NewBackupService(session, s3Client, cfg.BackupS3Bucket, cfg.KeepBackups, logging)

		cronScheduler := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
		_, err = cronScheduler.AddFunc(cfg.BackupCronSchedule, func() {
			logging.Info("Running scheduled catalog snapshot...")
			key, err := backupService.Snapshot(context.Background())
			if err != nil {
				logging.Error("Snapshot job failed", zap.Error(err))
				return
			}
			logging.Info("Snapshot job completed", zap.String("key", key))
		})
		if err != nil {
			logging.Fatal("Invalid BACKUP_CRON_SCHEDULE", zap.String("schedule", cfg.BackupCronSchedule), zap.Error(err))
		}
		cronScheduler.Start()
		defer cronScheduler.Stop()
	}

	router := newRouter(cfg, session, logging)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}
