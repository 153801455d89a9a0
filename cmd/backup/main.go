package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"reco-review/config"
	"reco-review/services"
	"reco-review/storage"
)

// Einmaliger Snapshot des Katalogs, z.B. aus einem Kubernetes-CronJob heraus.
func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	logging.Info("Starte Snapshot-Prozess...")

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Fehler beim Laden der Konfiguration", zap.Error(err))
	}
	if cfg.BackupS3Bucket == "" || cfg.S3URL == "" {
		logging.Fatal("BACKUP_S3_BUCKET und S3_URL müssen gesetzt sein")
	}

	ctx := context.Background()

	store, err := storage.Open(ctx, cfg, logging)
	if err != nil {
		logging.Fatal("Fehler beim Öffnen des Katalogs", zap.Error(err))
	}

	s3Client, err := storage.NewS3Client(ctx, cfg)
	if err != nil {
		logging.Fatal("Fehler beim Erstellen des S3-Clients", zap.Error(err))
	}

	backupService := services.NewBackupService(store, s3Client, cfg.BackupS3Bucket, cfg.KeepBackups, logging)
	key, err := backupService.Snapshot(ctx)
	if err != nil {
		logging.Fatal("Snapshot fehlgeschlagen", zap.String("key", key), zap.Error(err))
	}

	logging.Info("Snapshot-Prozess erfolgreich abgeschlossen.", zap.String("bucket", cfg.BackupS3Bucket), zap.String("key", key))
}
