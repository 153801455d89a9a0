package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reco-review/config"
)

// Open erstellt den in CATALOG_BACKEND konfigurierten Store.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (CatalogStore, error) {
	switch cfg.CatalogBackend {
	case "file":
		return NewFileStore(cfg.CatalogPath), nil
	case "s3":
		client, err := NewS3Client(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("create s3 client: %w", err)
		}
		return NewS3Store(client, cfg.S3Bucket, cfg.CatalogS3Key), nil
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		log.Info("Successfully connected to catalog database.")
		return NewDBStore(db, cfg.CatalogName)
	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.CatalogBackend)
	}
}
