package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"4242"`

	// Optionaler Schlüssel für die JSON-API (/api). Leer = keine Prüfung.
	APISecretKey string `envconfig:"API_SECRET_KEY"`

	// Katalog-Backend: file, s3 oder postgres
	CatalogBackend string `envconfig:"CATALOG_BACKEND" default:"file"`
	CatalogPath    string `envconfig:"CATALOG_PATH" default:"data/20241104_classic_books.json"`
	CatalogS3Key   string `envconfig:"CATALOG_S3_KEY" default:"20241104_classic_books.json"`
	CatalogName    string `envconfig:"CATALOG_NAME" default:"classic_books"`

	ReferenceURL string `envconfig:"REFERENCE_URL" default:"https://storage.googleapis.com/book2influencers-evaluation/20241023_influencer_with_embeddings.json"`
	CoverBaseURL string `envconfig:"COVER_BASE_URL" default:"https://www.gutenberg.org/cache/epub"`

	DBHost     string `envconfig:"DB_HOST"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`

	S3Key    string `envconfig:"S3_KEY"`
	S3Secret string `envconfig:"S3_SECRET"`
	S3URL    string `envconfig:"S3_URL"`
	S3Region string `envconfig:"S3_REGION" default:"eu-central-1"`
	S3Bucket string `envconfig:"S3_BUCKET"`

	// Snapshots des Katalogs, leerer Schedule deaktiviert den Job
	BackupCronSchedule string `envconfig:"BACKUP_CRON_SCHEDULE"`
	BackupS3Bucket     string `envconfig:"BACKUP_S3_BUCKET"`
	KeepBackups        int    `envconfig:"KEEP_BACKUPS" default:"4"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// Validate prüft, ob die für das gewählte Backend nötigen Werte gesetzt sind.
func (c *Config) Validate() error {
	switch c.CatalogBackend {
	case "file":
		if c.CatalogPath == "" {
			return fmt.Errorf("CATALOG_PATH ist für das file-Backend erforderlich")
		}
	case "s3":
		if c.S3URL == "" || c.S3Bucket == "" || c.CatalogS3Key == "" {
			return fmt.Errorf("S3_URL, S3_BUCKET und CATALOG_S3_KEY sind für das s3-Backend erforderlich")
		}
	case "postgres":
		if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
			return fmt.Errorf("DB_HOST, DB_USER und DB_NAME sind für das postgres-Backend erforderlich")
		}
	default:
		return fmt.Errorf("unbekanntes CATALOG_BACKEND %q", c.CatalogBackend)
	}
	if c.BackupCronSchedule != "" && (c.BackupS3Bucket == "" || c.S3URL == "") {
		return fmt.Errorf("BACKUP_S3_BUCKET und S3_URL sind für Snapshots erforderlich")
	}
	if c.KeepBackups < 1 {
		return fmt.Errorf("KEEP_BACKUPS muss mindestens 1 sein, ist %d", c.KeepBackups)
	}
	if c.ReferenceURL == "" {
		return fmt.Errorf("REFERENCE_URL darf nicht leer sein")
	}
	return nil
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
