package services

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"reco-review/models"
	"reco-review/storage"
)

const snapshotPrefix = "catalog-"

// CatalogReader liefert den zu sichernden Katalog. Erfüllt von storage.CatalogStore und ReviewSession.
type CatalogReader interface {
	Load(ctx context.Context) ([]models.Book, error)
}

// BackupService legt komprimierte Snapshots des Katalogs in S3 ab
// und behält nur die neuesten Keep Stück (mindestens 1).
type BackupService struct {
	Source CatalogReader
	Client storage.ObjectAPI
	Bucket string
	Keep   int
	Logger *zap.Logger

	now func() time.Time
}

// NewBackupService erstellt einen neuen BackupService.
func NewBackupService(source CatalogReader, client storage.ObjectAPI, bucket string, keep int, logger *zap.Logger) *BackupService {
	return &BackupService{
		Source: source,
		Client: client,
		Bucket: bucket,
		Keep:   keep,
		Logger: logger,
		now:    time.Now,
	}
}

// Snapshot liest den Katalog aus der Quelle, lädt ihn gzip-komprimiert hoch und rotiert alte Snapshots.
// Zurückgegeben wird der Key des neuen Objekts.
func (b *BackupService) Snapshot(ctx context.Context) (string, error) {
	if b.Keep < 1 {
		return "", fmt.Errorf("keep must be at least 1, got %d", b.Keep)
	}
	books, err := b.Source.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load catalog for snapshot: %w", err)
	}
	data, err := storage.EncodeCatalog(books)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if _, err := gzipWriter.Write(data); err != nil {
		return "", err
	}
	if err := gzipWriter.Close(); err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s%s.json.gz", snapshotPrefix, b.now().UTC().Format("2006-01-02T15-04-05Z"))
	if err := storage.UploadFile(ctx, b.Client, b.Bucket, key, buf.Bytes()); err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	b.Logger.Info("Snapshot hochgeladen", zap.String("bucket", b.Bucket), zap.String("key", key), zap.Int("books", len(books)))

	if err := b.rotate(ctx); err != nil {
		return key, fmt.Errorf("rotate snapshots: %w", err)
	}
	return key, nil
}

func (b *BackupService) rotate(ctx context.Context) error {
	output, err := b.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.Bucket),
		Prefix: aws.String(snapshotPrefix),
	})
	if err != nil {
		return err
	}

	objects := output.Contents
	if len(objects) <= b.Keep {
		b.Logger.Debug("Keine Rotation nötig", zap.Int("snapshots", len(objects)), zap.Int("keep", b.Keep))
		return nil
	}

	sort.Slice(objects, func(i, j int) bool {
		return aws.ToTime(objects[i].LastModified).After(aws.ToTime(objects[j].LastModified))
	})

	var failed []string
	for _, obj := range objects[b.Keep:] {
		b.Logger.Info("Lösche alten Snapshot", zap.String("key", aws.ToString(obj.Key)))
		_, err := b.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(b.Bucket),
			Key:    obj.Key,
		})
		if err != nil {
			b.Logger.Warn("Snapshot konnte nicht gelöscht werden", zap.String("key", aws.ToString(obj.Key)), zap.Error(err))
			failed = append(failed, aws.ToString(obj.Key))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("could not delete %s", strings.Join(failed, ", "))
	}
	return nil
}
