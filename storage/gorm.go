package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reco-review/models"
)

// DBStore hält den Katalog als ein Dokument in der Tabelle catalog_documents.
type DBStore struct {
	DB   *gorm.DB
	Name string
}

// NewDBStore erstellt einen DBStore und migriert die Tabelle.
func NewDBStore(db *gorm.DB, name string) (*DBStore, error) {
	if err := db.AutoMigrate(&models.CatalogDocument{}); err != nil {
		return nil, fmt.Errorf("migrate catalog_documents: %w", err)
	}
	return &DBStore{DB: db, Name: name}, nil
}

func (s *DBStore) Load(ctx context.Context) ([]models.Book, error) {
	var doc models.CatalogDocument
	err := s.DB.WithContext(ctx).Where("name = ?", s.Name).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("catalog %q not found in database: %w", s.Name, err)
	}
	if err != nil {
		return nil, fmt.Errorf("query catalog %q: %w", s.Name, err)
	}
	return DecodeCatalog([]byte(doc.Payload))
}

// Save schreibt das komplette Dokument per Upsert.
func (s *DBStore) Save(ctx context.Context, books []models.Book) error {
	data, err := EncodeCatalog(books)
	if err != nil {
		return err
	}
	doc := models.CatalogDocument{Name: s.Name, Payload: string(data)}
	err = s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("upsert catalog %q: %w", s.Name, err)
	}
	return nil
}

func (s *DBStore) Location() string {
	return "db://" + s.Name
}
