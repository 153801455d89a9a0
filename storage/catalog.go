package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"reco-review/models"
)

// CatalogStore lädt und speichert den kompletten Katalog.
// Save ersetzt den vorherigen Stand vollständig, es gibt keine Teil-Updates.
type CatalogStore interface {
	Load(ctx context.Context) ([]models.Book, error)
	Save(ctx context.Context, books []models.Book) error
	// Location beschreibt den Speicherort für Logs.
	Location() string
}

// FileStore hält den Katalog als JSON-Datei im lokalen Dateisystem.
type FileStore struct {
	Path string
}

// NewFileStore erstellt einen FileStore für den gegebenen Pfad.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load(ctx context.Context) ([]models.Book, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", s.Path, err)
	}
	return DecodeCatalog(data)
}

// Save überschreibt die Datei direkt, ohne Backup und ohne atomaren Austausch.
func (s *FileStore) Save(ctx context.Context, books []models.Book) error {
	data, err := EncodeCatalog(books)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog dir: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog %s: %w", s.Path, err)
	}
	return nil
}

func (s *FileStore) Location() string {
	return "file://" + s.Path
}
