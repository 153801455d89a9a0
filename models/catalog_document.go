package models

import "time"

// CatalogDocument speichert den vollständigen, serialisierten Katalog als eine Zeile.
type CatalogDocument struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name    string `json:"name" gorm:"uniqueIndex;not null"`
	Payload string `json:"payload" gorm:"type:text;not null"`
}

// TableName gibt explizit den Tabellennamen an.
func (CatalogDocument) TableName() string {
	return "catalog_documents"
}
