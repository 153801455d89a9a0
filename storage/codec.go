package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"reco-review/models"
)

// ErrMalformedCatalog wird zurückgegeben, wenn der gespeicherte Katalog nicht lesbar ist.
var ErrMalformedCatalog = errors.New("malformed catalog")

// EncodeCatalog serialisiert den kompletten Katalog. Die Ausgabe ist für
// identische Eingaben byte-gleich.
func EncodeCatalog(books []models.Book) ([]byte, error) {
	if books == nil {
		books = []models.Book{}
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeCatalog liest den Katalog und prüft die Eindeutigkeit von Buch-IDs und Rängen.
// Ränge beginnen bei 1.
// Fehlende correct_reco-Felder werden als false geladen.
func DecodeCatalog(data []byte) ([]models.Book, error) {
	var books []models.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	if books == nil {
		return nil, fmt.Errorf("%w: no book list", ErrMalformedCatalog)
	}

	seenBooks := make(map[int]struct{}, len(books))
	for _, b := range books {
		if _, dup := seenBooks[b.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate book id %d", ErrMalformedCatalog, b.ID)
		}
		seenBooks[b.ID] = struct{}{}

		seenRanks := make(map[int]struct{}, len(b.Recommendations))
		for _, r := range b.Recommendations {
			if r.Rank < 1 {
				return nil, fmt.Errorf("%w: rank %d in book %d is below 1", ErrMalformedCatalog, r.Rank, b.ID)
			}
			if _, dup := seenRanks[r.Rank]; dup {
				return nil, fmt.Errorf("%w: duplicate rank %d in book %d", ErrMalformedCatalog, r.Rank, b.ID)
			}
			seenRanks[r.Rank] = struct{}{}
		}
	}
	return books, nil
}
