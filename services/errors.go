package services

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCatalog: ohne Bücher gibt es keinen gültigen Cursor.
	ErrEmptyCatalog = errors.New("catalog has no books")
	// ErrBookNotFound: die Buch-ID existiert nicht im Katalog.
	ErrBookNotFound = errors.New("book not found")
	// ErrReferenceNotFound: eine Empfehlung verweist auf einen unbekannten Account.
	ErrReferenceNotFound = errors.New("reference entry not found")
)

// ReferenceNotFoundError beschreibt eine Empfehlung ohne passenden Influencer.
// Das ist ein Datenfehler und wird nie still übersprungen.
type ReferenceNotFoundError struct {
	BookID      int
	Rank        int
	AccountName string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("book %d rank %d: no reference entry for account %q", e.BookID, e.Rank, e.AccountName)
}

func (e *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrReferenceNotFound
}
