package providers

import (
	"context"

	"reco-review/models"
)

// ReferenceSource liefert die Referenztabelle, die zur Anzeige an die Empfehlungen gejoint wird.
type ReferenceSource interface {
	// Fetch lädt die Tabelle genau einmal, ohne Retry.
	Fetch(ctx context.Context) (models.InfluencerTable, error)

	// Name gibt den eindeutigen Namen der Quelle zurück (z.B. "influencer").
	Name() string
}
