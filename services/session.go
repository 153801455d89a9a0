package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"reco-review/models"
	"reco-review/storage"
)

// ReviewSession hält Katalog, Cursor und Referenztabelle einer Review-Sitzung.
// Der Katalog im Store bleibt die einzige Wahrheit, Cursor und Ansichten sind abgeleitet.
type ReviewSession struct {
	mu sync.Mutex

	books        []models.Book
	reference    models.InfluencerTable
	store        storage.CatalogStore
	coverBaseURL string
	index        int

	Logger *zap.Logger
}

// NewReviewSession erstellt eine Sitzung mit Cursor auf dem ersten Buch.
func NewReviewSession(books []models.Book, reference models.InfluencerTable, store storage.CatalogStore, coverBaseURL string, logger *zap.Logger) (*ReviewSession, error) {
	if len(books) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &ReviewSession{
		books:        books,
		reference:    reference,
		store:        store,
		coverBaseURL: coverBaseURL,
		Logger:       logger,
	}, nil
}

// Len gibt die Anzahl der Bücher zurück.
func (s *ReviewSession) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.books)
}

// Index gibt die aktuelle Cursor-Position zurück.
func (s *ReviewSession) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Advance verschiebt den Cursor um delta und springt an beiden Enden um.
func (s *ReviewSession) Advance(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.books)
	s.index = ((s.index+delta)%n + n) % n
	return s.index
}

// Current baut die Ansicht des aktuellen Buchs neu auf.
func (s *ReviewSession) Current() (BookView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, err := buildView(s.books[s.index], s.reference, s.coverBaseURL)
	if err != nil {
		return BookView{}, err
	}
	view.Index = s.index
	view.Total = len(s.books)
	return view, nil
}

// Commit überschreibt die Bewertungen eines Buchs vollständig und speichert den ganzen Katalog.
// Ränge ohne Eintrag in choices werden auf false gesetzt. Schlägt das Speichern fehl,
// bleibt der geänderte Stand im Speicher und ein erneuter Commit schreibt ihn erneut.
func (s *ReviewSession) Commit(ctx context.Context, bookID int, choices map[int]bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := -1
	for i := range s.books {
		if s.books[i].ID == bookID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return ErrBookNotFound
	}

	recs := s.books[pos].Recommendations
	marked := 0
	for i := range recs {
		recs[i].IsCorrect = choices[recs[i].Rank]
		if recs[i].IsCorrect {
			marked++
		}
	}

	log := s.Logger.With(zap.Int("book_id", bookID), zap.String("location", s.store.Location()))
	if err := s.store.Save(ctx, s.books); err != nil {
		log.Error("Katalog konnte nicht gespeichert werden", zap.Error(err))
		return err
	}
	log.Info("Bewertungen gespeichert", zap.Int("recommendations", len(recs)), zap.Int("correct", marked))
	return nil
}

// Load gibt eine Kopie des Katalogs im Speicher zurück, so wie ihn der letzte Commit geschrieben hat.
// Damit lesen Snapshots nie eine gerade zur Hälfte geschriebene Datei.
func (s *ReviewSession) Load(ctx context.Context) ([]models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := make([]models.Book, len(s.books))
	for i, b := range s.books {
		b.Subjects = append([]string(nil), b.Subjects...)
		b.Recommendations = append([]models.Recommendation(nil), b.Recommendations...)
		books[i] = b
	}
	return books, nil
}

// Stats zählt Bücher und als korrekt markierte Empfehlungen.
func (s *ReviewSession) Stats() (books, correct int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.books {
		for _, r := range b.Recommendations {
			if r.IsCorrect {
				correct++
			}
		}
	}
	return len(s.books), correct
}
