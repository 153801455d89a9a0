package services

import (
	"fmt"
	"strings"

	"reco-review/models"
)

// MaxDisplayedRecommendations begrenzt die Anzahl der angezeigten Empfehlungen pro Buch.
const MaxDisplayedRecommendations = 10

const (
	notAvailable         = "N/A"
	noDescriptionMessage = "No description available"
)

// BookView ist die angereicherte, flüchtige Ansicht des aktuellen Buchs.
type BookView struct {
	Index       int    `json:"index"`
	Total       int    `json:"total"`
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	ImageURL    string `json:"image_url"`
	Subjects    string `json:"subjects"`
	LCC1        string `json:"LCC_1"`
	LCC2        string `json:"LCC_2"`
	Description string `json:"description"`

	Recommendations []RecommendationView `json:"recommendations"`
}

// RecommendationView verbindet eine Empfehlung mit ihren Influencer-Daten.
type RecommendationView struct {
	Rank        int     `json:"rank"`
	AccountName string  `json:"account_name"`
	Score       float64 `json:"score"`
	IsCorrect   bool    `json:"correct_reco"`
	Label       string  `json:"label"`

	FullName          string `json:"full_name"`
	Link              string `json:"link"`
	BusinessCategory  string `json:"business_category"`
	FollowersCount    int64  `json:"followers_count"`
	Biography         string `json:"biography"`
	AdditionalContent string `json:"additional_content"`
}

// CoverURL baut die URL des Titelbilds nach dem Gutenberg-Muster.
func CoverURL(baseURL string, bookID int) string {
	return fmt.Sprintf("%s/%d/pg%d.cover.medium.jpg", strings.TrimRight(baseURL, "/"), bookID, bookID)
}

// CheckboxLabel liefert die Beschriftung der Checkbox einer Empfehlung.
func CheckboxLabel(r models.Recommendation) string {
	return fmt.Sprintf("Rank %d: %s (Score: %.2f)", r.Rank, r.AccountName, r.Score)
}

func buildView(book models.Book, reference models.InfluencerTable, coverBaseURL string) (BookView, error) {
	view := BookView{
		ID:          book.ID,
		Title:       book.Title,
		Author:      book.Author,
		ImageURL:    CoverURL(coverBaseURL, book.ID),
		Subjects:    orDefault(strings.Join(book.Subjects, ", "), notAvailable),
		LCC1:        orDefault(book.LCC1, notAvailable),
		LCC2:        orDefault(book.LCC2, notAvailable),
		Description: orDefault(book.Description, noDescriptionMessage),
	}

	recs := book.Recommendations
	if len(recs) > MaxDisplayedRecommendations {
		recs = recs[:MaxDisplayedRecommendations]
	}
	view.Recommendations = make([]RecommendationView, 0, len(recs))
	for _, r := range recs {
		inf, ok := reference.Lookup(r.AccountName)
		if !ok {
			return BookView{}, &ReferenceNotFoundError{BookID: book.ID, Rank: r.Rank, AccountName: r.AccountName}
		}
		view.Recommendations = append(view.Recommendations, RecommendationView{
			Rank:              r.Rank,
			AccountName:       r.AccountName,
			Score:             r.Score,
			IsCorrect:         r.IsCorrect,
			Label:             CheckboxLabel(r),
			FullName:          inf.FullName,
			Link:              inf.InputURL,
			BusinessCategory:  inf.BusinessCategory,
			FollowersCount:    inf.FollowersCount,
			Biography:         inf.Biography,
			AdditionalContent: inf.AdditionalContent,
		})
	}
	return view, nil
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
