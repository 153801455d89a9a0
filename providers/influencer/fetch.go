package influencer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"reco-review/models"
)

var httpClient = &http.Client{Timeout: 60 * time.Second}

// record ist eine Zeile der Remote-Tabelle. Weitere Spalten (z.B. Embeddings) werden ignoriert.
type record struct {
	AccountName       string   `json:"account_name"`
	FullName          string   `json:"fullName"`
	InputURL          string   `json:"inputUrl"`
	BusinessCategory  string   `json:"businessCategoryName"`
	FollowersCount    *float64 `json:"followersCount"`
	Biography         string   `json:"biography"`
	AdditionalContent string   `json:"additional_content"`
}

// Fetcher lädt die Influencer-Tabelle per HTTP GET.
type Fetcher struct {
	URL    string
	Client *http.Client
	Logger *zap.Logger
}

// NewFetcher erstellt einen neuen Influencer-Fetcher.
func NewFetcher(url string, logger *zap.Logger) *Fetcher {
	return &Fetcher{URL: url, Client: httpClient, Logger: logger}
}

// Name gibt den Namen der Quelle zurück.
func (f *Fetcher) Name() string {
	return "influencer"
}

// Fetch lädt und parst die Tabelle. Es gibt genau einen Versuch.
func (f *Fetcher) Fetch(ctx context.Context) (models.InfluencerTable, error) {
	log := f.Logger.With(zap.String("url", f.URL))
	log.Info("Lade Influencer-Tabelle.")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, &FetchError{URL: f.URL, Err: err}
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: f.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: f.URL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: f.URL, Err: err}
	}

	table, err := Parse(body)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.URL = f.URL
		}
		return nil, err
	}

	log.Info("Influencer-Tabelle geladen", zap.Int("count", len(table)))
	return table, nil
}

// Parse liest den Payload und projiziert ihn auf die Anzeige-Felder.
func Parse(data []byte) (models.InfluencerTable, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &ParseError{Reason: "invalid json", Err: err}
	}
	if records == nil {
		return nil, &ParseError{Reason: "payload is not a list"}
	}

	table := make(models.InfluencerTable, len(records))
	for i, r := range records {
		if r.AccountName == "" {
			return nil, &ParseError{Reason: fmt.Sprintf("row %d has no account_name", i)}
		}
		if _, dup := table[r.AccountName]; dup {
			return nil, &ParseError{Reason: fmt.Sprintf("duplicate account_name %q", r.AccountName)}
		}
		var followers int64
		if r.FollowersCount != nil {
			followers = int64(*r.FollowersCount)
		}
		table[r.AccountName] = models.Influencer{
			AccountName:       r.AccountName,
			FullName:          r.FullName,
			InputURL:          r.InputURL,
			BusinessCategory:  r.BusinessCategory,
			FollowersCount:    followers,
			Biography:         r.Biography,
			AdditionalContent: r.AdditionalContent,
		}
	}
	return table, nil
}
