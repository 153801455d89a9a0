package models

import (
	"encoding/json"
	"sort"
	"strings"
)

// Book ist ein zu prüfender Eintrag des Katalogs mit seinen Empfehlungen.
type Book struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Subjects    []string `json:"subjects"`
	LCC1        string   `json:"LCC_1,omitempty"`
	LCC2        string   `json:"LCC_2,omitempty"`
	Description string   `json:"description,omitempty"`

	// Reihenfolge entspricht dem Rang, darf beim Speichern nicht verändert werden.
	Recommendations []Recommendation `json:"recommendation"`

	// Extra enthält alle weiteren Spalten des Katalogs, damit sie beim Speichern erhalten bleiben.
	Extra map[string]json.RawMessage `json:"-"`
}

// Recommendation ist ein vorgeschlagener Influencer für ein Buch.
type Recommendation struct {
	Rank        int     `json:"rank"`
	AccountName string  `json:"account_name"`
	Score       float64 `json:"score"`
	// Einziges Feld, das die Review-Session verändert.
	IsCorrect bool `json:"correct_reco"`

	Extra map[string]json.RawMessage `json:"-"`
}

var (
	bookKeys           = []string{"id", "title", "author", "subjects", "LCC_1", "LCC_2", "description", "recommendation"}
	recommendationKeys = []string{"rank", "account_name", "score", "correct_reco"}
)

type bookFields Book

type recommendationFields Recommendation

func (b *Book) UnmarshalJSON(data []byte) error {
	var fields bookFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := unknownKeys(data, bookKeys)
	if err != nil {
		return err
	}
	fields.Extra = extra
	*b = Book(fields)
	return nil
}

func (b Book) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(bookFields(b))
	if err != nil {
		return nil, err
	}
	return appendKeys(data, b.Extra)
}

func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var fields recommendationFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := unknownKeys(data, recommendationKeys)
	if err != nil {
		return err
	}
	fields.Extra = extra
	*r = Recommendation(fields)
	return nil
}

func (r Recommendation) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(recommendationFields(r))
	if err != nil {
		return nil, err
	}
	return appendKeys(data, r.Extra)
}

// unknownKeys sammelt die Schlüssel, die kein Struct-Feld belegen.
// encoding/json ordnet Schlüssel ohne Beachtung der Groß-/Kleinschreibung zu, daher EqualFold.
func unknownKeys(data []byte, known []string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for key := range raw {
		for _, k := range known {
			if strings.EqualFold(key, k) {
				delete(raw, key)
				break
			}
		}
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// appendKeys hängt die Zusatzspalten sortiert an das Objekt an, damit die Ausgabe stabil bleibt.
func appendKeys(object []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return object, nil
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]byte, 0, len(object)+64*len(keys))
	out = append(out, object[:len(object)-1]...)
	for i, k := range keys {
		if i > 0 || len(object) > 2 {
			out = append(out, ',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		out = append(out, name...)
		out = append(out, ':')
		out = append(out, extra[k]...)
	}
	return append(out, '}'), nil
}
