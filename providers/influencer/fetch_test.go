package influencer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const payload = `[
  {"account_name": "janeite", "fullName": "Jane Fan", "inputUrl": "https://instagram.com/janeite",
   "businessCategoryName": "Book Blogger", "followersCount": 12500.0, "biography": "Regency all day",
   "additional_content": "<b>posts</b>", "embedding": [0.1, 0.2]},
  {"account_name": "seafarer", "fullName": "Sea Farer", "inputUrl": "https://instagram.com/seafarer",
   "businessCategoryName": null, "followersCount": null, "biography": "", "additional_content": null}
]`

func newTestFetcher(url string) *Fetcher {
	return &Fetcher{URL: url, Client: &http.Client{}, Logger: zap.NewNop()}
}

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	table, err := newTestFetcher(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 2)

	jane, ok := table.Lookup("janeite")
	require.True(t, ok)
	assert.Equal(t, "Jane Fan", jane.FullName)
	assert.Equal(t, "https://instagram.com/janeite", jane.InputURL)
	assert.Equal(t, "Book Blogger", jane.BusinessCategory)
	assert.Equal(t, int64(12500), jane.FollowersCount)
	assert.Equal(t, "Regency all day", jane.Biography)
	assert.Equal(t, "<b>posts</b>", jane.AdditionalContent)

	sea, ok := table.Lookup("seafarer")
	require.True(t, ok)
	assert.Equal(t, int64(0), sea.FollowersCount)
	assert.Empty(t, sea.AdditionalContent)
}

func TestFetcher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL).Fetch(context.Background())

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
	assert.Equal(t, srv.URL, fetchErr.URL)
}

func TestFetcher_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestFetcher(url).Fetch(context.Background())

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.StatusCode)
	assert.Error(t, fetchErr.Err)
}

func TestFetcher_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"account_name":`))
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL).Fetch(context.Background())

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, srv.URL, parseErr.URL)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "object instead of list", data: `{"account_name": "a"}`},
		{name: "null", data: `null`},
		{name: "missing account name", data: `[{"fullName": "x"}]`},
		{name: "duplicate account name", data: `[{"account_name": "a"}, {"account_name": "a"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}
