package omdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"moviweb/internal/apperror"
)

// newTestClient points a client at a stub OMDb server.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", 2*time.Second)
	c.baseURL = srv.URL + "/"
	return c
}

// =============================================================================
// LOOKUP
// =============================================================================

func TestClient_Lookup_NormalizesResponse(t *testing.T) {
	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Title": "Twin Peaks",
			"Year": "1990–1991",
			"Director": "N/A",
			"Poster": "https://example.com/poster.jpg",
			"Plot": "  A small town hides a secret.  ",
			"Genre": "Drama, Mystery",
			"imdbRating": "8.8",
			"imdbID": "tt0098936",
			"Response": "True"
		}`))
	})

	meta, err := c.Lookup(context.Background(), "", "Twin Peaks")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta == nil {
		t.Fatal("expected metadata, got nil")
	}

	if gotQuery.Get("t") != "Twin Peaks" || gotQuery.Get("apikey") != "test-key" {
		t.Errorf("unexpected query: %v", gotQuery)
	}
	if meta.Title == nil || *meta.Title != "Twin Peaks" {
		t.Errorf("title = %v", meta.Title)
	}
	if meta.Year == nil || *meta.Year != 1990 {
		t.Errorf("year = %v, want first component of the range", meta.Year)
	}
	if meta.Director != nil {
		t.Errorf("director = %v, N/A must normalize to nil", meta.Director)
	}
	if meta.Plot == nil || *meta.Plot != "A small town hides a secret." {
		t.Errorf("plot = %v, want trimmed value", meta.Plot)
	}
	if meta.IMDbID == nil || *meta.IMDbID != "tt0098936" {
		t.Errorf("imdb id = %v", meta.IMDbID)
	}
	// Fields the payload omitted come back absent, not empty.
	if meta.Writer != nil || meta.Actors != nil {
		t.Error("omitted fields should be nil")
	}
}

func TestClient_Lookup_PrefersIMDbID(t *testing.T) {
	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"Title": "Inception", "Response": "True"}`))
	})

	if _, err := c.Lookup(context.Background(), "tt1375666", "Inception"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery.Get("i") != "tt1375666" {
		t.Errorf("i = %q, want the IMDb ID", gotQuery.Get("i"))
	}
	if gotQuery.Has("t") {
		t.Error("title param should be omitted when an IMDb ID is available")
	}
}

func TestClient_Lookup_MovieNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response": "False", "Error": "Movie not found!"}`))
	})

	meta, err := c.Lookup(context.Background(), "", "no such movie")
	if err != nil {
		t.Fatalf("a no-match response is not an error, got: %v", err)
	}
	if meta != nil {
		t.Errorf("meta = %+v, want nil", meta)
	}
}

func TestClient_Lookup_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})

	_, err := c.Lookup(context.Background(), "", "Inception")
	if !errors.Is(err, apperror.ErrExternal) {
		t.Errorf("error = %v, want external-service error", err)
	}
}

func TestClient_Lookup_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})

	_, err := c.Lookup(context.Background(), "", "Inception")
	if !errors.Is(err, apperror.ErrExternal) {
		t.Errorf("error = %v, want external-service error", err)
	}
}

func TestClient_Lookup_Disabled(t *testing.T) {
	c := NewClient("", 2*time.Second)
	c.baseURL = "http://127.0.0.1:1/" // must never be contacted

	meta, err := c.Lookup(context.Background(), "", "Inception")
	if err != nil {
		t.Fatalf("a disabled client must not fail: %v", err)
	}
	if meta != nil {
		t.Errorf("meta = %+v, want nil", meta)
	}
	if c.Enabled() {
		t.Error("client without an API key should report disabled")
	}
}

func TestClient_Lookup_NothingToLookUp(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made without an ID or title")
	})

	meta, err := c.Lookup(context.Background(), "", "")
	if err != nil || meta != nil {
		t.Errorf("got (%+v, %v), want (nil, nil)", meta, err)
	}
}

// =============================================================================
// NORMALIZATION HELPERS
// =============================================================================

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want *string
	}{
		{"Inception", ptr("Inception")},
		{"  Inception  ", ptr("Inception")},
		{"N/A", nil},
		{"n/a", nil},
		{" N/A ", nil},
		{"", nil},
		{"   ", nil},
	}

	for _, tt := range tests {
		got := Clean(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("Clean(%q) = %q, want nil", tt.in, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("Clean(%q) = %v, want %q", tt.in, got, *tt.want)
		}
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"2010", intp(2010)},
		{"  2010  ", intp(2010)},
		{"1990–1993", intp(1990)},
		{"1990-1993", intp(1990)},
		{"2015–", intp(2015)},
		{"N/A", nil},
		{"", nil},
		{"next year", nil},
	}

	for _, tt := range tests {
		got := ParseYear(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("ParseYear(%q) = %d, want nil", tt.in, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("ParseYear(%q) = %v, want %d", tt.in, got, *tt.want)
		}
	}
}

func ptr(s string) *string { return &s }
func intp(i int) *int      { return &i }
