// Package omdb wraps the OMDb HTTP API (https://www.omdbapi.com/).
//
// The client tolerates the API's quirks so the rest of the app never sees
// them: the "N/A" sentinel becomes nil, a "Response": "False" payload
// becomes an empty result instead of an error, and year ranges such as
// "1990–1993" are reduced to their first component. With no API key
// configured the client is disabled and every lookup returns no data, which
// keeps the app usable offline.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"moviweb/internal/apperror"
	"moviweb/internal/model"
)

const defaultBaseURL = "https://www.omdbapi.com/"

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an OMDb client. An empty apiKey yields a disabled
// client; lookups then return (nil, nil) rather than failing.
func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// payload mirrors OMDb's flat response document. All values arrive as
// strings; "N/A" marks an unknown field.
type payload struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Director   string `json:"Director"`
	Poster     string `json:"Poster"`
	Plot       string `json:"Plot"`
	Writer     string `json:"Writer"`
	Actors     string `json:"Actors"`
	Genre      string `json:"Genre"`
	Runtime    string `json:"Runtime"`
	Released   string `json:"Released"`
	Rated      string `json:"Rated"`
	Language   string `json:"Language"`
	Country    string `json:"Country"`
	Awards     string `json:"Awards"`
	IMDbRating string `json:"imdbRating"`
	IMDbID     string `json:"imdbID"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// Lookup queries OMDb by IMDb ID (authoritative) or title (fallback) and
// returns normalized metadata. A nil result with nil error means "no data":
// disabled client, nothing to look up, or the provider knows no such title.
// Transport failures and non-2xx responses surface as apperror.External.
func (c *Client) Lookup(ctx context.Context, imdbID, title string) (*model.MovieMetadata, error) {
	if !c.Enabled() {
		return nil, nil
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("plot", "short")
	switch {
	case imdbID != "":
		params.Set("i", imdbID)
	case title != "":
		params.Set("t", title)
	default:
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, apperror.External("OMDb request could not be built", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.External("OMDb is unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.External("failed to read OMDb response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperror.External("OMDb returned an error response",
			fmt.Errorf("omdb api error: status=%d body=%s", resp.StatusCode, string(body)))
	}

	var doc payload
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperror.External("failed to parse OMDb response", err)
	}

	// "Response": "False" is OMDb's way of saying "no such movie". That is
	// an empty result, not a failure.
	if !strings.EqualFold(doc.Response, "true") {
		return nil, nil
	}

	return &model.MovieMetadata{
		Title:      Clean(doc.Title),
		Year:       ParseYear(doc.Year),
		Director:   Clean(doc.Director),
		PosterURL:  Clean(doc.Poster),
		Plot:       Clean(doc.Plot),
		Writer:     Clean(doc.Writer),
		Actors:     Clean(doc.Actors),
		Genre:      Clean(doc.Genre),
		Runtime:    Clean(doc.Runtime),
		Released:   Clean(doc.Released),
		Rated:      Clean(doc.Rated),
		Language:   Clean(doc.Language),
		Country:    Clean(doc.Country),
		Awards:     Clean(doc.Awards),
		IMDbRating: Clean(doc.IMDbRating),
		IMDbID:     Clean(doc.IMDbID),
	}, nil
}

// Clean normalizes a provider string: empty or "N/A" (any casing) becomes
// nil, everything else is trimmed.
func Clean(v string) *string {
	s := strings.TrimSpace(v)
	if s == "" || strings.EqualFold(s, "N/A") {
		return nil
	}
	return &s
}

// ParseYear extracts the leading year from a provider year value. Series
// use ranges like "1990–1993" (en dash) or "1990-1993"; only the first
// component counts. Unparsable input yields nil.
func ParseYear(v string) *int {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	s = strings.SplitN(s, "–", 2)[0]
	s = strings.SplitN(s, "-", 2)[0]
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &year
}
