package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sebastiantruijens/moviegrid/internal/movie"
)

// DefaultTopK is sent for any property missing from the lookup table.
const DefaultTopK = 500

// topK is a fixed policy per search property, not user-configurable.
var topK = map[string]int{
	"title":        200,
	"cast":         300,
	"release_date": 2000,
	"genre":        5000,
	"plot":         500,
}

// Property is one searchable movie field offered by the form.
type Property struct {
	Value string
	Label string
}

// Properties lists the search properties in form order.
var Properties = []Property{
	{Value: "title", Label: "Title"},
	{Value: "cast", Label: "Cast"},
	{Value: "genre", Label: "Genre"},
	{Value: "director", Label: "Director"},
	{Value: "release_date", Label: "Release Date"},
	{Value: "plot", Label: "Plot"},
}

// TopK returns the number of neighbours requested for property.
func TopK(property string) int {
	if k, ok := topK[property]; ok {
		return k
	}
	return DefaultTopK
}

// Request is the JSON body of POST /query.
type Request struct {
	Query    string `json:"query"`
	TopK     int    `json:"top_k"`
	Property string `json:"property"`
}

// Result is one hit of the vector search.
type Result struct {
	Metadata movie.Movie `json:"metadata"`
}

// Response is the JSON body returned by POST /query.
type Response struct {
	Results []Result `json:"results"`
}

// StatusError reports a non-2xx answer from the search API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! Status: %d", e.Code)
}

// ErrMissingInput is returned when the query or the property is blank.
var ErrMissingInput = errors.New("query and property are required")

// Searcher runs a single search against the remote API.
type Searcher interface {
	Search(ctx context.Context, query, property string) ([]movie.Movie, error)
}

// Client handles interactions with the vector-search API
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new API client rooted at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search posts query to /query and returns the movie records in response order.
// A single attempt is made; failures are returned, never retried.
func (c *Client) Search(ctx context.Context, query, property string) ([]movie.Movie, error) {
	query = strings.TrimSpace(query)
	property = strings.TrimSpace(property)
	if query == "" || property == "" {
		return nil, ErrMissingInput
	}

	body, err := json.Marshal(Request{
		Query:    query,
		TopK:     TopK(property),
		Property: property,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var data Response
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	movies := make([]movie.Movie, 0, len(data.Results))
	for _, r := range data.Results {
		movies = append(movies, r.Metadata)
	}
	return movies, nil
}
