// Package reviews fetches the read-only best-seller feed shown on the
// reviews screen. It is entirely separate from the local store: nothing
// here is persisted.
package reviews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.nytimes.com/svc/books/v3"

// DefaultList is the best-seller list shown when none is configured.
const DefaultList = "hardcover-fiction"

// Book is one entry of a best-seller list.
type Book struct {
	Rank          int    `json:"rank"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	Description   string `json:"description"`
	PrimaryISBN10 string `json:"primary_isbn10"`
	PrimaryISBN13 string `json:"primary_isbn13"`
	ImageURL      string `json:"book_image"`
}

type listResponse struct {
	Status  string `json:"status"`
	Results struct {
		ListName string `json:"list_name"`
		Books    []Book `json:"books"`
	} `json:"results"`
}

// Client calls the NYT Books API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient returns a client using the given API key. A short timeout
// keeps a slow feed from hanging the reviews screen.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
	}
}

// NewClientWithBaseURL is NewClient pointed at a different endpoint,
// used by tests.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// CurrentList fetches the current edition of the named best-seller list.
func (c *Client) CurrentList(ctx context.Context, list string) ([]Book, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("reviews: API key is not set")
	}
	if list == "" {
		list = DefaultList
	}

	q := url.Values{}
	q.Set("api-key", c.apiKey)
	u := fmt.Sprintf("%s/lists/current/%s.json?%s", c.baseURL, url.PathEscape(list), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reviews: fetch %s: %w", list, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reviews: feed returned %d", resp.StatusCode)
	}

	var data listResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("reviews: decode feed: %w", err)
	}
	return data.Results.Books, nil
}

// FilterByTitle returns the books whose title contains term,
// case-insensitively. A blank term returns the input unchanged.
func FilterByTitle(books []Book, term string) []Book {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return books
	}
	matched := []Book{}
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), term) {
			matched = append(matched, b)
		}
	}
	return matched
}
