// Package metadata fetches book metadata from the Google Books API for the
// catalog-import path.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// BookMetadata contains book information fetched from Google Books.
type BookMetadata struct {
	GoogleBooksID string `json:"google_books_id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
}

// GoogleBooksClient fetches volume data from the Google Books API.
type GoogleBooksClient struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewGoogleBooksClient creates a new Google Books API client with rate limiting.
func NewGoogleBooksClient() *GoogleBooksClient {
	return &GoogleBooksClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     "https://www.googleapis.com/books/v1",
		rateLimiter: newRateLimiter(time.Second),
	}
}

// googleBooksVolume mirrors the subset of the volumes response we use.
type googleBooksVolume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title         string   `json:"title"`
		Authors       []string `json:"authors"`
		Description   string   `json:"description"`
		PublishedDate string   `json:"publishedDate"`
		ImageLinks    struct {
			Thumbnail      string `json:"thumbnail"`
			SmallThumbnail string `json:"smallThumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

// GetVolume fetches a single volume by its Google Books ID.
func (c *GoogleBooksClient) GetVolume(ctx context.Context, volumeID string) (*BookMetadata, error) {
	volumeID = strings.TrimSpace(volumeID)
	if volumeID == "" {
		return nil, fmt.Errorf("volume ID is required")
	}

	c.rateLimiter.wait()

	url := fmt.Sprintf("%s/volumes/%s", c.baseURL, volumeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Bookshelf/1.0 (https://github.com/mrlokans/bookshelf)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch volume: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("volume not found: %s", volumeID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var volume googleBooksVolume
	if err := json.NewDecoder(resp.Body).Decode(&volume); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return volumeToMetadata(&volume), nil
}

func volumeToMetadata(v *googleBooksVolume) *BookMetadata {
	meta := &BookMetadata{
		GoogleBooksID: v.ID,
		Title:         v.VolumeInfo.Title,
		Author:        strings.Join(v.VolumeInfo.Authors, ", "),
		Description:   v.VolumeInfo.Description,
		PublishedDate: normalizePublishedDate(v.VolumeInfo.PublishedDate),
	}

	cover := v.VolumeInfo.ImageLinks.Thumbnail
	if cover == "" {
		cover = v.VolumeInfo.ImageLinks.SmallThumbnail
	}
	// Google Books returns http:// links for covers
	meta.CoverImageURL = strings.Replace(cover, "http://", "https://", 1)

	return meta
}

// normalizePublishedDate pads partial dates ("2006", "2006-01") to full ISO
// dates since the catalog stores YYYY-MM-DD.
func normalizePublishedDate(date string) string {
	switch len(date) {
	case 4:
		return date + "-01-01"
	case 7:
		return date + "-01"
	default:
		return date
	}
}
