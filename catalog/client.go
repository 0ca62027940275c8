// Package catalog queries the external Google Books volumes API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxResults is the page size requested from the volumes API.
const maxResults = 40

// Client calls the Google Books volumes endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Volume is one catalog entry reduced to the fields the library stores.
type Volume struct {
	Title     string
	Author    string
	ISBN      string
	Thumbnail *string
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title               string               `json:"title"`
			Authors             []string             `json:"authors"`
			IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
			ImageLinks          struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Search queries the catalog and returns entries that carry a usable ISBN.
// ISBN-13 is preferred, ISBN-10 is the fallback; entries with neither are
// skipped because the ISBN is the local natural key.
func (c *Client) Search(ctx context.Context, query string) ([]Volume, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("maxResults", fmt.Sprint(maxResults))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request failed: %s", resp.Status)
	}

	var data volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	var volumes []Volume
	for _, item := range data.Items {
		info := item.VolumeInfo

		isbn := pickISBN(info.IndustryIdentifiers, "ISBN_13")
		if isbn == "" {
			isbn = pickISBN(info.IndustryIdentifiers, "ISBN_10")
		}
		if isbn == "" {
			continue
		}

		v := Volume{
			Title:  info.Title,
			Author: strings.Join(info.Authors, ", "),
			ISBN:   isbn,
		}
		if v.Title == "" {
			v.Title = "Unknown"
		}
		if v.Author == "" {
			v.Author = "Unknown"
		}
		if info.ImageLinks.Thumbnail != "" {
			thumb := info.ImageLinks.Thumbnail
			v.Thumbnail = &thumb
		}
		volumes = append(volumes, v)
	}
	return volumes, nil
}

func pickISBN(ids []industryIdentifier, kind string) string {
	for _, id := range ids {
		if id.Type == kind {
			return id.Identifier
		}
	}
	return ""
}
