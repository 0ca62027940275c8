package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const volumesFixture = `{
  "items": [
    {
      "volumeInfo": {
        "title": "The Hobbit",
        "authors": ["J.R.R. Tolkien"],
        "industryIdentifiers": [
          {"type": "ISBN_10", "identifier": "0261103342"},
          {"type": "ISBN_13", "identifier": "9780261103344"}
        ],
        "imageLinks": {"thumbnail": "http://covers.example.com/hobbit.jpg"}
      }
    },
    {
      "volumeInfo": {
        "title": "Old Pamphlet",
        "authors": ["Anon"],
        "industryIdentifiers": [
          {"type": "OTHER", "identifier": "OCLC:12345"}
        ]
      }
    },
    {
      "volumeInfo": {
        "authors": [],
        "industryIdentifiers": [
          {"type": "ISBN_10", "identifier": "0441013597"}
        ]
      }
    }
  ]
}`

func TestSearchParsesVolumes(t *testing.T) {
	var gotQuery, gotMax string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotMax = r.URL.Query().Get("maxResults")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(volumesFixture))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	volumes, err := c.Search(context.Background(), "tolkien")
	require.NoError(t, err)

	assert.Equal(t, "tolkien", gotQuery)
	assert.Equal(t, "40", gotMax)

	// The OCLC-only pamphlet has no ISBN and is dropped.
	require.Len(t, volumes, 2)

	hobbit := volumes[0]
	assert.Equal(t, "The Hobbit", hobbit.Title)
	assert.Equal(t, "J.R.R. Tolkien", hobbit.Author)
	// ISBN-13 wins over ISBN-10 when both are present.
	assert.Equal(t, "9780261103344", hobbit.ISBN)
	require.NotNil(t, hobbit.Thumbnail)
	assert.Equal(t, "http://covers.example.com/hobbit.jpg", *hobbit.Thumbnail)

	// Missing title and authors fall back to Unknown; ISBN-10 is accepted alone.
	unknown := volumes[1]
	assert.Equal(t, "Unknown", unknown.Title)
	assert.Equal(t, "Unknown", unknown.Author)
	assert.Equal(t, "0441013597", unknown.ISBN)
	assert.Nil(t, unknown.Thumbnail)
}

func TestSearchJoinsMultipleAuthors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"volumeInfo":{
			"title": "Good Omens",
			"authors": ["Terry Pratchett", "Neil Gaiman"],
			"industryIdentifiers": [{"type": "ISBN_13", "identifier": "9780060853976"}]
		}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	volumes, err := c.Search(context.Background(), "good omens")
	require.NoError(t, err)
	require.Len(t, volumes, 1)
	assert.Equal(t, "Terry Pratchett, Neil Gaiman", volumes[0].Author)
}

func TestSearchEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalItems": 0}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	volumes, err := c.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, volumes)
}

func TestSearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Search(context.Background(), "anything")
	assert.Error(t, err)
}
