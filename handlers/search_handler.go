package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"libraryhub/catalog"
	"libraryhub/models"
	"libraryhub/repository"
)

// SearchHandler queries the external catalog and folds results into the
// local book table.
type SearchHandler struct {
	Books   repository.BookRepository
	Catalog *catalog.Client
}

// Search looks up the query in the external catalog, upserts each result
// into the local books table keyed by ISBN, and returns the LOCAL rows so
// ids and lending status stay consistent with local state. A catalog
// failure yields an empty list, not an error response.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Missing query parameter",
		})
		return
	}

	volumes, err := h.Catalog.Search(r.Context(), query)
	if err != nil {
		log.Printf("catalog search failed for %q: %v", query, err)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]*models.Book{})
		return
	}

	books := make([]*models.Book, 0, len(volumes))
	seen := make(map[string]bool)
	for _, v := range volumes {
		if seen[v.ISBN] {
			continue
		}
		seen[v.ISBN] = true

		book, err := h.Books.GetBookByISBN(r.Context(), v.ISBN)
		if err != nil {
			log.Printf("lookup isbn %s: %v", v.ISBN, err)
			continue
		}
		if book == nil {
			book = &models.Book{
				Title:     v.Title,
				Author:    v.Author,
				ISBN:      v.ISBN,
				Status:    models.BookAvailable,
				Thumbnail: v.Thumbnail,
			}
			if err := h.Books.CreateBook(r.Context(), book); err != nil {
				log.Printf("insert isbn %s: %v", v.ISBN, err)
				continue
			}
		}
		books = append(books, book)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(books)
}
