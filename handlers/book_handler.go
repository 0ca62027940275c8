package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"libraryhub/auth"
	"libraryhub/models"
	"libraryhub/repository"
)

type BookHandler struct {
	Books        repository.BookRepository
	Transactions repository.TransactionRepository
	Guard        *auth.Guard
}

type bookAction struct {
	ISBN string `json:"isbn"`
}

type createBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// GetBook fetches a book by ISBN
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request, isbn string) {
	book, err := h.Books.GetBookByISBN(r.Context(), isbn)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to fetch book: " + err.Error(),
		})
		return
	}
	if book == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{
			Success: false,
			Message: "Book not found",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(book)
}

// ListBooks returns all local books
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Books.ListBooks(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to list books: " + err.Error(),
		})
		return
	}
	if books == nil {
		books = []*models.Book{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(books)
}

// CreateBook adds a book manually; librarians and admins only
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Guard.RequireRole(r, models.RoleLibrarian, models.RoleAdmin); err != nil {
		writeError(w, err, "")
		return
	}

	var req createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Author) == "" ||
		strings.TrimSpace(req.ISBN) == "" || req.ISBN == "N/A" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Title, author, and ISBN must be provided and valid.",
		})
		return
	}

	book := &models.Book{
		Title:  req.Title,
		Author: req.Author,
		ISBN:   req.ISBN,
		Status: models.BookAvailable,
	}
	if err := h.Books.CreateBook(r.Context(), book); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, err, "Book with ISBN '"+req.ISBN+"' already exists.")
			return
		}
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to add book: " + err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(book)
}

// Borrow creates an active loan for the authenticated user
func (h *BookHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	user, err := h.Guard.CurrentUser(r)
	if err != nil {
		writeError(w, err, "Invalid authentication credentials")
		return
	}

	var action bookAction
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	t, err := h.Transactions.Borrow(r.Context(), action.ISBN, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, err, "Book not found")
		case errors.Is(err, repository.ErrConflict):
			writeError(w, err, "Book is not available")
		default:
			writeJSON(w, http.StatusInternalServerError, ApiResponse{
				Success: false,
				Message: "Failed to borrow book: " + err.Error(),
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message       string `json:"message"`
		TransactionID int64  `json:"transaction_id"`
	}{
		Message:       "Book borrowed successfully",
		TransactionID: t.ID,
	})
}

// Return closes the authenticated user's active loan
func (h *BookHandler) Return(w http.ResponseWriter, r *http.Request) {
	user, err := h.Guard.CurrentUser(r)
	if err != nil {
		writeError(w, err, "Invalid authentication credentials")
		return
	}

	var action bookAction
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	if err := h.Transactions.Return(r.Context(), action.ISBN, user.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, err, "Book not found")
		case errors.Is(err, repository.ErrConflict):
			writeError(w, err, "No active borrowing record found")
		default:
			writeJSON(w, http.StatusInternalServerError, ApiResponse{
				Success: false,
				Message: "Failed to return book: " + err.Error(),
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{Message: "Book returned successfully"})
}

// ActiveTransaction reports whether the caller currently holds the book
func (h *BookHandler) ActiveTransaction(w http.ResponseWriter, r *http.Request, isbn string) {
	user, err := h.Guard.CurrentUser(r)
	if err != nil {
		writeError(w, err, "Invalid authentication credentials")
		return
	}

	book, err := h.Books.GetBookByISBN(r.Context(), isbn)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to fetch book: " + err.Error(),
		})
		return
	}
	if book == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{
			Success: false,
			Message: "Book not found",
		})
		return
	}

	t, err := h.Transactions.ActiveTransaction(r.Context(), book.ID, user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to check transaction: " + err.Error(),
		})
		return
	}

	if t == nil {
		writeJSON(w, http.StatusOK, struct {
			HasActiveTransaction bool   `json:"has_active_transaction"`
			TransactionID        *int64 `json:"transaction_id"`
		}{HasActiveTransaction: false})
		return
	}
	writeJSON(w, http.StatusOK, struct {
		HasActiveTransaction bool   `json:"has_active_transaction"`
		TransactionID        int64  `json:"transaction_id"`
		BorrowDate           string `json:"borrow_date"`
	}{
		HasActiveTransaction: true,
		TransactionID:        t.ID,
		BorrowDate:           t.BorrowDate.Format(time.RFC3339),
	})
}

// UpdateStatus reconciles a book's status flag with its loan state.
// Lending itself goes through Borrow/Return; this only repairs drift, so a
// transition that contradicts the open-loan state is rejected.
func (h *BookHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, isbn string) {
	if _, err := h.Guard.CurrentUser(r); err != nil {
		writeError(w, err, "Invalid authentication credentials")
		return
	}

	status := r.URL.Query().Get("status")
	if !models.ValidBookStatus(status) {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Status must be 'available' or 'borrowed'",
		})
		return
	}

	book, err := h.Books.GetBookByISBN(r.Context(), isbn)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to fetch book: " + err.Error(),
		})
		return
	}
	if book == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{
			Success: false,
			Message: "Book not found",
		})
		return
	}

	if book.Status == status {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Book is already " + status,
		})
		return
	}

	active, err := h.Transactions.HasActiveTransaction(r.Context(), book.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to check transactions: " + err.Error(),
		})
		return
	}
	if status == models.BookAvailable && active {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Book has an active loan; return it instead",
		})
		return
	}
	if status == models.BookBorrowed && !active {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Book has no active loan; borrow it instead",
		})
		return
	}

	if err := h.Books.UpdateStatus(r.Context(), book.ID, status); err != nil {
		writeError(w, err, "Failed to update status: "+err.Error())
		return
	}
	book.Status = status

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(book)
}
