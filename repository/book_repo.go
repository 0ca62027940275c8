package repository

import (
	"context"

	"libraryhub/models"
)

// BookRepository defines the interface for book operations
type BookRepository interface {
	// CreateBook inserts a book. Returns ErrDuplicate when the ISBN is taken.
	CreateBook(ctx context.Context, book *models.Book) error
	GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error)
	ListBooks(ctx context.Context) ([]*models.Book, error)
	// UpdateStatus sets the book status directly. Lending flows must go
	// through TransactionRepository instead; this backs the manual
	// status override endpoint.
	UpdateStatus(ctx context.Context, id int64, status string) error
}
