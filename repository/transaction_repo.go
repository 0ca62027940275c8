package repository

import (
	"context"

	"libraryhub/models"
)

// TransactionRepository owns the lending state machine. Borrow and Return
// run as single database transactions so the book row and the loan record
// always move together.
type TransactionRepository interface {
	// Borrow creates an active loan for the user and marks the book
	// borrowed. ErrNotFound when no book has the ISBN, ErrConflict when the
	// book is not available.
	Borrow(ctx context.Context, isbn string, userID int64) (*models.Transaction, error)
	// Return closes the caller's active loan and marks the book available.
	// ErrNotFound when no book has the ISBN, ErrConflict when the user has
	// no active loan for it.
	Return(ctx context.Context, isbn string, userID int64) error
	// ActiveTransaction returns the user's open loan for the book, or nil.
	ActiveTransaction(ctx context.Context, bookID, userID int64) (*models.Transaction, error)
	// HasActiveTransaction reports whether any user holds the book.
	HasActiveTransaction(ctx context.Context, bookID int64) (bool, error)
	// ListTransactions returns all loans joined with user and book fields.
	ListTransactions(ctx context.Context) ([]*models.TransactionRecord, error)
}
