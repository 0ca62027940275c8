package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"libraryhub/models"
)

type SQLiteTransactionRepo struct {
	DB *sql.DB
}

func NewSQLiteTransactionRepo(db *sql.DB) *SQLiteTransactionRepo {
	return &SQLiteTransactionRepo{DB: db}
}

// Borrow records the loan and flips the book to borrowed in one transaction.
// SQLite serializes writers, and the partial unique index on active loans
// rejects a second open loan for the same book.
func (r *SQLiteTransactionRepo) Borrow(ctx context.Context, isbn string, userID int64) (*models.Transaction, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var bookID int64
	var status string
	err = tx.QueryRowContext(ctx, `SELECT id, status FROM books WHERE isbn=?`, isbn).Scan(&bookID, &status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("book %q: %w", isbn, ErrNotFound)
		}
		return nil, err
	}
	if status != models.BookAvailable {
		return nil, fmt.Errorf("book %q is %s: %w", isbn, status, ErrConflict)
	}

	t := &models.Transaction{
		UserID:     userID,
		BookID:     bookID,
		BorrowDate: time.Now().UTC(),
		Status:     models.TransactionActive,
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (user_id, book_id, borrow_date, status)
		VALUES (?, ?, ?, ?)
	`, t.UserID, t.BookID, t.BorrowDate, t.Status)
	if err != nil {
		return nil, err
	}
	if t.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE books SET status=? WHERE id=?`, models.BookBorrowed, bookID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

// Return closes the caller's active loan and frees the book, atomically.
func (r *SQLiteTransactionRepo) Return(ctx context.Context, isbn string, userID int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var bookID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM books WHERE isbn=?`, isbn).Scan(&bookID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("book %q: %w", isbn, ErrNotFound)
		}
		return err
	}

	var transactionID int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM transactions
		WHERE book_id=? AND user_id=? AND status=?
	`, bookID, userID, models.TransactionActive).Scan(&transactionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("no active loan for book %q: %w", isbn, ErrConflict)
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE transactions SET return_date=?, status=? WHERE id=?
	`, time.Now().UTC(), models.TransactionReturned, transactionID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE books SET status=? WHERE id=?`, models.BookAvailable, bookID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLiteTransactionRepo) ActiveTransaction(ctx context.Context, bookID, userID int64) (*models.Transaction, error) {
	t := &models.Transaction{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, book_id, borrow_date, status
		FROM transactions
		WHERE book_id=? AND user_id=? AND status=?
	`, bookID, userID, models.TransactionActive).Scan(&t.ID, &t.UserID, &t.BookID, &t.BorrowDate, &t.Status)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTransactionRepo) HasActiveTransaction(ctx context.Context, bookID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM transactions WHERE book_id=? AND status=?)
	`, bookID, models.TransactionActive).Scan(&exists)
	return exists, err
}

func (r *SQLiteTransactionRepo) ListTransactions(ctx context.Context) ([]*models.TransactionRecord, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT t.id, t.user_id, u.username, t.book_id, b.title,
		       t.borrow_date, t.return_date, t.status
		FROM transactions t
		JOIN users u ON u.id = t.user_id
		JOIN books b ON b.id = t.book_id
		ORDER BY t.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactionRecords(rows)
}
