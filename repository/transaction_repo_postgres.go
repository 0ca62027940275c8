package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"libraryhub/models"
)

type PostgresTransactionRepo struct {
	DB *sql.DB
}

func NewPostgresTransactionRepo(db *sql.DB) *PostgresTransactionRepo {
	return &PostgresTransactionRepo{DB: db}
}

// Borrow records the loan and flips the book to borrowed in one transaction.
// The book row is locked FOR UPDATE so two concurrent borrowers cannot both
// pass the availability check; the partial unique index on active loans is
// the backstop.
func (r *PostgresTransactionRepo) Borrow(ctx context.Context, isbn string, userID int64) (*models.Transaction, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var bookID int64
	var status string
	err = tx.QueryRowContext(ctx, `
		SELECT id, status FROM books WHERE isbn=$1 FOR UPDATE
	`, isbn).Scan(&bookID, &status)
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
	err = tx.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, book_id, borrow_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, t.UserID, t.BookID, t.BorrowDate, t.Status).Scan(&t.ID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE books SET status=$1 WHERE id=$2`, models.BookBorrowed, bookID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

// Return closes the caller's active loan and frees the book, atomically.
// The loan lookup is scoped by user so nobody can return a book they did
// not borrow.
func (r *PostgresTransactionRepo) Return(ctx context.Context, isbn string, userID int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var bookID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM books WHERE isbn=$1 FOR UPDATE`, isbn).Scan(&bookID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("book %q: %w", isbn, ErrNotFound)
		}
		return err
	}

	var transactionID int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM transactions
		WHERE book_id=$1 AND user_id=$2 AND status=$3
	`, bookID, userID, models.TransactionActive).Scan(&transactionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("no active loan for book %q: %w", isbn, ErrConflict)
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE transactions SET return_date=$1, status=$2 WHERE id=$3
	`, time.Now().UTC(), models.TransactionReturned, transactionID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE books SET status=$1 WHERE id=$2`, models.BookAvailable, bookID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresTransactionRepo) ActiveTransaction(ctx context.Context, bookID, userID int64) (*models.Transaction, error) {
	t := &models.Transaction{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, book_id, borrow_date, status
		FROM transactions
		WHERE book_id=$1 AND user_id=$2 AND status=$3
	`, bookID, userID, models.TransactionActive).Scan(&t.ID, &t.UserID, &t.BookID, &t.BorrowDate, &t.Status)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *PostgresTransactionRepo) HasActiveTransaction(ctx context.Context, bookID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM transactions WHERE book_id=$1 AND status=$2)
	`, bookID, models.TransactionActive).Scan(&exists)
	return exists, err
}

func (r *PostgresTransactionRepo) ListTransactions(ctx context.Context) ([]*models.TransactionRecord, error) {
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

func scanTransactionRecords(rows *sql.Rows) ([]*models.TransactionRecord, error) {
	var records []*models.TransactionRecord
	for rows.Next() {
		rec := &models.TransactionRecord{}
		var returned sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Username, &rec.BookID, &rec.BookTitle,
			&rec.BorrowDate, &returned, &rec.Status); err != nil {
			return nil, err
		}
		if returned.Valid {
			v := returned.Time
			rec.ReturnDate = &v
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
