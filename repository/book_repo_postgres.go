package repository

import (
	"context"
	"database/sql"
	"fmt"

	"libraryhub/models"
)

type PostgresBookRepo struct {
	DB *sql.DB
}

func NewPostgresBookRepo(db *sql.DB) *PostgresBookRepo {
	return &PostgresBookRepo{DB: db}
}

func (r *PostgresBookRepo) CreateBook(ctx context.Context, book *models.Book) error {
	existing, err := r.GetBookByISBN(ctx, book.ISBN)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("isbn %q: %w", book.ISBN, ErrDuplicate)
	}

	if book.Status == "" {
		book.Status = models.BookAvailable
	}

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO books (title, author, isbn, status, thumbnail)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, book.Title, book.Author, book.ISBN, book.Status, book.Thumbnail).Scan(&book.ID)
}

func (r *PostgresBookRepo) GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	book := &models.Book{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, title, author, isbn, status, thumbnail
		FROM books
		WHERE isbn=$1
	`, isbn).Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.Status, &book.Thumbnail)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return book, nil
}

func (r *PostgresBookRepo) ListBooks(ctx context.Context) ([]*models.Book, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, author, isbn, status, thumbnail
		FROM books
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		b := &models.Book{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Status, &b.Thumbnail); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *PostgresBookRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE books SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	return nil
}
