package repository

import (
	"context"
	"database/sql"
	"fmt"

	"libraryhub/models"
)

type SQLiteBookRepo struct {
	DB *sql.DB
}

func NewSQLiteBookRepo(db *sql.DB) *SQLiteBookRepo {
	return &SQLiteBookRepo{DB: db}
}

func (r *SQLiteBookRepo) CreateBook(ctx context.Context, book *models.Book) error {
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

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO books (title, author, isbn, status, thumbnail)
		VALUES (?, ?, ?, ?, ?)
	`, book.Title, book.Author, book.ISBN, book.Status, book.Thumbnail)
	if err != nil {
		return err
	}
	book.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteBookRepo) GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	book := &models.Book{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, title, author, isbn, status, thumbnail
		FROM books
		WHERE isbn=?
	`, isbn).Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.Status, &book.Thumbnail)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return book, nil
}

func (r *SQLiteBookRepo) ListBooks(ctx context.Context) ([]*models.Book, error) {
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

func (r *SQLiteBookRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE books SET status=? WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	return nil
}
