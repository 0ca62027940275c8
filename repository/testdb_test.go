package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"libraryhub/db"
	"libraryhub/models"
)

// openTestDB opens a shared-cache in-memory SQLite database and applies
// migrations. Each test passes a distinct name so databases never collide.
func openTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared&_foreign_keys=1")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.RunMigrations(conn, db.SQLite))
	return conn
}

func seedUser(t *testing.T, conn *sql.DB, username string) *models.User {
	t.Helper()
	repo := NewSQLiteUserRepo(conn)
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func seedBook(t *testing.T, conn *sql.DB, isbn string) *models.Book {
	t.Helper()
	repo := NewSQLiteBookRepo(conn)
	book := &models.Book{
		Title:  "Book " + isbn,
		Author: "Author " + isbn,
		ISBN:   isbn,
	}
	require.NoError(t, repo.CreateBook(context.Background(), book))
	return book
}
