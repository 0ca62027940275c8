package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/models"
)

func TestBookRepoCreateAndGet(t *testing.T) {
	conn := openTestDB(t, "bookrepo_create")
	repo := NewSQLiteBookRepo(conn)
	ctx := context.Background()

	thumb := "https://covers.example.com/hobbit.jpg"
	book := &models.Book{Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: "9780261103344", Thumbnail: &thumb}
	require.NoError(t, repo.CreateBook(ctx, book))
	assert.NotZero(t, book.ID)
	assert.Equal(t, models.BookAvailable, book.Status)

	got, err := repo.GetBookByISBN(ctx, "9780261103344")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "The Hobbit", got.Title)
	require.NotNil(t, got.Thumbnail)
	assert.Equal(t, thumb, *got.Thumbnail)
}

func TestBookRepoGetMissing(t *testing.T) {
	conn := openTestDB(t, "bookrepo_missing")
	repo := NewSQLiteBookRepo(conn)

	got, err := repo.GetBookByISBN(context.Background(), "0000000000000")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBookRepoDuplicateISBN(t *testing.T) {
	conn := openTestDB(t, "bookrepo_dup")
	repo := NewSQLiteBookRepo(conn)
	ctx := context.Background()

	require.NoError(t, repo.CreateBook(ctx, &models.Book{
		Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593",
	}))

	err := repo.CreateBook(ctx, &models.Book{
		Title: "Dune (reissue)", Author: "Frank Herbert", ISBN: "9780441013593",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestBookRepoListBooks(t *testing.T) {
	conn := openTestDB(t, "bookrepo_list")
	repo := NewSQLiteBookRepo(conn)
	ctx := context.Background()

	require.NoError(t, repo.CreateBook(ctx, &models.Book{Title: "A", Author: "X", ISBN: "isbn-a"}))
	require.NoError(t, repo.CreateBook(ctx, &models.Book{Title: "B", Author: "Y", ISBN: "isbn-b"}))

	books, err := repo.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "isbn-a", books[0].ISBN)
	assert.Nil(t, books[0].Thumbnail)
}

func TestBookRepoUpdateStatus(t *testing.T) {
	conn := openTestDB(t, "bookrepo_status")
	repo := NewSQLiteBookRepo(conn)
	ctx := context.Background()

	book := &models.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593"}
	require.NoError(t, repo.CreateBook(ctx, book))

	require.NoError(t, repo.UpdateStatus(ctx, book.ID, models.BookBorrowed))
	got, err := repo.GetBookByISBN(ctx, book.ISBN)
	require.NoError(t, err)
	assert.Equal(t, models.BookBorrowed, got.Status)

	err = repo.UpdateStatus(ctx, 9999, models.BookAvailable)
	assert.ErrorIs(t, err, ErrNotFound)
}
