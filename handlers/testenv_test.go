package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"libraryhub/auth"
	"libraryhub/catalog"
	"libraryhub/db"
	"libraryhub/models"
	"libraryhub/repository"
)

const testSecret = "handler-test-secret"

// testEnv wires handlers against an in-memory SQLite database.
type testEnv struct {
	conn   *sql.DB
	users  repository.UserRepository
	books  repository.BookRepository
	loans  repository.TransactionRepository
	guard  *auth.Guard
	auth   *AuthHandler
	book   *BookHandler
	admin  *AdminHandler
	search *SearchHandler
}

func newTestEnv(t *testing.T, name string) *testEnv {
	t.Helper()
	conn, err := sql.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared&_foreign_keys=1")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.RunMigrations(conn, db.SQLite))

	users := repository.NewSQLiteUserRepo(conn)
	books := repository.NewSQLiteBookRepo(conn)
	loans := repository.NewSQLiteTransactionRepo(conn)
	guard := auth.NewGuard(testSecret, time.Minute, users)

	return &testEnv{
		conn:   conn,
		users:  users,
		books:  books,
		loans:  loans,
		guard:  guard,
		auth:   &AuthHandler{Repo: users, Guard: guard},
		book:   &BookHandler{Books: books, Transactions: loans, Guard: guard},
		admin:  &AdminHandler{Users: users, Transactions: loans, Guard: guard},
		search: &SearchHandler{Books: books},
	}
}

func (e *testEnv) createUser(t *testing.T, username, role string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
		Role:     role,
	}
	require.NoError(t, e.users.CreateUser(context.Background(), user))
	return user
}

func (e *testEnv) createBook(t *testing.T, isbn, title string) *models.Book {
	t.Helper()
	book := &models.Book{Title: title, Author: "Tester", ISBN: isbn}
	require.NoError(t, e.books.CreateBook(context.Background(), book))
	return book
}

func (e *testEnv) token(t *testing.T, username string) string {
	t.Helper()
	token, err := e.guard.IssueToken(username)
	require.NoError(t, err)
	return token
}

// jsonRequest builds a request with an optional JSON body and bearer token.
func jsonRequest(t *testing.T, method, target, token string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, target, &buf)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) ApiResponse {
	t.Helper()
	var resp ApiResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

// searchClient points the catalog client at a test server.
func searchClient(baseURL string) *catalog.Client {
	return catalog.NewClient(strings.TrimRight(baseURL, "/"))
}
