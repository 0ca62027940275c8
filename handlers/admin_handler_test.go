package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/models"
)

func TestAdminListUsers(t *testing.T) {
	env := newTestEnv(t, "h_admin_users")
	env.createUser(t, "alice", "")
	env.createUser(t, "root", models.RoleAdmin)

	// Regular users are locked out.
	w := httptest.NewRecorder()
	env.admin.ListUsers(w, jsonRequest(t, http.MethodGet, "/admin/users/", env.token(t, "alice"), nil))
	require.Equal(t, http.StatusForbidden, w.Code)

	// Anonymous callers get 401 with a challenge.
	w = httptest.NewRecorder()
	env.admin.ListUsers(w, httptest.NewRequest(http.MethodGet, "/admin/users/", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	// Admins see everyone.
	w = httptest.NewRecorder()
	env.admin.ListUsers(w, jsonRequest(t, http.MethodGet, "/admin/users/", env.token(t, "root"), nil))
	require.Equal(t, http.StatusOK, w.Code)
	var users []models.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&users))
	require.Len(t, users, 2)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAdminCreateUserWithRole(t *testing.T) {
	env := newTestEnv(t, "h_admin_create")
	env.createUser(t, "root", models.RoleAdmin)

	w := httptest.NewRecorder()
	env.admin.CreateUser(w, jsonRequest(t, http.MethodPost, "/admin/users/", env.token(t, "root"), map[string]string{
		"username": "keeper",
		"email":    "keeper@example.com",
		"password": "password123",
		"role":     models.RoleLibrarian,
	}))

	require.Equal(t, http.StatusCreated, w.Code)
	var user models.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&user))
	assert.Equal(t, models.RoleLibrarian, user.Role)
	assert.Empty(t, user.Password)
}

func TestAdminCreateUserRejectsBadRole(t *testing.T) {
	env := newTestEnv(t, "h_admin_badrole")
	env.createUser(t, "root", models.RoleAdmin)

	w := httptest.NewRecorder()
	env.admin.CreateUser(w, jsonRequest(t, http.MethodPost, "/admin/users/", env.token(t, "root"), map[string]string{
		"username": "keeper",
		"email":    "keeper@example.com",
		"password": "password123",
		"role":     "overlord",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminListTransactions(t *testing.T) {
	env := newTestEnv(t, "h_admin_tx")
	alice := env.createUser(t, "alice", "")
	env.createUser(t, "root", models.RoleAdmin)
	book := env.createBook(t, "9780261103344", "The Hobbit")

	_, err := env.loans.Borrow(context.Background(), book.ISBN, alice.ID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	env.admin.ListTransactions(w, jsonRequest(t, http.MethodGet, "/admin/transactions/", env.token(t, "root"), nil))
	require.Equal(t, http.StatusOK, w.Code)

	var views []struct {
		ID   int64 `json:"id"`
		User struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
		Book struct {
			ID    int64  `json:"id"`
			Title string `json:"title"`
		} `json:"book"`
		BorrowDate string  `json:"borrow_date"`
		ReturnDate *string `json:"return_date"`
		Status     string  `json:"status"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&views))
	require.Len(t, views, 1)
	assert.Equal(t, "alice", views[0].User.Username)
	assert.Equal(t, "The Hobbit", views[0].Book.Title)
	assert.NotEmpty(t, views[0].BorrowDate)
	assert.Nil(t, views[0].ReturnDate)
	assert.Equal(t, models.TransactionActive, views[0].Status)
}

func TestAdminListTransactionsForbidden(t *testing.T) {
	env := newTestEnv(t, "h_admin_tx_forbidden")
	env.createUser(t, "alice", "")

	w := httptest.NewRecorder()
	env.admin.ListTransactions(w, jsonRequest(t, http.MethodGet, "/admin/transactions/", env.token(t, "alice"), nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTransactionsReportForbidden(t *testing.T) {
	env := newTestEnv(t, "h_admin_report_forbidden")
	env.createUser(t, "alice", "")

	w := httptest.NewRecorder()
	env.admin.TransactionsReport(w, jsonRequest(t, http.MethodGet, "/admin/transactions/report", env.token(t, "alice"), nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	env.admin.TransactionsReport(w, httptest.NewRequest(http.MethodGet, "/admin/transactions/report", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
