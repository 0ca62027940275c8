package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"libraryhub/auth"
	"libraryhub/models"
	"libraryhub/repository"
	"libraryhub/utils"
)

// AdminHandler serves the admin-only user and reporting surface.
type AdminHandler struct {
	Users        repository.UserRepository
	Transactions repository.TransactionRepository
	Guard        *auth.Guard
}

// transactionView is the JSON shape of one joined loan record.
type transactionView struct {
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

// ListUsers handler; admin only
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Guard.RequireRole(r, models.RoleAdmin); err != nil {
		writeError(w, err, "")
		return
	}

	users, err := h.Users.ListUsers(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to list users: " + err.Error(),
		})
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(users)
}

// CreateUser handler; admin only, role can be set explicitly
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Guard.RequireRole(r, models.RoleAdmin); err != nil {
		writeError(w, err, "")
		return
	}

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Username, email, and password are required",
		})
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if !models.ValidRole(req.Role) {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid role",
		})
		return
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
	if err := h.Users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, err, "Username or email already exists")
			return
		}
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to create user: " + err.Error(),
		})
		return
	}

	user.Password = "" // hide password hash

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(user)
}

// ListTransactions handler; admin only
func (h *AdminHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Guard.RequireRole(r, models.RoleAdmin); err != nil {
		writeError(w, err, "")
		return
	}

	records, err := h.Transactions.ListTransactions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to list transactions: " + err.Error(),
		})
		return
	}

	views := make([]transactionView, 0, len(records))
	for _, rec := range records {
		var v transactionView
		v.ID = rec.ID
		v.User.ID = rec.UserID
		v.User.Username = rec.Username
		v.Book.ID = rec.BookID
		v.Book.Title = rec.BookTitle
		v.BorrowDate = rec.BorrowDate.Format(time.RFC3339)
		if rec.ReturnDate != nil {
			s := rec.ReturnDate.Format(time.RFC3339)
			v.ReturnDate = &s
		}
		v.Status = rec.Status
		views = append(views, v)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(views)
}

// TransactionsReport renders the loan history as a PDF attachment; admin only
func (h *AdminHandler) TransactionsReport(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Guard.RequireRole(r, models.RoleAdmin); err != nil {
		writeError(w, err, "")
		return
	}

	records, err := h.Transactions.ListTransactions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to list transactions: " + err.Error(),
		})
		return
	}

	pdfBytes, err := utils.GenerateTransactionsPDF(records)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ApiResponse{
			Success: false,
			Message: "Failed to generate PDF: " + err.Error(),
		})
		return
	}

	// Archive a copy when R2 is configured; the download must not fail on
	// archive errors.
	if os.Getenv("R2_BUCKET") != "" {
		filename := "transactions_report_" + time.Now().UTC().Format("20060102150405") + ".pdf"
		if url, err := utils.UploadToR2(pdfBytes, filename); err != nil {
			log.Printf("failed to archive report: %v", err)
		} else {
			log.Printf("report archived at %s", url)
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=transactions_report.pdf")
	_, _ = w.Write(pdfBytes)
}
