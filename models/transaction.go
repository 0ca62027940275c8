package models

import "time"

// Transaction status values.
const (
	TransactionActive   = "active"
	TransactionReturned = "returned"
)

// Transaction is one borrow record: open while status is "active",
// closed once return_date is stamped and status becomes "returned".
type Transaction struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"user_id" db:"user_id"`
	BookID     int64      `json:"book_id" db:"book_id"`
	BorrowDate time.Time  `json:"borrow_date" db:"borrow_date"`
	ReturnDate *time.Time `json:"return_date,omitempty" db:"return_date"`
	Status     string     `json:"status" db:"status"`
}

// TransactionRecord is a transaction joined with its user and book,
// used by the admin listing and the PDF report.
type TransactionRecord struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Username   string     `json:"username"`
	BookID     int64      `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	BorrowDate time.Time  `json:"borrow_date"`
	ReturnDate *time.Time `json:"return_date"`
	Status     string     `json:"status"`
}
