package models

// Book status values.
const (
	BookAvailable = "available"
	BookBorrowed  = "borrowed"
)

type Book struct {
	ID        int64   `json:"id" db:"id"`
	Title     string  `json:"title" db:"title"`
	Author    string  `json:"author" db:"author"`
	ISBN      string  `json:"isbn" db:"isbn"`
	Status    string  `json:"status" db:"status"`
	Thumbnail *string `json:"thumbnail,omitempty" db:"thumbnail"`
}

// ValidBookStatus reports whether status is a known book status.
func ValidBookStatus(status string) bool {
	return status == BookAvailable || status == BookBorrowed
}
