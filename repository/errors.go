package repository

import "errors"

var (
	// ErrNotFound means the referenced book or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the request asks for an illegal state transition,
	// e.g. borrowing an already-borrowed book or returning a book the
	// caller never borrowed.
	ErrConflict = errors.New("conflict")
	// ErrDuplicate means a unique field (username, email, isbn) is taken.
	ErrDuplicate = errors.New("duplicate")
)
