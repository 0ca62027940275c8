package routes

import (
	"net/http"
	"strings"

	"libraryhub/handlers"
)

// CORS middleware
func withCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// methods rejects requests whose verb is not the expected one.
func methods(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

func SetupRoutes(
	origin string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	bookHandler *handlers.BookHandler,
	searchHandler *handlers.SearchHandler,
	adminHandler *handlers.AdminHandler,
) {
	route := func(h http.HandlerFunc) http.Handler {
		return withCORS(origin, http.HandlerFunc(handlers.RecoverWrapper(h)))
	}

	// Auth routes
	http.Handle("/auth/signup", route(authHandler.Signup))
	http.Handle("/auth/login", route(authHandler.Login))

	// User routes
	http.Handle("/users/", route(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			userHandler.ListUsers(w, r)
		case http.MethodPost:
			userHandler.CreateUser(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// Book routes, including borrow/return and the external search
	http.Handle("/books/", route(func(w http.ResponseWriter, r *http.Request) {
		rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/books/"), "/")
		switch {
		case rest == "":
			switch r.Method {
			case http.MethodGet:
				bookHandler.ListBooks(w, r)
			case http.MethodPost:
				bookHandler.CreateBook(w, r)
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
		case rest == "search":
			methods(http.MethodGet, searchHandler.Search)(w, r)
		case rest == "borrow":
			methods(http.MethodPost, bookHandler.Borrow)(w, r)
		case rest == "return":
			methods(http.MethodPost, bookHandler.Return)(w, r)
		case strings.HasSuffix(rest, "/transaction"):
			isbn := strings.TrimSuffix(rest, "/transaction")
			methods(http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
				bookHandler.ActiveTransaction(w, r, isbn)
			})(w, r)
		case strings.HasSuffix(rest, "/status"):
			isbn := strings.TrimSuffix(rest, "/status")
			methods(http.MethodPatch, func(w http.ResponseWriter, r *http.Request) {
				bookHandler.UpdateStatus(w, r, isbn)
			})(w, r)
		case !strings.Contains(rest, "/"):
			methods(http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
				bookHandler.GetBook(w, r, rest)
			})(w, r)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	// Admin routes
	http.Handle("/admin/users/", route(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			adminHandler.ListUsers(w, r)
		case http.MethodPost:
			adminHandler.CreateUser(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	http.Handle("/admin/transactions/", route(methods(http.MethodGet, adminHandler.ListTransactions)))
	http.Handle("/admin/transactions/report", route(methods(http.MethodGet, adminHandler.TransactionsReport)))

	// Welcome route
	http.Handle("/", route(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Welcome to the Online Library Management System"}`))
	}))
}
