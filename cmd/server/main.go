package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"libraryhub/auth"
	"libraryhub/catalog"
	"libraryhub/config"
	"libraryhub/db"
	"libraryhub/db/postgres"
	"libraryhub/db/sqlite"
	"libraryhub/handlers"
	"libraryhub/repository"
	"libraryhub/routes"
)

func main() {
	// Load config from .env or system environment
	cfg := config.LoadConfig()

	var conn *sql.DB
	var userRepo repository.UserRepository
	var bookRepo repository.BookRepository
	var txRepo repository.TransactionRepository

	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		pg := postgres.NewPostgresDB(cfg.Postgres)
		if err := pg.Connect(); err != nil {
			panic(err)
		}
		defer pg.Disconnect()
		conn = pg.Conn

		userRepo = repository.NewPostgresUserRepo(conn)
		bookRepo = repository.NewPostgresBookRepo(conn)
		txRepo = repository.NewPostgresTransactionRepo(conn)

	case db.SQLite:
		sq := sqlite.NewSQLiteDB(cfg.SQLite)
		if err := sq.Connect(); err != nil {
			panic(err)
		}
		defer sq.Disconnect()
		conn = sq.Conn

		userRepo = repository.NewSQLiteUserRepo(conn)
		bookRepo = repository.NewSQLiteBookRepo(conn)
		txRepo = repository.NewSQLiteTransactionRepo(conn)

	default:
		panic("DB_TYPE not supported")
	}

	if err := db.RunMigrations(conn, db.DBType(cfg.DBType)); err != nil {
		panic(err)
	}

	guard := auth.NewGuard(cfg.JWTSecret, time.Duration(cfg.TokenExpireMinutes)*time.Minute, userRepo)

	// Handlers
	authHandler := &handlers.AuthHandler{Repo: userRepo, Guard: guard}
	userHandler := &handlers.UserHandler{Repo: userRepo}
	bookHandler := &handlers.BookHandler{Books: bookRepo, Transactions: txRepo, Guard: guard}
	searchHandler := &handlers.SearchHandler{Books: bookRepo, Catalog: catalog.NewClient(cfg.BooksAPIURL)}
	adminHandler := &handlers.AdminHandler{Users: userRepo, Transactions: txRepo, Guard: guard}

	routes.SetupRoutes(cfg.AllowedOrigin, authHandler, userHandler, bookHandler, searchHandler, adminHandler)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		panic(err)
	}
}
