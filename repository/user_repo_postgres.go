package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"libraryhub/auth"
	"libraryhub/models"
)

type PostgresUserRepo struct {
	DB *sql.DB
}

func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{DB: db}
}

// CreateUser creates a user after validating uniqueness and hashing the password
func (r *PostgresUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	existing, err := r.GetUserByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("username %q: %w", user.Username, ErrDuplicate)
	}

	existing, err = r.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("email %q: %w", user.Email, ErrDuplicate)
	}

	if user.Password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	hashed, err := auth.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed

	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, user.Username, user.Email, user.Password, user.Role, user.CreatedAt).Scan(&user.ID)
}

// GetUserByUsername fetches a user by username, or nil when absent
func (r *PostgresUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUser(ctx, `WHERE username=$1`, username)
}

// GetUserByEmail fetches a user by email, or nil when absent
func (r *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, `WHERE email=$1`, email)
}

func (r *PostgresUserRepo) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, role, created_at
		FROM users `+where, arg,
	).Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Role, &user.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *PostgresUserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, username, email, role, created_at
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
