package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"libraryhub/auth"
	"libraryhub/models"
)

type SQLiteUserRepo struct {
	DB *sql.DB
}

func NewSQLiteUserRepo(db *sql.DB) *SQLiteUserRepo {
	return &SQLiteUserRepo{DB: db}
}

func (r *SQLiteUserRepo) CreateUser(ctx context.Context, user *models.User) error {
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

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, user.Username, user.Email, user.Password, user.Role, user.CreatedAt)
	if err != nil {
		return err
	}
	user.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUser(ctx, `WHERE username=?`, username)
}

func (r *SQLiteUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, `WHERE email=?`, email)
}

func (r *SQLiteUserRepo) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
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

func (r *SQLiteUserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
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
