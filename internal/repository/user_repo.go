package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"survey_registry/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL             = `INSERT INTO users (username, password) VALUES (?, ?)`
	selectUserByUsernameSQL   = `SELECT id, username, password FROM users WHERE username = ?`
	selectUserByCredentialSQL = `SELECT id, username, password FROM users WHERE username = ? AND password = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, username, password string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, username, password)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username), username)
}

// GetByCredentials fetches a user matching both username and password.
// Equality on the password column is deliberate: passwords are stored
// verbatim. Returns (nil, nil) if no row matches.
func (r *UserRepository) GetByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByCredentialSQL, username, password), username)
}

func (r *UserRepository) scanOne(row *sql.Row, username string) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}
