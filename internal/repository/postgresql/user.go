package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/umaxship/console/internal/db"
	"gitlab.com/umaxship/console/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserRepo struct {
	db db.DB
}

func NewUserRepo(db db.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) CreateUser(ctx context.Context, email, displayName, password string) (*repository.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &repository.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hashedPassword),
	}
	_, err = r.db.Exec(ctx,
		"INSERT INTO users (id, email, display_name, password_hash) VALUES ($1, $2, $3, $4)",
		user.ID, user.Email, user.DisplayName, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("insert user %s: %w", email, err)
	}
	return user, nil
}

// EnsureUser creates the account unless one with this email exists.
func (r *UserRepo) EnsureUser(ctx context.Context, email, displayName, password string) (*repository.User, error) {
	var existing repository.User
	err := r.db.Get(ctx, &existing, "SELECT id, email, display_name, password_hash FROM users WHERE email = $1", email)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return r.CreateUser(ctx, email, displayName, password)
}

// ValidateUser returns the user whose credentials match, or
// ErrInvalidCredentials.
func (r *UserRepo) ValidateUser(ctx context.Context, email, password string) (*repository.User, error) {
	var user repository.User
	err := r.db.Get(ctx, &user, "SELECT id, email, display_name, password_hash FROM users WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
