package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fintrack-server/src/db"
	"fintrack-server/src/models"
)

type UserStore struct {
	db *sql.DB
}

func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, profession, gender, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Profession, string(user.Gender), toMillis(user.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return db.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	user.CreatedAt = fromMillis(toMillis(user.CreatedAt))
	return nil
}

func (s *UserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx,
		`SELECT id, name, email, password_hash, profession, gender, created_at FROM users WHERE id = ?`, id)
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx,
		`SELECT id, name, email, password_hash, profession, gender, created_at FROM users WHERE email = ?`, email)
}

func (s *UserStore) getUser(ctx context.Context, query, arg string) (*models.User, error) {
	var (
		user      models.User
		gender    string
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Profession, &gender, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	user.Gender = models.Gender(gender)
	user.CreatedAt = fromMillis(createdAt)
	return &user, nil
}
