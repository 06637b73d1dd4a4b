package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/db"
	"fintrack-server/src/models"
)

const incomeColumns = `id, user_id, amount, source, date, description, created_at, updated_at`

type IncomeStore struct {
	pool *pgxpool.Pool
}

func scanIncome(row pgx.Row) (*models.Income, error) {
	var i models.Income
	err := row.Scan(&i.ID, &i.UserID, &i.Amount, &i.Source, &i.Date, &i.Description, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	i.Date = i.Date.UTC()
	i.CreatedAt = i.CreatedAt.UTC()
	i.UpdatedAt = i.UpdatedAt.UTC()
	return &i, nil
}

func (s *IncomeStore) Create(ctx context.Context, i *models.Income) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	i.CreatedAt, i.UpdatedAt = now, now
	if i.Date.IsZero() {
		i.Date = now
	}

	query := `
		INSERT INTO incomes (id, user_id, amount, source, date, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.pool.Exec(ctx, query, i.ID, i.UserID, i.Amount, i.Source, i.Date, i.Description, i.CreatedAt, i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

func (s *IncomeStore) GetByID(ctx context.Context, id string) (*models.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE id = $1`
	i, err := scanIncome(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return i, nil
}

func (s *IncomeStore) List(ctx context.Context, userID string, f models.EntryFilter) ([]*models.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE user_id = $1`
	args := []any{userID}

	if f.Class != "" {
		args = append(args, f.Class)
		query += fmt.Sprintf(" AND source = $%d", len(args))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	incomes := []*models.Income{}
	for rows.Next() {
		i, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, i)
	}
	return incomes, rows.Err()
}

func (s *IncomeStore) Update(ctx context.Context, i *models.Income) error {
	query := `
		UPDATE incomes
		SET amount = $1, source = $2, date = $3, description = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`
	err := s.pool.QueryRow(ctx, query, i.Amount, i.Source, i.Date, i.Description, i.ID).Scan(&i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.ErrNotFound
		}
		return fmt.Errorf("failed to update income: %w", err)
	}
	i.UpdatedAt = i.UpdatedAt.UTC()
	return nil
}

func (s *IncomeStore) Delete(ctx context.Context, id string) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM incomes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
