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

const incomeColumns = `id, user_id, amount, source, date, description, created_at, updated_at`

type IncomeStore struct {
	db *sql.DB
}

func scanIncome(row rowScanner) (*models.Income, error) {
	var (
		i                          models.Income
		source                     string
		date, createdAt, updatedAt int64
	)
	if err := row.Scan(&i.ID, &i.UserID, &i.Amount, &source, &date, &i.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	i.Source = models.Source(source)
	i.Date = fromMillis(date)
	i.CreatedAt = fromMillis(createdAt)
	i.UpdatedAt = fromMillis(updatedAt)
	return &i, nil
}

func (s *IncomeStore) Create(ctx context.Context, i *models.Income) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	now := fromMillis(toMillis(time.Now()))
	i.CreatedAt, i.UpdatedAt = now, now
	if i.Date.IsZero() {
		i.Date = now
	}
	i.Date = fromMillis(toMillis(i.Date))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO incomes (`+incomeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.UserID, i.Amount, string(i.Source), toMillis(i.Date), i.Description,
		toMillis(i.CreatedAt), toMillis(i.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert income: %w", err)
	}
	return nil
}

func (s *IncomeStore) GetByID(ctx context.Context, id string) (*models.Income, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+incomeColumns+` FROM incomes WHERE id = ?`, id)
	i, err := scanIncome(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query income: %w", err)
	}
	return i, nil
}

func (s *IncomeStore) List(ctx context.Context, userID string, f models.EntryFilter) ([]*models.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE user_id = ?`
	args := []any{userID}

	if f.Class != "" {
		query += ` AND source = ?`
		args = append(args, f.Class)
	}
	if f.StartDate != nil {
		query += ` AND date >= ?`
		args = append(args, toMillis(*f.StartDate))
	}
	if f.EndDate != nil {
		query += ` AND date <= ?`
		args = append(args, toMillis(*f.EndDate))
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomes: %w", err)
	}
	defer rows.Close()

	incomes := []*models.Income{}
	for rows.Next() {
		i, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, i)
	}
	return incomes, rows.Err()
}

func (s *IncomeStore) Update(ctx context.Context, i *models.Income) error {
	i.UpdatedAt = fromMillis(toMillis(time.Now()))
	i.Date = fromMillis(toMillis(i.Date))

	result, err := s.db.ExecContext(ctx,
		`UPDATE incomes SET amount = ?, source = ?, date = ?, description = ?, updated_at = ? WHERE id = ?`,
		i.Amount, string(i.Source), toMillis(i.Date), i.Description, toMillis(i.UpdatedAt), i.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}
	return requireAffected(result)
}

func (s *IncomeStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	return requireAffected(result)
}
