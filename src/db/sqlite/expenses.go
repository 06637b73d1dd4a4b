package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack-server/src/db"
	"fintrack-server/src/models"
)

const expenseColumns = `id, user_id, title, amount, category, date, description, created_at, updated_at`

type ExpenseStore struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	var (
		e                          models.Expense
		category                   string
		date, createdAt, updatedAt int64
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Amount, &category, &date, &e.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	e.Category = models.Category(category)
	e.Date = fromMillis(date)
	e.CreatedAt = fromMillis(createdAt)
	e.UpdatedAt = fromMillis(updatedAt)
	return &e, nil
}

func (s *ExpenseStore) Create(ctx context.Context, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := fromMillis(toMillis(time.Now()))
	e.CreatedAt, e.UpdatedAt = now, now
	e.Date = fromMillis(toMillis(e.Date))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Title, e.Amount, string(e.Category), toMillis(e.Date), e.Description,
		toMillis(e.CreatedAt), toMillis(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

func (s *ExpenseStore) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query expense: %w", err)
	}
	return e, nil
}

func (s *ExpenseStore) List(ctx context.Context, userID string, f models.EntryFilter) ([]*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = ?`
	args := []any{userID}

	if f.Class != "" {
		query += ` AND category = ?`
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
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	// SQLite folds case for ASCII only, so search text is matched here.
	needle := strings.ToLower(f.Search)
	expenses := []*models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if needle != "" && !containsFold(e.Title, needle) && !containsFold(e.Description, needle) {
			continue
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *ExpenseStore) Update(ctx context.Context, e *models.Expense) error {
	e.UpdatedAt = fromMillis(toMillis(time.Now()))
	e.Date = fromMillis(toMillis(e.Date))

	result, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET title = ?, amount = ?, category = ?, date = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		e.Title, e.Amount, string(e.Category), toMillis(e.Date), e.Description, toMillis(e.UpdatedAt), e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return requireAffected(result)
}

func (s *ExpenseStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireAffected(result)
}

// containsFold reports whether lowerNeedle occurs in s, ignoring case.
func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return db.ErrNotFound
	}
	return nil
}
