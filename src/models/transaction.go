package models

import (
	"strings"
	"time"

	"fintrack-server/src/apperr"
)

type Expense struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"user"`
	Title       string    `json:"title"`
	Amount      float64   `json:"amount"`
	Category    Category  `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (e *Expense) EntryID() string { return e.ID }
func (e *Expense) OwnerID() string { return e.UserID }
func (e *Expense) SetOwner(userID string) { e.UserID = userID }

func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return apperr.Validation("Please provide a title")
	}
	if e.Amount < 0 {
		return apperr.Validation("Amount cannot be negative")
	}
	if !e.Category.Valid() {
		return apperr.Validation("Invalid category: " + string(e.Category))
	}
	if e.Date.IsZero() {
		return apperr.Validation("Please provide a date")
	}
	return nil
}

type Income struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"user"`
	Amount      float64   `json:"amount"`
	Source      Source    `json:"source"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (i *Income) EntryID() string { return i.ID }
func (i *Income) OwnerID() string { return i.UserID }
func (i *Income) SetOwner(userID string) { i.UserID = userID }

func (i *Income) Validate() error {
	if i.Amount < 0 {
		return apperr.Validation("Amount cannot be negative")
	}
	if !i.Source.Valid() {
		return apperr.Validation("Invalid source: " + string(i.Source))
	}
	if i.Date.IsZero() {
		return apperr.Validation("Please provide a date")
	}
	return nil
}

// EntryFilter narrows a List call. Zero values mean "no constraint". Class is
// the category of an expense or the source of an income. Search only applies
// to expenses.
type EntryFilter struct {
	Class     string
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
}
