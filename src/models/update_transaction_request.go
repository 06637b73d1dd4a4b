package models

import (
	"strings"

	"fintrack-server/src/apperr"
	"fintrack-server/src/util"
)

// ExpenseRequest is the body of create and update calls. Absent fields are
// nil; on update they keep their stored value.
type ExpenseRequest struct {
	Title       *string  `json:"title"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
}

func (r *ExpenseRequest) CheckRequired() error {
	if r.Title == nil || strings.TrimSpace(*r.Title) == "" || r.Amount == nil ||
		r.Category == nil || *r.Category == "" || r.Date == nil || *r.Date == "" {
		return apperr.Validation("Please provide title, amount, category, and date")
	}
	return nil
}

func (r *ExpenseRequest) ApplyTo(e *Expense) error {
	if r.Title != nil {
		e.Title = strings.TrimSpace(*r.Title)
	}
	if r.Amount != nil {
		e.Amount = *r.Amount
	}
	if r.Category != nil {
		e.Category = Category(*r.Category)
	}
	if r.Date != nil {
		d, err := util.ParseDate(*r.Date)
		if err != nil {
			return apperr.Validation("Invalid date")
		}
		e.Date = d
	}
	if r.Description != nil {
		e.Description = strings.TrimSpace(*r.Description)
	}
	return nil
}

type IncomeRequest struct {
	Amount      *float64 `json:"amount"`
	Source      *string  `json:"source"`
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
}

func (r *IncomeRequest) CheckRequired() error {
	if r.Amount == nil || r.Source == nil || *r.Source == "" || r.Date == nil || *r.Date == "" {
		return apperr.Validation("Please provide amount, source, and date")
	}
	return nil
}

func (r *IncomeRequest) ApplyTo(i *Income) error {
	if r.Amount != nil {
		i.Amount = *r.Amount
	}
	if r.Source != nil {
		i.Source = Source(*r.Source)
	}
	if r.Date != nil {
		d, err := util.ParseDate(*r.Date)
		if err != nil {
			return apperr.Validation("Invalid date")
		}
		i.Date = d
	}
	if r.Description != nil {
		i.Description = strings.TrimSpace(*r.Description)
	}
	return nil
}
