package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fintrack-server/src/apperr"
	"fintrack-server/src/db"
	"fintrack-server/src/models"
)

// Ledger implements list/get/create/update/delete for one kind of owned
// entry. Lookups by id always check existence first, then ownership, and
// only then touch the record.
//
// Update and Delete read then write without isolation; concurrent writers
// to the same record resolve as last-write-wins.
type Ledger[T Entry] struct {
	name     string
	store    EntryStore[T]
	newEntry func() T
}

func NewLedger[T Entry](name string, store EntryStore[T], newEntry func() T) *Ledger[T] {
	return &Ledger[T]{name: name, store: store, newEntry: newEntry}
}

func NewExpenseLedger(store EntryStore[*models.Expense]) *Ledger[*models.Expense] {
	return NewLedger("expense", store, func() *models.Expense { return &models.Expense{} })
}

func NewIncomeLedger(store EntryStore[*models.Income]) *Ledger[*models.Income] {
	return NewLedger("income", store, func() *models.Income { return &models.Income{} })
}

func (l *Ledger[T]) Name() string {
	return l.name
}

func (l *Ledger[T]) title() string {
	return strings.ToUpper(l.name[:1]) + l.name[1:]
}

func (l *Ledger[T]) List(ctx context.Context, callerID string, filter models.EntryFilter) ([]T, error) {
	entries, err := l.store.List(ctx, callerID, filter)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list %ss: %w", l.name, err))
	}
	return entries, nil
}

// owned resolves id to an entry the caller owns. verb names the attempted
// action in the Forbidden message.
func (l *Ledger[T]) owned(ctx context.Context, callerID, id, verb string) (T, error) {
	var zero T
	entry, err := l.store.GetByID(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return zero, apperr.NotFound(l.title() + " not found")
	}
	if err != nil {
		return zero, apperr.Internal(fmt.Errorf("get %s %s: %w", l.name, id, err))
	}
	if entry.OwnerID() != callerID {
		slog.Warn("Ownership check failed", "resource", l.name, "id", id, "user_id", callerID)
		return zero, apperr.Forbidden(fmt.Sprintf("Not authorized to %s this %s", verb, l.name))
	}
	return entry, nil
}

func (l *Ledger[T]) Get(ctx context.Context, callerID, id string) (T, error) {
	return l.owned(ctx, callerID, id, "access")
}

func (l *Ledger[T]) Create(ctx context.Context, callerID string, payload Payload[T]) (T, error) {
	var zero T
	if err := payload.CheckRequired(); err != nil {
		return zero, err
	}

	entry := l.newEntry()
	if err := payload.ApplyTo(entry); err != nil {
		return zero, err
	}
	entry.SetOwner(callerID)
	if err := entry.Validate(); err != nil {
		return zero, err
	}

	if err := l.store.Create(ctx, entry); err != nil {
		return zero, apperr.Internal(fmt.Errorf("create %s: %w", l.name, err))
	}
	return entry, nil
}

// Update merges the supplied fields over the stored entry and re-validates
// the result. The owner never changes.
func (l *Ledger[T]) Update(ctx context.Context, callerID, id string, payload Payload[T]) (T, error) {
	var zero T
	entry, err := l.owned(ctx, callerID, id, "update")
	if err != nil {
		return zero, err
	}

	if err := payload.ApplyTo(entry); err != nil {
		return zero, err
	}
	if err := entry.Validate(); err != nil {
		return zero, err
	}

	err = l.store.Update(ctx, entry)
	if errors.Is(err, db.ErrNotFound) {
		return zero, apperr.NotFound(l.title() + " not found")
	}
	if err != nil {
		return zero, apperr.Internal(fmt.Errorf("update %s %s: %w", l.name, id, err))
	}
	return entry, nil
}

func (l *Ledger[T]) Delete(ctx context.Context, callerID, id string) error {
	if _, err := l.owned(ctx, callerID, id, "delete"); err != nil {
		return err
	}

	err := l.store.Delete(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return apperr.NotFound(l.title() + " not found")
	}
	if err != nil {
		return apperr.Internal(fmt.Errorf("delete %s %s: %w", l.name, id, err))
	}
	return nil
}
