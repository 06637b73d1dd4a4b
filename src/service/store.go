// Package service holds the business operations behind the HTTP surface:
// identity, the owned-ledger CRUD shared by expenses and incomes, and
// reporting. Every call takes the caller's user id explicitly.
package service

import (
	"context"

	"fintrack-server/src/models"
)

// UserStore persists users. Implementations return db.ErrNotFound for
// unknown ids/emails and db.ErrDuplicateEmail on a unique violation.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Entry is a record owned by exactly one user.
type Entry interface {
	EntryID() string
	OwnerID() string
	SetOwner(userID string)
	Validate() error
}

// EntryStore persists one kind of Entry. GetByID, Update and Delete return
// db.ErrNotFound when the id does not exist. List returns entries newest
// first.
type EntryStore[T Entry] interface {
	Create(ctx context.Context, entry T) error
	GetByID(ctx context.Context, id string) (T, error)
	List(ctx context.Context, userID string, filter models.EntryFilter) ([]T, error)
	Update(ctx context.Context, entry T) error
	Delete(ctx context.Context, id string) error
}

// Payload is a create/update body for an Entry of type T.
type Payload[T Entry] interface {
	CheckRequired() error
	ApplyTo(entry T) error
}
