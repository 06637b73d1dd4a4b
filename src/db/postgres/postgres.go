// Package postgres implements the record store on PostgreSQL through a pgx
// connection pool.
package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	Users    *UserStore
	Expenses *ExpenseStore
	Incomes  *IncomeStore
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{
		Users:    &UserStore{pool: pool},
		Expenses: &ExpenseStore{pool: pool},
		Incomes:  &IncomeStore{pool: pool},
	}
}
