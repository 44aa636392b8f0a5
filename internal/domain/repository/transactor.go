package repository

import "context"

// Transactor runs a unit of work atomically when the store supports it.
// Repository calls made with the ctx passed to fn join the transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
