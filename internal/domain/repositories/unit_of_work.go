package repositories

import (
	"context"
)

// UnitOfWork runs a function inside one database transaction. Repositories
// called with the ctx handed to fn take part in that transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
