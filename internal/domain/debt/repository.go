package debt

import (
	"context"
)

type Repository interface {
	// ListByOwner returns the owner's debts, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*Debt, error)

	Insert(ctx context.Context, ownerID string, debt *Debt) error

	Update(ctx context.Context, ownerID string, debt *Debt) error

	Delete(ctx context.Context, ownerID, debtID string) error
}
