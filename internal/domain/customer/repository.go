package customer

import (
	"context"
)

// Repository is the remote store for customer records. Every call is scoped to the owner id
// of the signed-in principal.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*Customer, error)

	// Insert fills in the backend-assigned ID and CreatedAt.
	Insert(ctx context.Context, ownerID string, customer *Customer) error

	// Update also rewrites the denormalized customer name on the owner's debts.
	Update(ctx context.Context, ownerID string, customer *Customer) error

	Delete(ctx context.Context, ownerID, customerID string) error
}
