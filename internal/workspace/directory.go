package workspace

import (
	"context"
	"debt-ledger/internal/domain/customer"
	"debt-ledger/internal/event"
	"debt-ledger/internal/infrastructure/monitoring"
	"debt-ledger/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"time"
)

// ListCustomers returns customers matching term in list order.
func (w *Workspace) ListCustomers(term string) []*customer.Customer {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return cloneCustomers(customer.Search(w.customers, term))
}

func (w *Workspace) GetCustomer(id string) (*customer.Customer, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c := w.findCustomer(id)
	if c == nil {
		return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, id)
	}
	return c.Clone(), nil
}

func (w *Workspace) CreateCustomer(ctx context.Context, f customer.Fields) (*customer.Customer, error) {
	owner, err := w.requireOwner()
	if err != nil {
		return nil, err
	}
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		w.logger.WarnContext(ctx, "Customer validation failed", slog.Any("error", err))
		return nil, err
	}

	c := customer.NewCustomer(f)
	err = w.customerRepo.Insert(ctx, owner.ID, c)
	monitoring.RecordMutation("customer", "create", err)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to save customer", slog.Any("error", err))
		return nil, remoteError(err, "failed to save customer")
	}

	w.mu.Lock()
	if w.ownedBy(owner.ID) {
		w.customers = append(w.customers, c.Clone())
	}
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Customer created", slog.String("customerID", c.ID))
	w.publishCustomer(ctx, event.ActionCreated, owner.ID, c)
	return c.Clone(), nil
}

// UpdateCustomer replaces the customer's fields and rewrites the customer name on every
// in-memory debt that references it.
func (w *Workspace) UpdateCustomer(ctx context.Context, id string, f customer.Fields) (*customer.Customer, error) {
	owner, err := w.requireOwner()
	if err != nil {
		return nil, err
	}
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		w.logger.WarnContext(ctx, "Customer validation failed", slog.String("customerID", id), slog.Any("error", err))
		return nil, err
	}

	existing, err := w.GetCustomer(id)
	if err != nil {
		return nil, err
	}

	release, err := w.inflight.acquire(customerKey(id))
	if err != nil {
		w.logger.WarnContext(ctx, "Customer mutation rejected, another one is in flight", slog.String("customerID", id))
		return nil, err
	}
	defer release()

	updated := existing.Clone()
	updated.Apply(f)
	err = w.customerRepo.Update(ctx, owner.ID, updated)
	monitoring.RecordMutation("customer", "update", err)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to update customer", slog.String("customerID", id), slog.Any("error", err))
		return nil, remoteError(err, "failed to update customer")
	}

	renamed := 0
	w.mu.Lock()
	if w.ownedBy(owner.ID) {
		for i, c := range w.customers {
			if c.ID == id {
				w.customers[i] = updated.Clone()
				break
			}
		}
		for _, d := range w.debts {
			if d.CustomerID == id {
				d.CustomerName = updated.Name
				renamed++
			}
		}
	}
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Customer updated", slog.String("customerID", id), slog.Int("debtsRenamed", renamed))
	w.publishCustomer(ctx, event.ActionUpdated, owner.ID, updated)
	return updated, nil
}

// DeleteCustomer does not touch the customer's debts in memory.
func (w *Workspace) DeleteCustomer(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("%w: deleting a customer", apperrors.ErrConfirmationRequired)
	}
	owner, err := w.requireOwner()
	if err != nil {
		return err
	}
	existing, err := w.GetCustomer(id)
	if err != nil {
		return err
	}

	release, err := w.inflight.acquire(customerKey(id))
	if err != nil {
		w.logger.WarnContext(ctx, "Customer mutation rejected, another one is in flight", slog.String("customerID", id))
		return err
	}
	defer release()

	err = w.customerRepo.Delete(ctx, owner.ID, id)
	monitoring.RecordMutation("customer", "delete", err)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to delete customer", slog.String("customerID", id), slog.Any("error", err))
		return remoteError(err, "failed to delete customer")
	}

	w.mu.Lock()
	if w.ownedBy(owner.ID) {
		for i, c := range w.customers {
			if c.ID == id {
				w.customers = append(w.customers[:i], w.customers[i+1:]...)
				break
			}
		}
	}
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Customer deleted", slog.String("customerID", id))
	w.publishCustomer(ctx, event.ActionDeleted, owner.ID, existing)
	return nil
}

// findCustomer must be called with w.mu held.
func (w *Workspace) findCustomer(id string) *customer.Customer {
	for _, c := range w.customers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (w *Workspace) publishCustomer(ctx context.Context, action event.Action, ownerID string, c *customer.Customer) {
	e := event.CustomerEvent{
		Action:    action,
		OwnerID:   ownerID,
		Timestamp: time.Now(),
		Payload: event.CustomerPayload{
			CustomerID: c.ID,
			Name:       c.Name,
			Phone:      c.Phone,
			WhatsApp:   c.WhatsApp,
			CreatedAt:  c.CreatedAt,
		},
	}
	if err := w.pub.PublishCustomerEvent(ctx, e); err != nil {
		w.logger.ErrorContext(ctx, "Failed to publish customer event", slog.String("routingKey", e.RoutingKey()), slog.Any("error", err))
	}
}
