package workspace

import (
	"context"
	"debt-ledger/internal/domain/debt"
	"debt-ledger/internal/event"
	"debt-ledger/internal/infrastructure/monitoring"
	"debt-ledger/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DebtList struct {
	Items []*debt.Debt
	Total decimal.Decimal
}

// ListDebts keeps ledger order, newest first.
func (w *Workspace) ListDebts(f debt.Filter) DebtList {
	today := w.Today()
	w.mu.RLock()
	defer w.mu.RUnlock()
	items := debt.Apply(w.debts, f, today)
	return DebtList{Items: cloneDebts(items), Total: debt.SumValue(items)}
}

func (w *Workspace) GetDebt(id string) (*debt.Debt, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d := w.findDebt(id)
	if d == nil {
		return nil, fmt.Errorf("%w: debt %s", apperrors.ErrNotFound, id)
	}
	return d.Clone(), nil
}

// PendingCustomerIDs lists, sorted, the customers that cannot receive a new debt.
func (w *Workspace) PendingCustomerIDs() []string {
	w.mu.RLock()
	set := debt.PendingCustomerIDs(w.debts)
	w.mu.RUnlock()

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (w *Workspace) HasPendingDebt(customerID string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return debt.PendingFor(w.debts, customerID, "") != nil
}

// CreateDebt rejects a customer that already has a pending debt before contacting the
// remote store. The new debt goes to the front of the ledger.
func (w *Workspace) CreateDebt(ctx context.Context, f debt.Fields) (*debt.Debt, error) {
	owner, err := w.requireOwner()
	if err != nil {
		return nil, err
	}
	if err := w.checkPending(ctx, f.CustomerID, ""); err != nil {
		return nil, err
	}

	d, err := w.buildDebt(ctx, f)
	if err != nil {
		return nil, err
	}

	release, err := w.inflight.acquire(debtCustomerKey(d.CustomerID))
	if err != nil {
		w.logger.WarnContext(ctx, "Debt creation rejected, another one is in flight", slog.String("customerID", d.CustomerID))
		return nil, err
	}
	defer release()

	if err := w.checkPending(ctx, d.CustomerID, ""); err != nil {
		return nil, err
	}

	err = w.debtRepo.Insert(ctx, owner.ID, d)
	monitoring.RecordMutation("debt", "create", err)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to save debt", slog.Any("error", err))
		return nil, remoteError(err, "failed to save debt")
	}

	w.mu.Lock()
	if w.ownedBy(owner.ID) {
		w.debts = append([]*debt.Debt{d.Clone()}, w.debts...)
	}
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Debt created", slog.String("debtID", d.ID), slog.String("customerID", d.CustomerID))
	w.publishDebt(ctx, event.ActionCreated, owner.ID, d)
	return d, nil
}

// UpdateDebt replaces the debt in place. The pending check ignores the debt being edited.
func (w *Workspace) UpdateDebt(ctx context.Context, id string, f debt.Fields) (*debt.Debt, error) {
	owner, err := w.requireOwner()
	if err != nil {
		return nil, err
	}
	existing, err := w.GetDebt(id)
	if err != nil {
		return nil, err
	}
	if err := w.checkPending(ctx, f.CustomerID, id); err != nil {
		return nil, err
	}

	d, err := w.buildDebt(ctx, f)
	if err != nil {
		return nil, err
	}
	d.ID = existing.ID
	d.CreatedAt = existing.CreatedAt

	release, err := w.inflight.acquire(debtKey(id), debtCustomerKey(d.CustomerID))
	if err != nil {
		w.logger.WarnContext(ctx, "Debt mutation rejected, another one is in flight", slog.String("debtID", id))
		return nil, err
	}
	defer release()

	if err := w.checkPending(ctx, d.CustomerID, id); err != nil {
		return nil, err
	}

	err = w.debtRepo.Update(ctx, owner.ID, d)
	monitoring.RecordMutation("debt", "update", err)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to update debt", slog.String("debtID", id), slog.Any("error", err))
		return nil, remoteError(err, "failed to update debt")
	}

	w.mu.Lock()
	if w.ownedBy(owner.ID) {
		for i, cur := range w.debts {
			if cur.ID == id {
				w.debts[i] = d.Clone()
				break
			}
		}
	}
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Debt updated", slog.String("debtID", id), slog.String("status", string(d.Status)))
	w.publishDebt(ctx, event.ActionUpdated, owner.ID, d)
	return d, nil
}

func (w *Workspace) DeleteDebt(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("%w: deleting a debt", apperrors.ErrConfirmationRequired)
	}
	owner, err := w.requireOwner()
	if err != nil {
		return err
	}
	existing, err := w.GetDebt(id)
	if err != nil {
		return err
	}

	release, err := w.inflight.acquire(debtKey(id))
	if err != nil {
		w.logger.WarnContext(ctx, "Debt mutation rejected, another one is in flight", slog.String("debtID", id))
		return err
	}
	defer release()

	err = w.debtRepo.Delete(ctx, owner.ID, id)
	monitoring.RecordMutation("debt", "delete", err)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to delete debt", slog.String("debtID", id), slog.Any("error", err))
		return remoteError(err, "failed to delete debt")
	}

	w.mu.Lock()
	if w.ownedBy(owner.ID) {
		for i, d := range w.debts {
			if d.ID == id {
				w.debts = append(w.debts[:i], w.debts[i+1:]...)
				break
			}
		}
	}
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Debt deleted", slog.String("debtID", id))
	w.publishDebt(ctx, event.ActionDeleted, owner.ID, existing)
	return nil
}

func (w *Workspace) checkPending(ctx context.Context, customerID, excludeID string) error {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil
	}
	w.mu.RLock()
	conflict := debt.PendingFor(w.debts, customerID, excludeID)
	w.mu.RUnlock()
	if conflict != nil {
		w.logger.WarnContext(ctx, "Customer already has a pending debt",
			slog.String("customerID", customerID),
			slog.String("pendingDebtID", conflict.ID),
		)
		return apperrors.ErrPendingDebtExists
	}
	return nil
}

func (w *Workspace) buildDebt(ctx context.Context, f debt.Fields) (*debt.Debt, error) {
	d, err := f.Build()
	if err != nil {
		w.logger.WarnContext(ctx, "Debt validation failed", slog.Any("error", err))
		return nil, err
	}

	w.mu.RLock()
	c := w.findCustomer(d.CustomerID)
	w.mu.RUnlock()
	if c == nil {
		return nil, apperrors.NewValidationError("customerId", "selected customer does not exist")
	}
	d.CustomerName = c.Name
	return d, nil
}

// findDebt must be called with w.mu held.
func (w *Workspace) findDebt(id string) *debt.Debt {
	for _, d := range w.debts {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (w *Workspace) publishDebt(ctx context.Context, action event.Action, ownerID string, d *debt.Debt) {
	e := event.DebtEvent{
		Action:    action,
		OwnerID:   ownerID,
		Timestamp: time.Now(),
		Payload: event.DebtPayload{
			DebtID:       d.ID,
			CustomerID:   d.CustomerID,
			CustomerName: d.CustomerName,
			Value:        d.Value.String(),
			DueDate:      d.DueDate.String(),
			Status:       string(d.Status),
			CreatedAt:    d.CreatedAt,
		},
	}
	if err := w.pub.PublishDebtEvent(ctx, e); err != nil {
		w.logger.ErrorContext(ctx, "Failed to publish debt event", slog.String("routingKey", e.RoutingKey()), slog.Any("error", err))
	}
}
