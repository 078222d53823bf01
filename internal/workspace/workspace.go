package workspace

import (
	"context"
	"debt-ledger/internal/domain/customer"
	"debt-ledger/internal/domain/dashboard"
	"debt-ledger/internal/domain/debt"
	"debt-ledger/internal/domain/session"
	"debt-ledger/internal/event"
	"debt-ledger/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Workspace holds the signed-in principal's customers and debts in memory. Every mutation
// goes to the remote store first and is mirrored locally only after it succeeds.
type Workspace struct {
	customerRepo customer.Repository
	debtRepo     debt.Repository
	pub          event.EventPublisher
	location     *time.Location
	now          func() time.Time
	logger       *slog.Logger

	mu        sync.RWMutex
	owner     *session.Principal
	customers []*customer.Customer
	debts     []*debt.Debt

	inflight *keyGuard
}

type Option func(*Workspace)

// WithClock replaces time.Now, used to decide which day is today.
func WithClock(now func() time.Time) Option {
	return func(w *Workspace) { w.now = now }
}

func New(customerRepo customer.Repository, debtRepo debt.Repository, pub event.EventPublisher, loc *time.Location, logger *slog.Logger, opts ...Option) *Workspace {
	if customerRepo == nil {
		panic("customer repository cannot be nil")
	}
	if debtRepo == nil {
		panic("debt repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to workspace.New, using default stderr handler")
	}
	if pub == nil {
		pub = event.NewNoopEventPublisher(logger)
	}
	if loc == nil {
		loc = time.Local
	}

	w := &Workspace{
		customerRepo: customerRepo,
		debtRepo:     debtRepo,
		pub:          pub,
		location:     loc,
		now:          time.Now,
		logger:       logger.With(slog.String("component", "workspace")),
		inflight:     newKeyGuard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Attach follows the holder's session changes for as long as the returned func is not called.
func (w *Workspace) Attach(h *session.Holder) (detach func()) {
	return h.Subscribe(w.HandleSessionChange)
}

func (w *Workspace) HandleSessionChange(ctx context.Context, c session.Change) {
	switch c.Kind {
	case session.SignedIn:
		if c.Principal == nil {
			return
		}
		if err := w.Reload(ctx, *c.Principal); err != nil {
			w.logger.ErrorContext(ctx, "Failed to reload workspace after sign in", slog.Any("error", err))
		}
	case session.SignedOut:
		w.Clear(ctx)
	}
}

// Reload adopts p as owner and replaces both lists with the remote store's contents:
// customers by name, debts newest first.
func (w *Workspace) Reload(ctx context.Context, p session.Principal) error {
	w.mu.Lock()
	owner := p
	w.owner = &owner
	w.customers = nil
	w.debts = nil
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Reloading workspace", slog.String("ownerID", p.ID))

	var (
		customers []*customer.Customer
		debts     []*debt.Debt
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customers, err = w.customerRepo.ListByOwner(gctx, p.ID)
		if err != nil {
			return remoteError(err, "failed to load customers")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		debts, err = w.debtRepo.ListByOwner(gctx, p.ID)
		if err != nil {
			return remoteError(err, "failed to load debts")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.owner == nil || w.owner.ID != p.ID {
		w.logger.WarnContext(ctx, "Session changed during reload, discarding result", slog.String("ownerID", p.ID))
		return nil
	}
	w.customers = customers
	w.debts = debts

	w.logger.InfoContext(ctx, "Workspace reloaded", slog.Int("customers", len(customers)), slog.Int("debts", len(debts)))
	return nil
}

func (w *Workspace) Clear(ctx context.Context) {
	w.mu.Lock()
	w.owner = nil
	w.customers = nil
	w.debts = nil
	w.mu.Unlock()
	w.logger.InfoContext(ctx, "Workspace cleared")
}

func (w *Workspace) Owner() *session.Principal {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.owner == nil {
		return nil
	}
	p := *w.owner
	return &p
}

func (w *Workspace) Today() debt.Date {
	return debt.DateOf(w.now().In(w.location))
}

func (w *Workspace) Summary() dashboard.Summary {
	w.mu.RLock()
	customers := cloneCustomers(w.customers)
	debts := cloneDebts(w.debts)
	w.mu.RUnlock()
	return dashboard.Summarize(customers, debts, w.Today())
}

func (w *Workspace) requireOwner() (session.Principal, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.owner == nil {
		return session.Principal{}, fmt.Errorf("%w: no active session, sign in first", apperrors.ErrUnauthorized)
	}
	return *w.owner, nil
}

// ownedBy must be called with w.mu held.
func (w *Workspace) ownedBy(ownerID string) bool {
	return w.owner != nil && w.owner.ID == ownerID
}

func remoteError(err error, message string) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrAlreadyExists),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidArgument):
		return fmt.Errorf("%s: %w", message, err)
	}
	return apperrors.WrapRemoteError(err, message)
}

func cloneCustomers(in []*customer.Customer) []*customer.Customer {
	out := make([]*customer.Customer, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

func cloneDebts(in []*debt.Debt) []*debt.Debt {
	out := make([]*debt.Debt, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}
