package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"debt-ledger/internal/domain/customer"
	"debt-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	listCustomersQuery = `
        SELECT id::text, name, COALESCE(document, ''), phone, whatsapp,
               COALESCE(address, ''), COALESCE(observations, ''), created_at
        FROM customers
        WHERE user_id = $1
        ORDER BY name ASC`

	insertCustomerQuery = `
        INSERT INTO customers (user_id, name, document, phone, whatsapp, address, observations)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id::text, created_at`

	updateCustomerQuery = `
        UPDATE customers
        SET name = $3,
            document = $4,
            phone = $5,
            whatsapp = $6,
            address = $7,
            observations = $8
        WHERE id = $1 AND user_id = $2`

	renameCustomerDebtsQuery = `
        UPDATE debts
        SET customer_name = $3
        WHERE customer_id = $1 AND user_id = $2`

	deleteCustomerQuery = `DELETE FROM customers WHERE id = $1 AND user_id = $2`
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) ListByOwner(ctx context.Context, ownerID string) (_ []*customer.Customer, err error) {
	defer track("list_customers")(&err)
	logCtx := r.logger.With(slog.String("operation", "ListByOwner"), slog.String("ownerID", ownerID))

	rows, err := r.db.Query(ctx, listCustomersQuery, ownerID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, translateDBError(err, logCtx)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		c := &customer.Customer{}
		if err = rows.Scan(&c.ID, &c.Name, &c.Document, &c.Phone, &c.WhatsApp, &c.Address, &c.Observations, &c.CreatedAt); err != nil {
			logCtx.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		logCtx.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, translateDBError(err, logCtx)
	}

	logCtx.DebugContext(ctx, "Customers loaded", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) Insert(ctx context.Context, ownerID string, c *customer.Customer) (err error) {
	defer track("insert_customer")(&err)
	if c == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.String("operation", "Insert"), slog.String("ownerID", ownerID))
	logCtx.InfoContext(ctx, "Attempting to insert new customer", slog.String("name", c.Name))

	err = r.db.QueryRow(ctx, insertCustomerQuery,
		ownerID,
		c.Name,
		nullIfEmpty(c.Document),
		c.Phone,
		c.WhatsApp,
		nullIfEmpty(c.Address),
		nullIfEmpty(c.Observations),
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return translateDBError(err, logCtx)
	}

	logCtx.InfoContext(ctx, "Customer inserted successfully", slog.String("customerID", c.ID))
	return nil
}

// Update keeps debts.customer_name in step with the customer's name in the same transaction.
// The stored copy is rewritten too, not only the loaded debts, so a reload after a rename
// shows the new name on older debts.
func (r *CustomerRepository) Update(ctx context.Context, ownerID string, c *customer.Customer) (err error) {
	defer track("update_customer")(&err)
	if c == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.String("operation", "Update"), slog.String("customerID", c.ID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrDatabase, err)
	}

	tag, err := tx.Exec(ctx, updateCustomerQuery,
		c.ID,
		ownerID,
		c.Name,
		nullIfEmpty(c.Document),
		c.Phone,
		c.WhatsApp,
		nullIfEmpty(c.Address),
		nullIfEmpty(c.Observations),
	)
	if err != nil {
		r.rollback(ctx, tx, logCtx)
		return translateDBError(err, logCtx)
	}
	if tag.RowsAffected() == 0 {
		r.rollback(ctx, tx, logCtx)
		logCtx.WarnContext(ctx, "Customer not found for update")
		return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, c.ID)
	}

	tag, err = tx.Exec(ctx, renameCustomerDebtsQuery, c.ID, ownerID, c.Name)
	if err != nil {
		r.rollback(ctx, tx, logCtx)
		return translateDBError(err, logCtx)
	}

	if err = tx.Commit(ctx); err != nil {
		logCtx.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to commit transaction: %w", apperrors.ErrDatabase, err)
	}

	logCtx.InfoContext(ctx, "Customer updated successfully", slog.Int64("debtsRenamed", tag.RowsAffected()))
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, ownerID, customerID string) (err error) {
	defer track("delete_customer")(&err)
	logCtx := r.logger.With(slog.String("operation", "Delete"), slog.String("customerID", customerID))

	tag, err := r.db.Exec(ctx, deleteCustomerQuery, customerID, ownerID)
	if err != nil {
		return translateDBError(err, logCtx)
	}
	if tag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "Customer not found for deletion")
		return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
	}

	logCtx.InfoContext(ctx, "Customer deleted successfully")
	return nil
}

func (r *CustomerRepository) rollback(ctx context.Context, tx pgx.Tx, logCtx *slog.Logger) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logCtx.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", err))
	}
}
