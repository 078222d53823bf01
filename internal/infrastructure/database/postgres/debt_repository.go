package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"debt-ledger/internal/domain/debt"
	"debt-ledger/internal/pkg/apperrors"
)

const (
	listDebtsQuery = `
        SELECT id::text, customer_id::text, customer_name, value, date, due_date, status,
               COALESCE(payment_method, ''), COALESCE(observations, ''), created_at
        FROM debts
        WHERE user_id = $1
        ORDER BY created_at DESC`

	insertDebtQuery = `
        INSERT INTO debts (user_id, customer_id, customer_name, value, date, due_date, status, payment_method, observations)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id::text, created_at`

	updateDebtQuery = `
        UPDATE debts
        SET customer_id = $3,
            customer_name = $4,
            value = $5,
            date = $6,
            due_date = $7,
            status = $8,
            payment_method = $9,
            observations = $10
        WHERE id = $1 AND user_id = $2`

	deleteDebtQuery = `DELETE FROM debts WHERE id = $1 AND user_id = $2`
)

type DebtRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ debt.Repository = (*DebtRepository)(nil)

func NewDebtRepository(db DBPool, logger *slog.Logger) *DebtRepository {
	if db == nil {
		panic("DBPool cannot be nil for DebtRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewDebtRepository, using default stderr handler")
	}
	return &DebtRepository{
		db:     db,
		logger: logger.With("component", "DebtRepository"),
	}
}

func (r *DebtRepository) ListByOwner(ctx context.Context, ownerID string) (_ []*debt.Debt, err error) {
	defer track("list_debts")(&err)
	logCtx := r.logger.With(slog.String("operation", "ListByOwner"), slog.String("ownerID", ownerID))

	rows, err := r.db.Query(ctx, listDebtsQuery, ownerID)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to query debts", slog.Any("error", err))
		return nil, translateDBError(err, logCtx)
	}
	defer rows.Close()

	debts := make([]*debt.Debt, 0)
	for rows.Next() {
		d := &debt.Debt{}
		var status string
		if err = rows.Scan(
			&d.ID,
			&d.CustomerID,
			&d.CustomerName,
			&d.Value,
			&d.Date.Time,
			&d.DueDate.Time,
			&status,
			&d.PaymentMethod,
			&d.Observations,
			&d.CreatedAt,
		); err != nil {
			logCtx.ErrorContext(ctx, "Failed to scan debt row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan debt row: %w", apperrors.ErrDatabase, err)
		}
		d.Status = debt.Status(status)
		d.Date = debt.DateOf(d.Date.Time)
		d.DueDate = debt.DateOf(d.DueDate.Time)
		debts = append(debts, d)
	}
	if err = rows.Err(); err != nil {
		logCtx.ErrorContext(ctx, "Error iterating debt rows", slog.Any("error", err))
		return nil, translateDBError(err, logCtx)
	}

	logCtx.DebugContext(ctx, "Debts loaded", slog.Int("count", len(debts)))
	return debts, nil
}

func (r *DebtRepository) Insert(ctx context.Context, ownerID string, d *debt.Debt) (err error) {
	defer track("insert_debt")(&err)
	if d == nil {
		return fmt.Errorf("%w: debt cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.String("operation", "Insert"), slog.String("customerID", d.CustomerID))
	logCtx.InfoContext(ctx, "Attempting to insert new debt")

	err = r.db.QueryRow(ctx, insertDebtQuery,
		ownerID,
		d.CustomerID,
		d.CustomerName,
		d.Value,
		d.Date.Time,
		d.DueDate.Time,
		string(d.Status),
		nullIfEmpty(d.PaymentMethod),
		nullIfEmpty(d.Observations),
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return translateDBError(err, logCtx)
	}

	logCtx.InfoContext(ctx, "Debt inserted successfully", slog.String("debtID", d.ID))
	return nil
}

func (r *DebtRepository) Update(ctx context.Context, ownerID string, d *debt.Debt) (err error) {
	defer track("update_debt")(&err)
	if d == nil {
		return fmt.Errorf("%w: debt cannot be nil", apperrors.ErrInvalidArgument)
	}
	logCtx := r.logger.With(slog.String("operation", "Update"), slog.String("debtID", d.ID))

	tag, err := r.db.Exec(ctx, updateDebtQuery,
		d.ID,
		ownerID,
		d.CustomerID,
		d.CustomerName,
		d.Value,
		d.Date.Time,
		d.DueDate.Time,
		string(d.Status),
		nullIfEmpty(d.PaymentMethod),
		nullIfEmpty(d.Observations),
	)
	if err != nil {
		return translateDBError(err, logCtx)
	}
	if tag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "Debt not found for update")
		return fmt.Errorf("%w: debt %s", apperrors.ErrNotFound, d.ID)
	}

	logCtx.InfoContext(ctx, "Debt updated successfully", slog.String("status", string(d.Status)))
	return nil
}

func (r *DebtRepository) Delete(ctx context.Context, ownerID, debtID string) (err error) {
	defer track("delete_debt")(&err)
	logCtx := r.logger.With(slog.String("operation", "Delete"), slog.String("debtID", debtID))

	tag, err := r.db.Exec(ctx, deleteDebtQuery, debtID, ownerID)
	if err != nil {
		return translateDBError(err, logCtx)
	}
	if tag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "Debt not found for deletion")
		return fmt.Errorf("%w: debt %s", apperrors.ErrNotFound, debtID)
	}

	logCtx.InfoContext(ctx, "Debt deleted successfully")
	return nil
}
