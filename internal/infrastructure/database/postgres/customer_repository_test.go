package postgres

import (
	"context"
	"debt-ledger/internal/domain/customer"
	"debt-ledger/internal/pkg/apperrors"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pgxmockExpectationsNotMetMsg = "pgxmock expectations were not met"

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func setupCustomerRepo(t *testing.T) (context.Context, *CustomerRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}
	return context.Background(), NewCustomerRepository(mockPool, testLogger), mockPool
}

func TestCustomerRepository_ListByOwner(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	created := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	mockPool.ExpectQuery(regexp.QuoteMeta(listCustomersQuery)).WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "document", "phone", "whatsapp", "address", "observations", "created_at"}).
			AddRow("c1", "Ana", "", "1111", "11911111111", "Rua A, 10", "", created).
			AddRow("c2", "Bruno", "123.456.789-00", "2222", "11922222222", "", "paga no dia 10", created))

	customers, err := repo.ListByOwner(ctx, "u1")

	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "c1", customers[0].ID)
	assert.Equal(t, "Rua A, 10", customers[0].Address)
	assert.Equal(t, "123.456.789-00", customers[1].Document)
	assert.Equal(t, "paga no dia 10", customers[1].Observations)
	assert.Equal(t, created, customers[1].CreatedAt)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerRepository_ListByOwnerQueryError(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(listCustomersQuery)).WithArgs("u1").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.ListByOwner(ctx, "u1")

	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerRepository_Insert(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	created := time.Date(2024, time.March, 2, 8, 30, 0, 0, time.UTC)
	c := &customer.Customer{Name: "Carla", Phone: "3333", WhatsApp: "11933333333", Observations: "indicada pela Ana"}
	obs := "indicada pela Ana"

	mockPool.ExpectQuery(regexp.QuoteMeta(insertCustomerQuery)).
		WithArgs("u1", "Carla", (*string)(nil), "3333", "11933333333", (*string)(nil), &obs).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("c3", created))

	err := repo.Insert(ctx, "u1", c)

	require.NoError(t, err)
	assert.Equal(t, "c3", c.ID)
	assert.Equal(t, created, c.CreatedAt)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerRepository_InsertNil(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	err := repo.Insert(ctx, "u1", nil)

	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestCustomerRepository_UpdateRenamesDebts(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	c := &customer.Customer{ID: "c1", Name: "Ana Paula", Phone: "1111", WhatsApp: "11911111111"}

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(updateCustomerQuery)).
		WithArgs("c1", "u1", "Ana Paula", pgxmock.AnyArg(), "1111", "11911111111", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectExec(regexp.QuoteMeta(renameCustomerDebtsQuery)).
		WithArgs("c1", "u1", "Ana Paula").
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	mockPool.ExpectCommit()

	err := repo.Update(ctx, "u1", c)

	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerRepository_UpdateNotFound(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	c := &customer.Customer{ID: "c404", Name: "Ninguém", Phone: "0", WhatsApp: "0"}

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(updateCustomerQuery)).
		WithArgs("c404", "u1", "Ninguém", pgxmock.AnyArg(), "0", "0", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectRollback()

	err := repo.Update(ctx, "u1", c)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerRepository_UpdateRenameFailureRollsBack(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	c := &customer.Customer{ID: "c1", Name: "Ana", Phone: "1", WhatsApp: "1"}

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(updateCustomerQuery)).
		WithArgs("c1", "u1", "Ana", pgxmock.AnyArg(), "1", "1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectExec(regexp.QuoteMeta(renameCustomerDebtsQuery)).
		WithArgs("c1", "u1", "Ana").
		WillReturnError(&pgconn.PgError{Code: "40001", Message: "could not serialize access"})
	mockPool.ExpectRollback()

	err := repo.Update(ctx, "u1", c)

	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.Contains(t, err.Error(), "could not serialize access")
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerRepository_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctx, repo, mockPool := setupCustomerRepo(t)
		defer mockPool.Close()

		mockPool.ExpectExec(regexp.QuoteMeta(deleteCustomerQuery)).WithArgs("c1", "u1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.Delete(ctx, "u1", "c1"))
		assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
	})

	t.Run("Not found", func(t *testing.T) {
		ctx, repo, mockPool := setupCustomerRepo(t)
		defer mockPool.Close()

		mockPool.ExpectExec(regexp.QuoteMeta(deleteCustomerQuery)).WithArgs("c9", "u1").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, repo.Delete(ctx, "u1", "c9"), apperrors.ErrNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
	})
}

func TestTranslateDBError(t *testing.T) {
	assert.Nil(t, translateDBError(nil, testLogger))
	assert.ErrorIs(t, translateDBError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, testLogger), apperrors.ErrAlreadyExists)
	assert.ErrorIs(t, translateDBError(&pgconn.PgError{Code: "23503"}, testLogger), apperrors.ErrValidation)
	assert.ErrorIs(t, translateDBError(&pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}, testLogger), apperrors.ErrNotFound)
	assert.ErrorIs(t, translateDBError(errors.New("eof"), testLogger), apperrors.ErrDatabase)
}
