package handler_test

import (
	"bytes"
	"context"
	"debt-ledger/internal/domain/collection"
	"debt-ledger/internal/domain/customer"
	"debt-ledger/internal/domain/dashboard"
	"debt-ledger/internal/domain/debt"
	"debt-ledger/internal/domain/session"
	"debt-ledger/internal/workspace"
	"log/slog"

	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

type MockSessionManager struct {
	mock.Mock
}

func (_m *MockSessionManager) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	ret := _m.Called(ctx, email, password)

	var r0 *session.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*session.Session)
	}
	return r0, ret.Error(1)
}

func (_m *MockSessionManager) SignUp(ctx context.Context, email, password, confirm string) (*session.Session, error) {
	ret := _m.Called(ctx, email, password, confirm)

	var r0 *session.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*session.Session)
	}
	return r0, ret.Error(1)
}

func (_m *MockSessionManager) SignOut(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

func (_m *MockSessionManager) Principal() *session.Principal {
	ret := _m.Called()

	var r0 *session.Principal
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*session.Principal)
	}
	return r0
}

type MockCustomerDirectory struct {
	mock.Mock
}

func (_m *MockCustomerDirectory) ListCustomers(term string) []*customer.Customer {
	ret := _m.Called(term)

	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}
	return r0
}

func (_m *MockCustomerDirectory) GetCustomer(id string) (*customer.Customer, error) {
	ret := _m.Called(id)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerDirectory) CreateCustomer(ctx context.Context, f customer.Fields) (*customer.Customer, error) {
	ret := _m.Called(ctx, f)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerDirectory) UpdateCustomer(ctx context.Context, id string, f customer.Fields) (*customer.Customer, error) {
	ret := _m.Called(ctx, id, f)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerDirectory) DeleteCustomer(ctx context.Context, id string, confirmed bool) error {
	ret := _m.Called(ctx, id, confirmed)
	return ret.Error(0)
}

func (_m *MockCustomerDirectory) HasPendingDebt(customerID string) bool {
	ret := _m.Called(customerID)
	return ret.Bool(0)
}

type MockDebtLedger struct {
	mock.Mock
}

func (_m *MockDebtLedger) ListDebts(f debt.Filter) workspace.DebtList {
	ret := _m.Called(f)
	return ret.Get(0).(workspace.DebtList)
}

func (_m *MockDebtLedger) GetDebt(id string) (*debt.Debt, error) {
	ret := _m.Called(id)

	var r0 *debt.Debt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*debt.Debt)
	}
	return r0, ret.Error(1)
}

func (_m *MockDebtLedger) GetCustomer(id string) (*customer.Customer, error) {
	ret := _m.Called(id)

	var r0 *customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockDebtLedger) PendingCustomerIDs() []string {
	ret := _m.Called()

	var r0 []string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}
	return r0
}

func (_m *MockDebtLedger) CreateDebt(ctx context.Context, f debt.Fields) (*debt.Debt, error) {
	ret := _m.Called(ctx, f)

	var r0 *debt.Debt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*debt.Debt)
	}
	return r0, ret.Error(1)
}

func (_m *MockDebtLedger) UpdateDebt(ctx context.Context, id string, f debt.Fields) (*debt.Debt, error) {
	ret := _m.Called(ctx, id, f)

	var r0 *debt.Debt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*debt.Debt)
	}
	return r0, ret.Error(1)
}

func (_m *MockDebtLedger) DeleteDebt(ctx context.Context, id string, confirmed bool) error {
	ret := _m.Called(ctx, id, confirmed)
	return ret.Error(0)
}

func (_m *MockDebtLedger) Today() debt.Date {
	ret := _m.Called()
	return ret.Get(0).(debt.Date)
}

type MockMessageComposer struct {
	mock.Mock
}

func (_m *MockMessageComposer) Compose(ctx context.Context, d *debt.Debt, c *customer.Customer) collection.Message {
	ret := _m.Called(ctx, d, c)
	return ret.Get(0).(collection.Message)
}

type MockSummarySource struct {
	mock.Mock
}

func (_m *MockSummarySource) Summary() dashboard.Summary {
	ret := _m.Called()
	return ret.Get(0).(dashboard.Summary)
}

func (_m *MockSummarySource) Today() debt.Date {
	ret := _m.Called()
	return ret.Get(0).(debt.Date)
}
