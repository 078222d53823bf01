package workspace_test

import (
	"context"
	"debt-ledger/internal/domain/customer"
	"debt-ledger/internal/domain/debt"
	"debt-ledger/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (_m *MockCustomerRepository) ListByOwner(ctx context.Context, ownerID string) ([]*customer.Customer, error) {
	ret := _m.Called(ctx, ownerID)

	var r0 []*customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) Insert(ctx context.Context, ownerID string, c *customer.Customer) error {
	ret := _m.Called(ctx, ownerID, c)

	if rf, ok := ret.Get(0).(func(context.Context, string, *customer.Customer) error); ok {
		return rf(ctx, ownerID, c)
	}
	return ret.Error(0)
}

func (_m *MockCustomerRepository) Update(ctx context.Context, ownerID string, c *customer.Customer) error {
	ret := _m.Called(ctx, ownerID, c)
	return ret.Error(0)
}

func (_m *MockCustomerRepository) Delete(ctx context.Context, ownerID, customerID string) error {
	ret := _m.Called(ctx, ownerID, customerID)
	return ret.Error(0)
}

type MockDebtRepository struct {
	mock.Mock
}

func (_m *MockDebtRepository) ListByOwner(ctx context.Context, ownerID string) ([]*debt.Debt, error) {
	ret := _m.Called(ctx, ownerID)

	var r0 []*debt.Debt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*debt.Debt)
	}
	return r0, ret.Error(1)
}

func (_m *MockDebtRepository) Insert(ctx context.Context, ownerID string, d *debt.Debt) error {
	ret := _m.Called(ctx, ownerID, d)

	if rf, ok := ret.Get(0).(func(context.Context, string, *debt.Debt) error); ok {
		return rf(ctx, ownerID, d)
	}
	return ret.Error(0)
}

func (_m *MockDebtRepository) Update(ctx context.Context, ownerID string, d *debt.Debt) error {
	ret := _m.Called(ctx, ownerID, d)

	if rf, ok := ret.Get(0).(func(context.Context, string, *debt.Debt) error); ok {
		return rf(ctx, ownerID, d)
	}
	return ret.Error(0)
}

func (_m *MockDebtRepository) Delete(ctx context.Context, ownerID, debtID string) error {
	ret := _m.Called(ctx, ownerID, debtID)
	return ret.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (_m *MockEventPublisher) PublishCustomerEvent(ctx context.Context, e event.CustomerEvent) error {
	ret := _m.Called(ctx, e)
	return ret.Error(0)
}

func (_m *MockEventPublisher) PublishDebtEvent(ctx context.Context, e event.DebtEvent) error {
	ret := _m.Called(ctx, e)
	return ret.Error(0)
}
