package handler_test

import (
	"bytes"
	"debt-ledger/internal/api/handler"
	"debt-ledger/internal/api/handler/dto"
	"debt-ledger/internal/domain/collection"
	"debt-ledger/internal/domain/customer"
	"debt-ledger/internal/domain/debt"
	"debt-ledger/internal/pkg/apperrors"
	"debt-ledger/internal/workspace"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var today = debt.NewDate(2024, time.May, 10)

func setupDebtRouter(h *handler.DebtHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/debts", func(r chi.Router) {
		r.Get("/", h.ListDebts)
		r.Post("/", h.CreateDebt)
		r.Get("/pending-customers", h.PendingCustomers)
		r.Route("/{debtID}", func(r chi.Router) {
			r.Get("/", h.GetDebt)
			r.Put("/", h.UpdateDebt)
			r.Delete("/", h.DeleteDebt)
			r.Post("/collection-message", h.CollectionMessage)
		})
	})
	return r
}

func sampleDebt() *debt.Debt {
	return &debt.Debt{
		ID:           debtID,
		CustomerID:   customerID,
		CustomerName: "Ana Souza",
		Value:        decimal.RequireFromString("1234.5"),
		Date:         debt.NewDate(2024, time.April, 1),
		DueDate:      debt.NewDate(2024, time.May, 1),
		Status:       debt.StatusPending,
		CreatedAt:    time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC),
	}
}

func newDebtHandler(ledger *MockDebtLedger, composer *MockMessageComposer) *handler.DebtHandler {
	return handler.NewDebtHandler(ledger, composer, testLogger())
}

func TestNewDebtHandler(t *testing.T) {
	assert.Panics(t, func() { handler.NewDebtHandler(nil, new(MockMessageComposer), testLogger()) })
	assert.Panics(t, func() { handler.NewDebtHandler(new(MockDebtLedger), nil, testLogger()) })
	assert.Panics(t, func() { handler.NewDebtHandler(new(MockDebtLedger), new(MockMessageComposer), nil) })
}

func TestDebtHandler_ListDebts(t *testing.T) {
	t.Run("Overdue filter", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		ledger.On("ListDebts", debt.FilterOverdue).Return(workspace.DebtList{
			Items: []*debt.Debt{sampleDebt()},
			Total: decimal.RequireFromString("1234.5"),
		}).Once()
		ledger.On("Today").Return(today)
		router := setupDebtRouter(newDebtHandler(ledger, new(MockMessageComposer)))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/debts?filter=overdue", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp dto.DebtListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "overdue", resp.Filter)
		assert.Equal(t, 1, resp.Count)
		assert.Equal(t, "1234.50", resp.Total)
		assert.Equal(t, "R$ 1.234,50", resp.FormattedTotal)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].Overdue)
		assert.Equal(t, "2024-05-01", resp.Items[0].DueDate)
		assert.Equal(t, "Pendente", resp.Items[0].Status)
		ledger.AssertExpectations(t)
	})

	t.Run("Default filter", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		ledger.On("ListDebts", debt.FilterAll).Return(workspace.DebtList{Items: []*debt.Debt{}, Total: decimal.Zero}).Once()
		ledger.On("Today").Return(today)
		router := setupDebtRouter(newDebtHandler(ledger, new(MockMessageComposer)))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/debts", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp dto.DebtListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "0.00", resp.Total)
		assert.Empty(t, resp.Items)
	})

	t.Run("Unknown filter", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		router := setupDebtRouter(newDebtHandler(ledger, new(MockMessageComposer)))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/debts?filter=late", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "filter", resp.Error.Field)
		ledger.AssertNotCalled(t, "ListDebts", mock.Anything)
	})
}

func TestDebtHandler_CreateDebt(t *testing.T) {
	req := dto.DebtRequest{CustomerID: customerID, Value: "1234,50", Date: "2024-04-01", DueDate: "2024-05-01"}

	t.Run("Success", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		ledger.On("CreateDebt", mock.Anything, req.Fields()).Return(sampleDebt(), nil).Once()
		ledger.On("Today").Return(today)
		router := setupDebtRouter(newDebtHandler(ledger, new(MockMessageComposer)))

		body, _ := json.Marshal(req)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/debts", bytes.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp dto.DebtResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, debtID, resp.ID)
		assert.Equal(t, "1234.50", resp.Value)
		assert.Equal(t, "R$ 1.234,50", resp.FormattedValue)
		ledger.AssertExpectations(t)
	})

	t.Run("Pending debt exists", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		ledger.On("CreateDebt", mock.Anything, req.Fields()).Return(nil, apperrors.ErrPendingDebtExists).Once()
		router := setupDebtRouter(newDebtHandler(ledger, new(MockMessageComposer)))

		body, _ := json.Marshal(req)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/debts", bytes.NewReader(body)))

		assert.Equal(t, http.StatusConflict, rr.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "PENDING_DEBT_EXISTS", resp.Error.Code)
	})

	t.Run("Negative value", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		bad := req
		bad.Value = "-3"
		ledger.On("CreateDebt", mock.Anything, bad.Fields()).
			Return(nil, apperrors.NewValidationError("value", "o valor não pode ser negativo")).Once()
		router := setupDebtRouter(newDebtHandler(ledger, new(MockMessageComposer)))

		body, _ := json.Marshal(bad)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/debts", bytes.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Backend failure", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		ledger.On("CreateDebt", mock.Anything, req.Fields()).
			Return(nil, apperrors.WrapRemoteError(fmt.Errorf("timeout"), "failed to save debt")).Once()
		router := setupDebtRouter(newDebtHandler(ledger, new(MockMessageComposer)))

		body, _ := json.Marshal(req)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/debts", bytes.NewReader(body)))

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "failed to save debt: timeout", resp.Error.Message)
	})
}

func TestDebtHandler_GetUpdateDelete(t *testing.T) {
	t.Run("Get", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		ledger.On("GetDebt", debtID).Return(sampleDebt(), nil).Once()
		ledger.On("Today").Return(today)
		router := setupDebtRouter(newDebtHandler(ledger, new(MockMessageComposer)))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/debts/"+debtID, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Mark as paid", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		req := dto.DebtRequest{CustomerID: customerID, Value: "1234.50", Date: "2024-04-01", DueDate: "2024-05-01", Status: "Paga", PaymentMethod: "Pix"}
		paid := sampleDebt()
		paid.Status = debt.StatusPaid
		paid.PaymentMethod = "Pix"
		ledger.On("UpdateDebt", mock.Anything, debtID, req.Fields()).Return(paid, nil).Once()
		ledger.On("Today").Return(today)
		router := setupDebtRouter(newDebtHandler(ledger, new(MockMessageComposer)))

		body, _ := json.Marshal(req)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/debts/"+debtID, bytes.NewReader(body)))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp dto.DebtResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Paga", resp.Status)
		assert.False(t, resp.Overdue)
	})

	t.Run("Update not found", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		req := dto.DebtRequest{CustomerID: customerID, Value: "10", Date: "2024-04-01", DueDate: "2024-05-01"}
		ledger.On("UpdateDebt", mock.Anything, debtID, req.Fields()).Return(nil, apperrors.ErrNotFound).Once()
		router := setupDebtRouter(newDebtHandler(ledger, new(MockMessageComposer)))

		body, _ := json.Marshal(req)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/debts/"+debtID, bytes.NewReader(body)))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		ledger.On("DeleteDebt", mock.Anything, debtID, true).Return(nil).Once()
		router := setupDebtRouter(newDebtHandler(ledger, new(MockMessageComposer)))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/debts/"+debtID+"?confirm=1", nil))

		assert.Equal(t, http.StatusNoContent, rr.Code)
		ledger.AssertExpectations(t)
	})
}

func TestDebtHandler_PendingCustomers(t *testing.T) {
	t.Run("With pending", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		ledger.On("PendingCustomerIDs").Return([]string{customerID}).Once()
		router := setupDebtRouter(newDebtHandler(ledger, new(MockMessageComposer)))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/debts/pending-customers", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"customerIds":["`+customerID+`"]}`, rr.Body.String())
	})

	t.Run("None", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		ledger.On("PendingCustomerIDs").Return(nil).Once()
		router := setupDebtRouter(newDebtHandler(ledger, new(MockMessageComposer)))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/debts/pending-customers", nil))

		assert.JSONEq(t, `{"customerIds":[]}`, rr.Body.String())
	})
}

func TestDebtHandler_CollectionMessage(t *testing.T) {
	t.Run("With customer", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		composer := new(MockMessageComposer)
		d := sampleDebt()
		c := sampleCustomer()
		ledger.On("GetDebt", debtID).Return(d, nil).Once()
		ledger.On("GetCustomer", customerID).Return(c, nil).Once()
		composer.On("Compose", mock.Anything, d, c).
			Return(collection.Message{Text: "Olá Ana, tudo bem?", Source: collection.SourceGenerated}).Once()
		router := setupDebtRouter(newDebtHandler(ledger, composer))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/debts/"+debtID+"/collection-message", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp dto.CollectionMessageResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "generated", resp.Source)
		assert.Equal(t, "Olá Ana, tudo bem?", resp.Message)
		assert.Equal(t, "https://wa.me/5511988887777?text=Ol%C3%A1%20Ana%2C%20tudo%20bem%3F", resp.WhatsAppLink)
		composer.AssertExpectations(t)
	})

	t.Run("Customer removed", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		composer := new(MockMessageComposer)
		d := sampleDebt()
		ledger.On("GetDebt", debtID).Return(d, nil).Once()
		ledger.On("GetCustomer", customerID).Return(nil, apperrors.ErrNotFound).Once()
		composer.On("Compose", mock.Anything, d, (*customer.Customer)(nil)).
			Return(collection.Message{Text: "Olá Ana Souza", Source: collection.SourceFallback}).Once()
		router := setupDebtRouter(newDebtHandler(ledger, composer))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/debts/"+debtID+"/collection-message", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp dto.CollectionMessageResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "fallback", resp.Source)
		assert.Empty(t, resp.WhatsAppLink)
	})

	t.Run("Debt not found", func(t *testing.T) {
		ledger := new(MockDebtLedger)
		composer := new(MockMessageComposer)
		ledger.On("GetDebt", debtID).Return(nil, apperrors.ErrNotFound).Once()
		router := setupDebtRouter(newDebtHandler(ledger, composer))

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/debts/"+debtID+"/collection-message", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		composer.AssertNotCalled(t, "Compose", mock.Anything, mock.Anything, mock.Anything)
	})
}
