package handler

import (
	"context"
	"debt-ledger/internal/api/handler/dto"
	"debt-ledger/internal/domain/collection"
	"debt-ledger/internal/domain/customer"
	"debt-ledger/internal/domain/debt"
	"debt-ledger/internal/infrastructure/monitoring"
	"debt-ledger/internal/pkg/apperrors"
	"debt-ledger/internal/workspace"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// DebtLedger is the debt side of the signed-in workspace.
type DebtLedger interface {
	ListDebts(f debt.Filter) workspace.DebtList
	GetDebt(id string) (*debt.Debt, error)
	GetCustomer(id string) (*customer.Customer, error)
	PendingCustomerIDs() []string
	CreateDebt(ctx context.Context, f debt.Fields) (*debt.Debt, error)
	UpdateDebt(ctx context.Context, id string, f debt.Fields) (*debt.Debt, error)
	DeleteDebt(ctx context.Context, id string, confirmed bool) error
	Today() debt.Date
}

type MessageComposer interface {
	Compose(ctx context.Context, d *debt.Debt, c *customer.Customer) collection.Message
}

type DebtHandler struct {
	ledger   DebtLedger
	composer MessageComposer
	logger   *slog.Logger
}

func NewDebtHandler(ledger DebtLedger, composer MessageComposer, l *slog.Logger) *DebtHandler {
	if ledger == nil {
		panic("debt ledger cannot be nil")
	}
	if composer == nil {
		panic("message composer cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &DebtHandler{
		ledger:   ledger,
		composer: composer,
		logger:   l.With("component", "DebtHandler"),
	}
}

// ListDebts handles GET /debts
// @Summary List debts
// @Description Lists debts newest first with the sum of the listed values. Overdue means pending with a due date before today.
// @Tags Debts
// @Produce json
// @Param filter query string false "Filter" Enums(all, pending, paid, overdue)
// @Success 200 {object} dto.DebtListResponse "Filtered debts and total"
// @Failure 400 {object} dto.ErrorResponse "Unknown filter"
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Router /debts [get]
// @Security BearerAuth
func (h *DebtHandler) ListDebts(w http.ResponseWriter, r *http.Request) {
	filter, err := debt.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid debt filter", slog.Any("error", err))
		respondError(w, err)
		return
	}

	list := h.ledger.ListDebts(filter)
	h.logger.DebugContext(r.Context(), "Debts listed", slog.String("filter", string(filter)), slog.Int("count", len(list.Items)))
	respondJSON(w, http.StatusOK, dto.NewDebtListResponse(filter, list.Items, list.Total, h.ledger.Today()))
}

// CreateDebt handles POST /debts
// @Summary Register a debt
// @Description A customer can hold only one pending debt at a time.
// @Tags Debts
// @Accept json
// @Produce json
// @Param request body dto.DebtRequest true "Debt data"
// @Success 201 {object} dto.DebtResponse "Debt created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Failure 409 {object} dto.ErrorResponse "Customer already has a pending debt"
// @Failure 502 {object} dto.ErrorResponse "Backend failure"
// @Router /debts [post]
// @Security BearerAuth
func (h *DebtHandler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var req dto.DebtRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.ledger.CreateDebt(r.Context(), req.Fields())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to create debt", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Debt created", slog.String("debtID", created.ID), slog.String("customerID", created.CustomerID))
	respondJSON(w, http.StatusCreated, dto.NewDebtResponse(created, h.ledger.Today()))
}

// GetDebt handles GET /debts/{debtID}
// @Summary Get a debt
// @Tags Debts
// @Produce json
// @Param debtID path string true "Debt ID" Format(uuid)
// @Success 200 {object} dto.DebtResponse "Debt"
// @Failure 400 {object} dto.ErrorResponse "Invalid debt ID"
// @Failure 404 {object} dto.ErrorResponse "Debt not found"
// @Router /debts/{debtID} [get]
// @Security BearerAuth
func (h *DebtHandler) GetDebt(w http.ResponseWriter, r *http.Request) {
	debtID, err := getIDFromURL(r, "debtID")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get debt ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	d, err := h.ledger.GetDebt(debtID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to get debt", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewDebtResponse(d, h.ledger.Today()))
}

// UpdateDebt handles PUT /debts/{debtID}
// @Summary Update a debt
// @Description Replaces every field. Marking a debt as Paga or Pendente is done here.
// @Tags Debts
// @Accept json
// @Produce json
// @Param debtID path string true "Debt ID" Format(uuid)
// @Param request body dto.DebtRequest true "Debt data"
// @Success 200 {object} dto.DebtResponse "Debt updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or validation error"
// @Failure 404 {object} dto.ErrorResponse "Debt not found"
// @Failure 409 {object} dto.ErrorResponse "Pending debt conflict or change in progress"
// @Failure 502 {object} dto.ErrorResponse "Backend failure"
// @Router /debts/{debtID} [put]
// @Security BearerAuth
func (h *DebtHandler) UpdateDebt(w http.ResponseWriter, r *http.Request) {
	debtID, err := getIDFromURL(r, "debtID")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get debt ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.DebtRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	updated, err := h.ledger.UpdateDebt(r.Context(), debtID, req.Fields())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to update debt", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Debt updated", slog.String("debtID", updated.ID), slog.String("status", string(updated.Status)))
	respondJSON(w, http.StatusOK, dto.NewDebtResponse(updated, h.ledger.Today()))
}

// DeleteDebt handles DELETE /debts/{debtID}
// @Summary Delete a debt
// @Description Requires confirm=true.
// @Tags Debts
// @Produce json
// @Param debtID path string true "Debt ID" Format(uuid)
// @Param confirm query bool true "Explicit confirmation"
// @Success 204 "Debt deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or missing confirmation"
// @Failure 404 {object} dto.ErrorResponse "Debt not found"
// @Failure 502 {object} dto.ErrorResponse "Backend failure"
// @Router /debts/{debtID} [delete]
// @Security BearerAuth
func (h *DebtHandler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	debtID, err := getIDFromURL(r, "debtID")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get debt ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}
	confirmed, err := confirmedFromQuery(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.ledger.DeleteDebt(r.Context(), debtID, confirmed); err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to delete debt", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Debt deleted", slog.String("debtID", debtID))
	respondJSON(w, http.StatusNoContent, nil)
}

// PendingCustomers handles GET /debts/pending-customers
// @Summary Customers with a pending debt
// @Description These customers cannot receive a new debt until the pending one is paid or removed.
// @Tags Debts
// @Produce json
// @Success 200 {object} dto.PendingCustomersResponse "Customer IDs"
// @Router /debts/pending-customers [get]
// @Security BearerAuth
func (h *DebtHandler) PendingCustomers(w http.ResponseWriter, r *http.Request) {
	ids := h.ledger.PendingCustomerIDs()
	if ids == nil {
		ids = []string{}
	}
	respondJSON(w, http.StatusOK, dto.PendingCustomersResponse{CustomerIDs: ids})
}

// CollectionMessage handles POST /debts/{debtID}/collection-message
// @Summary Compose a collection message
// @Description Generates a polite pt-BR collection message for WhatsApp. Falls back to a fixed template when generation fails.
// @Tags Debts
// @Produce json
// @Param debtID path string true "Debt ID" Format(uuid)
// @Success 200 {object} dto.CollectionMessageResponse "Message and WhatsApp link"
// @Failure 400 {object} dto.ErrorResponse "Invalid debt ID"
// @Failure 404 {object} dto.ErrorResponse "Debt not found"
// @Router /debts/{debtID}/collection-message [post]
// @Security BearerAuth
func (h *DebtHandler) CollectionMessage(w http.ResponseWriter, r *http.Request) {
	debtID, err := getIDFromURL(r, "debtID")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get debt ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	d, err := h.ledger.GetDebt(debtID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to get debt", slog.Any("error", err))
		respondError(w, err)
		return
	}

	// The customer may have been removed locally while its debts stay listed.
	c, err := h.ledger.GetCustomer(d.CustomerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			respondError(w, err)
			return
		}
		c = nil
	}

	msg := h.composer.Compose(r.Context(), d, c)
	monitoring.RecordCollectionMessage(string(msg.Source))

	resp := dto.CollectionMessageResponse{
		DebtID:  d.ID,
		Message: msg.Text,
		Source:  string(msg.Source),
	}
	if c != nil {
		resp.WhatsAppLink = collection.WhatsAppLink(c.WhatsApp, msg.Text)
	}

	h.logger.InfoContext(r.Context(), "Collection message composed", slog.String("debtID", d.ID), slog.String("source", resp.Source))
	respondJSON(w, http.StatusOK, resp)
}
