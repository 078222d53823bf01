package handler

import (
	"context"
	"debt-ledger/internal/api/handler/dto"
	"debt-ledger/internal/domain/customer"
	"debt-ledger/internal/pkg/apperrors"
	"fmt"
	"log/slog"
	"net/http"
)

// CustomerDirectory is the customer side of the signed-in workspace.
type CustomerDirectory interface {
	ListCustomers(term string) []*customer.Customer
	GetCustomer(id string) (*customer.Customer, error)
	CreateCustomer(ctx context.Context, f customer.Fields) (*customer.Customer, error)
	UpdateCustomer(ctx context.Context, id string, f customer.Fields) (*customer.Customer, error)
	DeleteCustomer(ctx context.Context, id string, confirmed bool) error
	HasPendingDebt(customerID string) bool
}

type CustomerHandler struct {
	directory CustomerDirectory
	logger    *slog.Logger
}

func NewCustomerHandler(d CustomerDirectory, l *slog.Logger) *CustomerHandler {
	if d == nil {
		panic("customer directory cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		directory: d,
		logger:    l.With("component", "CustomerHandler"),
	}
}

func (h *CustomerHandler) respond(c *customer.Customer) dto.CustomerResponse {
	return dto.NewCustomerResponse(c, h.directory.HasPendingDebt(c.ID))
}

// ListCustomers handles GET /customers
// @Summary List customers
// @Description Lists the signed-in user's customers, newest first. The optional term matches name, document or phone, ignoring case.
// @Tags Customers
// @Produce json
// @Param q query string false "Search term" Example(ana)
// @Success 200 {array} dto.CustomerResponse "List of customers"
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Router /customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	customers := h.directory.ListCustomers(term)

	resp := make([]dto.CustomerResponse, len(customers))
	for i, c := range customers {
		resp[i] = h.respond(c)
	}

	h.logger.DebugContext(r.Context(), "Customers listed", slog.Int("count", len(resp)), slog.String("term", term))
	respondJSON(w, http.StatusOK, resp)
}

// CreateCustomer handles POST /customers
// @Summary Create a customer
// @Description Name, phone and WhatsApp are required.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer data"
// @Success 201 {object} dto.CustomerResponse "Customer created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Failure 502 {object} dto.ErrorResponse "Backend failure"
// @Router /customers [post]
// @Security BearerAuth
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.directory.CreateCustomer(r.Context(), req.Fields())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to create customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer created", slog.String("customerID", created.ID))
	respondJSON(w, http.StatusCreated, h.respond(created))
}

// GetCustomer handles GET /customers/{customerID}
// @Summary Get a customer
// @Tags Customers
// @Produce json
// @Param customerID path string true "Customer ID" Format(uuid)
// @Success 200 {object} dto.CustomerResponse "Customer"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Router /customers/{customerID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getIDFromURL(r, "customerID")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	c, err := h.directory.GetCustomer(customerID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to get customer", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.respond(c))
}

// UpdateCustomer handles PUT /customers/{customerID}
// @Summary Update a customer
// @Description Replaces the editable fields. A name change is copied onto the customer's debts.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID" Format(uuid)
// @Param request body dto.CustomerRequest true "Customer data"
// @Success 200 {object} dto.CustomerResponse "Customer updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or validation error"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 409 {object} dto.ErrorResponse "Another change to this customer is in progress"
// @Failure 502 {object} dto.ErrorResponse "Backend failure"
// @Router /customers/{customerID} [put]
// @Security BearerAuth
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getIDFromURL(r, "customerID")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	updated, err := h.directory.UpdateCustomer(r.Context(), customerID, req.Fields())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to update customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer updated", slog.String("customerID", updated.ID))
	respondJSON(w, http.StatusOK, h.respond(updated))
}

// DeleteCustomer handles DELETE /customers/{customerID}
// @Summary Delete a customer
// @Description Requires confirm=true. Debts of the customer are removed by the store.
// @Tags Customers
// @Produce json
// @Param customerID path string true "Customer ID" Format(uuid)
// @Param confirm query bool true "Explicit confirmation"
// @Success 204 "Customer deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or missing confirmation"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 409 {object} dto.ErrorResponse "Another change to this customer is in progress"
// @Failure 502 {object} dto.ErrorResponse "Backend failure"
// @Router /customers/{customerID} [delete]
// @Security BearerAuth
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getIDFromURL(r, "customerID")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}
	confirmed, err := confirmedFromQuery(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.directory.DeleteCustomer(r.Context(), customerID, confirmed); err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to delete customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer deleted", slog.String("customerID", customerID))
	respondJSON(w, http.StatusNoContent, nil)
}

// WhatsAppLink handles GET /customers/{customerID}/whatsapp
// @Summary Open a WhatsApp chat
// @Description Builds a wa.me link for the customer's WhatsApp number.
// @Tags Customers
// @Produce json
// @Param customerID path string true "Customer ID" Format(uuid)
// @Success 200 {object} dto.WhatsAppLinkResponse "Chat link"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Router /customers/{customerID}/whatsapp [get]
// @Security BearerAuth
func (h *CustomerHandler) WhatsAppLink(w http.ResponseWriter, r *http.Request) {
	customerID, err := getIDFromURL(r, "customerID")
	if err != nil {
		respondError(w, err)
		return
	}
	c, err := h.directory.GetCustomer(customerID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Failed to get customer", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewWhatsAppLinkResponse(c))
}
