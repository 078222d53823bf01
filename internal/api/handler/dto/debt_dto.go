package dto

import (
	"debt-ledger/internal/domain/collection"
	"debt-ledger/internal/domain/debt"
	"time"

	"github.com/shopspring/decimal"
)

// DebtRequest carries the value as text so "12,50" and "12.50" are both accepted.
type DebtRequest struct {
	CustomerID    string `json:"customerId" example:"5b0c3f7e-2a6e-4a57-8f3c-6c1b1b0b8a11"`
	Value         string `json:"value" example:"150,00"`
	Date          string `json:"date" example:"2024-05-01"`
	DueDate       string `json:"dueDate" example:"2024-05-31"`
	Status        string `json:"status,omitempty" example:"Pendente"`
	PaymentMethod string `json:"paymentMethod,omitempty" example:"Pix"`
	Observations  string `json:"observations,omitempty"`
}

func (r DebtRequest) Fields() debt.Fields {
	return debt.Fields{
		CustomerID:    r.CustomerID,
		Value:         r.Value,
		Date:          r.Date,
		DueDate:       r.DueDate,
		Status:        r.Status,
		PaymentMethod: r.PaymentMethod,
		Observations:  r.Observations,
	}
}

type DebtResponse struct {
	ID             string    `json:"id"`
	CustomerID     string    `json:"customerId"`
	CustomerName   string    `json:"customerName"`
	Value          string    `json:"value"`
	FormattedValue string    `json:"formattedValue"`
	Date           string    `json:"date"`
	DueDate        string    `json:"dueDate"`
	Status         string    `json:"status"`
	Overdue        bool      `json:"overdue"`
	PaymentMethod  string    `json:"paymentMethod,omitempty"`
	Observations   string    `json:"observations,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func NewDebtResponse(d *debt.Debt, today debt.Date) DebtResponse {
	if d == nil {
		return DebtResponse{}
	}
	return DebtResponse{
		ID:             d.ID,
		CustomerID:     d.CustomerID,
		CustomerName:   d.CustomerName,
		Value:          d.Value.StringFixed(2),
		FormattedValue: collection.FormatBRL(d.Value),
		Date:           d.Date.String(),
		DueDate:        d.DueDate.String(),
		Status:         string(d.Status),
		Overdue:        d.IsOverdue(today),
		PaymentMethod:  d.PaymentMethod,
		Observations:   d.Observations,
		CreatedAt:      d.CreatedAt,
	}
}

func NewDebtResponses(debts []*debt.Debt, today debt.Date) []DebtResponse {
	resp := make([]DebtResponse, len(debts))
	for i, d := range debts {
		resp[i] = NewDebtResponse(d, today)
	}
	return resp
}

type DebtListResponse struct {
	Filter         string         `json:"filter"`
	Count          int            `json:"count"`
	Total          string         `json:"total"`
	FormattedTotal string         `json:"formattedTotal"`
	Items          []DebtResponse `json:"items"`
}

func NewDebtListResponse(f debt.Filter, items []*debt.Debt, total decimal.Decimal, today debt.Date) DebtListResponse {
	return DebtListResponse{
		Filter:         string(f),
		Count:          len(items),
		Total:          total.StringFixed(2),
		FormattedTotal: collection.FormatBRL(total),
		Items:          NewDebtResponses(items, today),
	}
}

type PendingCustomersResponse struct {
	CustomerIDs []string `json:"customerIds"`
}

type CollectionMessageResponse struct {
	DebtID       string `json:"debtId"`
	Message      string `json:"message"`
	Source       string `json:"source"`
	WhatsAppLink string `json:"whatsappLink,omitempty"`
}
