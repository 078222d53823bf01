package debt

import (
	"debt-ledger/internal/pkg/apperrors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "Pendente"
	StatusPaid    Status = "Paga"
)

// ParseStatus accepts the stored labels as well as their English names. Empty means pending.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "pendente", "pending":
		return StatusPending, nil
	case "paga", "paid":
		return StatusPaid, nil
	default:
		return "", apperrors.NewValidationError("status", "status must be Pendente or Paga")
	}
}

type Debt struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	Value         decimal.Decimal `json:"value"`
	Date          Date            `json:"date"`
	DueDate       Date            `json:"dueDate"`
	Status        Status          `json:"status"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Observations  string          `json:"observations,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (d *Debt) IsPending() bool {
	return d.Status == StatusPending
}

func (d *Debt) IsPaid() bool {
	return d.Status == StatusPaid
}

// IsOverdue reports a pending debt whose due date is strictly before today.
// A debt due today is not overdue.
func (d *Debt) IsOverdue(today Date) bool {
	return d.IsPending() && d.DueDate.Before(today)
}

func (d *Debt) Clone() *Debt {
	if d == nil {
		return nil
	}
	cp := *d
	return &cp
}

// Fields is the raw user input for a debt, before parsing.
type Fields struct {
	CustomerID    string
	Value         string
	Date          string
	DueDate       string
	Status        string
	PaymentMethod string
	Observations  string
}

// Build validates the input and returns a debt without identity, customer name or timestamp.
func (f Fields) Build() (*Debt, error) {
	customerID := strings.TrimSpace(f.CustomerID)
	if customerID == "" {
		return nil, apperrors.NewValidationError("customerId", "a customer must be selected")
	}

	rawValue := strings.TrimSpace(f.Value)
	if rawValue == "" {
		return nil, apperrors.NewValidationError("value", "value is required")
	}
	value, err := ParseValue(rawValue)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(f.Date) == "" {
		return nil, apperrors.NewValidationError("date", "date is required")
	}
	date, err := ParseDate(f.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("date", err.Error())
	}

	if strings.TrimSpace(f.DueDate) == "" {
		return nil, apperrors.NewValidationError("dueDate", "due date is required")
	}
	dueDate, err := ParseDate(f.DueDate)
	if err != nil {
		return nil, apperrors.NewValidationError("dueDate", err.Error())
	}

	status, err := ParseStatus(f.Status)
	if err != nil {
		return nil, err
	}

	return &Debt{
		CustomerID:    customerID,
		Value:         value,
		Date:          date,
		DueDate:       dueDate,
		Status:        status,
		PaymentMethod: strings.TrimSpace(f.PaymentMethod),
		Observations:  strings.TrimSpace(f.Observations),
	}, nil
}

// valuePattern allows plain digits with an optional fraction of up to two
// places, separated by a comma or a dot. Exponents are refused so a short
// input cannot expand into a huge number.
var valuePattern = regexp.MustCompile(`^[0-9]{1,13}(?:[.,][0-9]{1,2})?$`)

// ParseValue reads a non-negative amount in reais. A comma is accepted as the decimal separator.
func ParseValue(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "-") {
		return decimal.Zero, apperrors.NewValidationError("value", "value cannot be negative")
	}
	if !valuePattern.MatchString(raw) {
		return decimal.Zero, apperrors.NewValidationError("value", "value must be a number with at most 13 digits and 2 decimal places")
	}
	value, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil {
		return decimal.Zero, apperrors.NewValidationError("value", "value must be a number")
	}
	return value, nil
}
