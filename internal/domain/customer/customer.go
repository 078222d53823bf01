package customer

import (
	"debt-ledger/internal/pkg/apperrors"
	"strings"
	"time"
)

type Customer struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Document     string    `json:"document,omitempty"`
	Phone        string    `json:"phone"`
	WhatsApp     string    `json:"whatsapp"`
	Address      string    `json:"address,omitempty"`
	Observations string    `json:"observations,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Fields is the user-editable part of a customer record.
type Fields struct {
	Name         string
	Document     string
	Phone        string
	WhatsApp     string
	Address      string
	Observations string
}

func (f Fields) Normalize() Fields {
	return Fields{
		Name:         strings.TrimSpace(f.Name),
		Document:     strings.TrimSpace(f.Document),
		Phone:        strings.TrimSpace(f.Phone),
		WhatsApp:     strings.TrimSpace(f.WhatsApp),
		Address:      strings.TrimSpace(f.Address),
		Observations: strings.TrimSpace(f.Observations),
	}
}

// Validate expects normalized fields.
func (f Fields) Validate() error {
	if f.Name == "" {
		return apperrors.NewValidationError("name", "customer name cannot be empty")
	}
	if f.Phone == "" {
		return apperrors.NewValidationError("phone", "customer phone cannot be empty")
	}
	if f.WhatsApp == "" {
		return apperrors.NewValidationError("whatsapp", "customer whatsapp number cannot be empty")
	}
	return nil
}

func NewCustomer(f Fields) *Customer {
	c := &Customer{}
	c.Apply(f)
	return c
}

func (c *Customer) Apply(f Fields) {
	c.Name = f.Name
	c.Document = f.Document
	c.Phone = f.Phone
	c.WhatsApp = f.WhatsApp
	c.Address = f.Address
	c.Observations = f.Observations
}

func (c *Customer) Fields() Fields {
	return Fields{
		Name:         c.Name,
		Document:     c.Document,
		Phone:        c.Phone,
		WhatsApp:     c.WhatsApp,
		Address:      c.Address,
		Observations: c.Observations,
	}
}

func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Matches reports whether term occurs, ignoring case, in the name, phone or whatsapp number.
// The term is used as typed, so spaces count. An empty term matches every customer.
func (c *Customer) Matches(term string) bool {
	term = strings.ToLower(term)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Phone), term) ||
		strings.Contains(strings.ToLower(c.WhatsApp), term)
}

func Search(customers []*Customer, term string) []*Customer {
	matches := make([]*Customer, 0, len(customers))
	for _, c := range customers {
		if c.Matches(term) {
			matches = append(matches, c)
		}
	}
	return matches
}
