package dto

import (
	"debt-ledger/internal/domain/collection"
	"debt-ledger/internal/domain/customer"
	"time"
)

type CustomerRequest struct {
	Name         string `json:"name" example:"Ana Souza"`
	Document     string `json:"document,omitempty" example:"123.456.789-00"`
	Phone        string `json:"phone" example:"(11) 3333-4444"`
	WhatsApp     string `json:"whatsapp" example:"(11) 98888-7777"`
	Address      string `json:"address,omitempty" example:"Rua das Flores, 10"`
	Observations string `json:"observations,omitempty"`
}

func (r CustomerRequest) Fields() customer.Fields {
	return customer.Fields{
		Name:         r.Name,
		Document:     r.Document,
		Phone:        r.Phone,
		WhatsApp:     r.WhatsApp,
		Address:      r.Address,
		Observations: r.Observations,
	}
}

type CustomerResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Document       string    `json:"document,omitempty"`
	Phone          string    `json:"phone"`
	WhatsApp       string    `json:"whatsapp"`
	Address        string    `json:"address,omitempty"`
	Observations   string    `json:"observations,omitempty"`
	HasPendingDebt bool      `json:"hasPendingDebt"`
	CreatedAt      time.Time `json:"createdAt"`
}

func NewCustomerResponse(c *customer.Customer, hasPendingDebt bool) CustomerResponse {
	if c == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Document:       c.Document,
		Phone:          c.Phone,
		WhatsApp:       c.WhatsApp,
		Address:        c.Address,
		Observations:   c.Observations,
		HasPendingDebt: hasPendingDebt,
		CreatedAt:      c.CreatedAt,
	}
}

type WhatsAppLinkResponse struct {
	CustomerID string `json:"customerId"`
	Link       string `json:"link"`
}

func NewWhatsAppLinkResponse(c *customer.Customer) WhatsAppLinkResponse {
	return WhatsAppLinkResponse{CustomerID: c.ID, Link: collection.WhatsAppChatLink(c.WhatsApp)}
}
