package event

import (
	"time"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

type CustomerPayload struct {
	CustomerID string    `json:"customerId"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	WhatsApp   string    `json:"whatsapp,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

type CustomerEvent struct {
	Action    Action          `json:"action"`
	OwnerID   string          `json:"ownerId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   CustomerPayload `json:"payload"`
}

func (e CustomerEvent) RoutingKey() string {
	return "customer." + string(e.Action)
}

type DebtPayload struct {
	DebtID       string    `json:"debtId"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName,omitempty"`
	Value        string    `json:"value,omitempty"`
	DueDate      string    `json:"dueDate,omitempty"`
	Status       string    `json:"status,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

type DebtEvent struct {
	Action    Action      `json:"action"`
	OwnerID   string      `json:"ownerId"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   DebtPayload `json:"payload"`
}

func (e DebtEvent) RoutingKey() string {
	return "debt." + string(e.Action)
}
