package debt

import (
	"debt-ledger/internal/pkg/apperrors"
	"strings"

	"github.com/shopspring/decimal"
)

type Filter string

const (
	FilterAll     Filter = "all"
	FilterPending Filter = "pending"
	FilterPaid    Filter = "paid"
	FilterOverdue Filter = "overdue"
)

func ParseFilter(raw string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterPending, FilterPaid, FilterOverdue:
		return f, nil
	default:
		return "", apperrors.NewValidationError("filter", "filter must be one of all, pending, paid, overdue")
	}
}

func (f Filter) Match(d *Debt, today Date) bool {
	switch f {
	case FilterPending:
		return d.IsPending()
	case FilterPaid:
		return d.IsPaid()
	case FilterOverdue:
		return d.IsOverdue(today)
	default:
		return true
	}
}

// Apply keeps the order of debts.
func Apply(debts []*Debt, f Filter, today Date) []*Debt {
	out := make([]*Debt, 0, len(debts))
	for _, d := range debts {
		if f.Match(d, today) {
			out = append(out, d)
		}
	}
	return out
}

func SumValue(debts []*Debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		total = total.Add(d.Value)
	}
	return total
}

// PendingFor returns the pending debt of customerID, ignoring the debt with id excludeID.
func PendingFor(debts []*Debt, customerID, excludeID string) *Debt {
	for _, d := range debts {
		if d.CustomerID == customerID && d.IsPending() && d.ID != excludeID {
			return d
		}
	}
	return nil
}

func PendingCustomerIDs(debts []*Debt) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, d := range debts {
		if d.IsPending() {
			ids[d.CustomerID] = struct{}{}
		}
	}
	return ids
}
