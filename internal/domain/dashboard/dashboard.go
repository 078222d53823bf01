package dashboard

import (
	"debt-ledger/internal/domain/customer"
	"debt-ledger/internal/domain/debt"
	"sort"

	"github.com/shopspring/decimal"
)

const RecentLimit = 5

type Bucket struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type Summary struct {
	CustomerCount int          `json:"customerCount"`
	Pending       Bucket       `json:"pending"`
	Paid          Bucket       `json:"paid"`
	OverdueCount  int          `json:"overdueCount"`
	Recent        []*debt.Debt `json:"recent"`
}

// Summarize is recomputed on every call; nothing is cached.
func Summarize(customers []*customer.Customer, debts []*debt.Debt, today debt.Date) Summary {
	pending := debt.Apply(debts, debt.FilterPending, today)
	paid := debt.Apply(debts, debt.FilterPaid, today)

	return Summary{
		CustomerCount: len(customers),
		Pending:       Bucket{Count: len(pending), Total: debt.SumValue(pending)},
		Paid:          Bucket{Count: len(paid), Total: debt.SumValue(paid)},
		OverdueCount:  len(debt.Apply(debts, debt.FilterOverdue, today)),
		Recent:        Recent(debts, RecentLimit),
	}
}

// Recent returns up to limit debts ordered by creation time, newest first.
func Recent(debts []*debt.Debt, limit int) []*debt.Debt {
	sorted := make([]*debt.Debt, len(debts))
	copy(sorted, debts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
