package dto

import (
	"debt-ledger/internal/domain/collection"
	"debt-ledger/internal/domain/dashboard"
	"debt-ledger/internal/domain/debt"
)

type BucketResponse struct {
	Count          int    `json:"count"`
	Total          string `json:"total"`
	FormattedTotal string `json:"formattedTotal"`
}

type DashboardResponse struct {
	CustomerCount int            `json:"customerCount"`
	Pending       BucketResponse `json:"pending"`
	Paid          BucketResponse `json:"paid"`
	OverdueCount  int            `json:"overdueCount"`
	Recent        []DebtResponse `json:"recent"`
}

func NewDashboardResponse(s dashboard.Summary, today debt.Date) DashboardResponse {
	return DashboardResponse{
		CustomerCount: s.CustomerCount,
		Pending:       newBucketResponse(s.Pending),
		Paid:          newBucketResponse(s.Paid),
		OverdueCount:  s.OverdueCount,
		Recent:        NewDebtResponses(s.Recent, today),
	}
}

func newBucketResponse(b dashboard.Bucket) BucketResponse {
	return BucketResponse{
		Count:          b.Count,
		Total:          b.Total.StringFixed(2),
		FormattedTotal: collection.FormatBRL(b.Total),
	}
}

type CalculatorRequest struct {
	Keys []string `json:"keys" example:"7,+,3,="`
}

type CalculatorResponse struct {
	Display    string `json:"display"`
	Expression string `json:"expression,omitempty"`
}
