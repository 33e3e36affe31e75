package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfessionTotal is the best-profession aggregate: the profession
// whose paid jobs earned the most inside a date range.
type ProfessionTotal struct {
	Profession string          `json:"profession"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`
}

// ClientTotal is one row of the best-clients aggregate.
type ClientTotal struct {
	ID       uuid.UUID       `json:"id"`
	FullName string          `json:"fullName"`
	Paid     decimal.Decimal `json:"paid"`
}

// ClientsReport carries the best-clients rows together with the
// requested period, for the spreadsheet export.
type ClientsReport struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Clients     []ClientTotal
}
