package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Job is a billable unit of work under exactly one contract. Paid is
// tri-state in storage (NULL, false, true); NULL and false both mean
// unpaid. PaymentDate is set exactly once, when Paid flips to true.
type Job struct {
	ID          uuid.UUID       `json:"id"`
	ContractID  uuid.UUID       `json:"contractId"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Paid        *bool           `json:"paid"`
	PaymentDate *time.Time      `json:"paymentDate"`
}

func (j Job) IsPaid() bool {
	return j.Paid != nil && *j.Paid
}

// JobDetail is a job joined with its owning contract and the
// contract's two profiles, as loaded by the party-scoped lookup.
type JobDetail struct {
	Job        Job
	Contract   Contract
	Client     Profile
	Contractor Profile
}
