package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adilet/gigpay-ledger/internal/model"
)

// Store is the ledger persistence boundary. Visibility of contracts
// and jobs is authorization: every read is scoped by the calling
// party's id inside the query predicate, so a row the caller may not
// see behaves exactly like a row that does not exist.
type Store interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	GetContractForParty(ctx context.Context, contractID, partyID uuid.UUID) (*model.Contract, error)
	ListActiveContracts(ctx context.Context, partyID uuid.UUID) ([]model.Contract, error)
	ListUnpaidJobs(ctx context.Context, partyID uuid.UUID) ([]model.Job, error)
	GetJobDetailForParty(ctx context.Context, jobID, partyID uuid.UUID) (*model.JobDetail, error)

	// InTx runs fn against a transaction-scoped view of the store.
	// Either every mutation made through the Tx commits, or none do.
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the store inside an open transaction. Row reads take locks so
// that concurrent money movements against the same rows serialize.
type Tx interface {
	JobDetailForUpdate(ctx context.Context, jobID, partyID uuid.UUID) (*model.JobDetail, error)
	ProfileForUpdate(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	MarkJobPaid(ctx context.Context, jobID uuid.UUID, paymentDate time.Time) error
	OutstandingForClient(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error)
}
