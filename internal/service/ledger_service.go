package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adilet/gigpay-ledger/internal/config"
	"github.com/adilet/gigpay-ledger/internal/model"
	"github.com/adilet/gigpay-ledger/internal/repository"
)

type ReceiptGenerator interface {
	Generate(detail model.JobDetail) ([]byte, error)
}

type LedgerService struct {
	store          repository.Store
	engine         *BalanceEngine
	receipts       ReceiptGenerator
	depositCapRate decimal.Decimal
}

type ReceiptResult struct {
	FileName string
	Content  []byte
}

func NewLedgerService(store repository.Store, engine *BalanceEngine, receipts ReceiptGenerator, cfg *config.Config) *LedgerService {
	return &LedgerService{
		store:          store,
		engine:         engine,
		receipts:       receipts,
		depositCapRate: decimal.NewFromFloat(cfg.Billing.DepositCapRate),
	}
}

// GetContract returns the contract only when the caller is one of its
// parties; anything else reads as not found.
func (s *LedgerService) GetContract(ctx context.Context, caller model.Profile, contractID uuid.UUID) (*model.Contract, error) {
	contract, err := s.store.GetContractForParty(ctx, contractID, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load contract: %w", err)
	}
	return contract, nil
}

func (s *LedgerService) ListActiveContracts(ctx context.Context, caller model.Profile) ([]model.Contract, error) {
	contracts, err := s.store.ListActiveContracts(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	if contracts == nil {
		contracts = []model.Contract{}
	}
	return contracts, nil
}

func (s *LedgerService) ListUnpaidJobs(ctx context.Context, caller model.Profile) ([]model.Job, error) {
	jobs, err := s.store.ListUnpaidJobs(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list unpaid jobs: %w", err)
	}
	if jobs == nil {
		jobs = []model.Job{}
	}
	return jobs, nil
}

// PayJob moves the job's price from the client's balance and marks the
// job paid, as one transaction. Job state, contract state, and funds
// sufficiency are all judged against rows locked inside that
// transaction, so a concurrent pay for the same job lands on
// ErrAlreadyPaid and a concurrent pay against the same balance sees
// the post-debit value.
func (s *LedgerService) PayJob(ctx context.Context, caller model.Profile, jobID uuid.UUID) error {
	if !caller.IsClient() {
		return ErrRoleNotAllowed
	}

	return s.store.InTx(ctx, func(tx repository.Tx) error {
		detail, err := tx.JobDetailForUpdate(ctx, jobID, caller.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load job: %w", err)
		}

		if detail.Contract.Status != model.ContractStatusInProgress {
			return ErrContractNotActive
		}
		if detail.Job.IsPaid() {
			return ErrAlreadyPaid
		}

		if err := s.engine.Debit(ctx, tx, caller.ID, detail.Job.Price); err != nil {
			return err
		}
		if err := tx.MarkJobPaid(ctx, jobID, time.Now().UTC()); err != nil {
			return fmt.Errorf("mark job paid: %w", err)
		}
		return nil
	})
}

// Deposit credits the target profile, clamped by the deposit cap.
// Returns the amount actually credited.
func (s *LedgerService) Deposit(ctx context.Context, targetID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: deposit amount must be positive", ErrInvalidInput)
	}

	var credited decimal.Decimal
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		var err error
		credited, err = s.engine.CappedDeposit(ctx, tx, targetID, amount, s.depositCapRate)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return credited, nil
}

// GenerateReceipt renders a payment receipt PDF for a paid job the
// caller is a party to.
func (s *LedgerService) GenerateReceipt(ctx context.Context, caller model.Profile, jobID uuid.UUID) (*ReceiptResult, error) {
	detail, err := s.store.GetJobDetailForParty(ctx, jobID, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load job: %w", err)
	}
	if !detail.Job.IsPaid() {
		return nil, fmt.Errorf("%w: job is not paid", ErrInvalidInput)
	}

	content, err := s.receipts.Generate(*detail)
	if err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}

	return &ReceiptResult{
		FileName: fmt.Sprintf("receipt-%s.pdf", detail.Job.ID),
		Content:  content,
	}, nil
}
