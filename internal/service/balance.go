package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adilet/gigpay-ledger/internal/repository"
)

// BalanceEngine applies the only mutations a profile balance ever
// sees. Every operation runs against an open store transaction and
// re-reads the balance under a row lock, so concurrent movements
// against the same profile serialize and sufficiency is always
// checked against the committed value, never a caller-supplied one.
type BalanceEngine struct{}

func NewBalanceEngine() *BalanceEngine {
	return &BalanceEngine{}
}

// Debit subtracts amount from the profile's balance. Fails with
// ErrInsufficientFunds when the freshly-read balance cannot cover it.
func (e *BalanceEngine) Debit(ctx context.Context, tx repository.Tx, profileID uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: debit amount must be positive", ErrInvalidInput)
	}

	profile, err := tx.ProfileForUpdate(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load profile: %w", err)
	}
	if profile.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	return tx.UpdateBalance(ctx, profileID, profile.Balance.Sub(amount))
}

// Credit adds amount to the profile's balance.
func (e *BalanceEngine) Credit(ctx context.Context, tx repository.Tx, profileID uuid.UUID, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: credit amount must not be negative", ErrInvalidInput)
	}

	profile, err := tx.ProfileForUpdate(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load profile: %w", err)
	}

	return tx.UpdateBalance(ctx, profileID, profile.Balance.Add(amount))
}

// CappedDeposit credits at most rate × the client's outstanding unpaid
// job total, silently clamping the requested amount. An outstanding of
// zero waives the cap entirely: a client with no unpaid jobs may
// deposit any amount. The outstanding sum is read inside the same
// transaction as the credit so concurrent job creation or payment
// cannot skew the cap. Returns the amount actually credited.
func (e *BalanceEngine) CappedDeposit(ctx context.Context, tx repository.Tx, clientID uuid.UUID, amount, rate decimal.Decimal) (decimal.Decimal, error) {
	outstanding, err := tx.OutstandingForClient(ctx, clientID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum outstanding jobs: %w", err)
	}

	credited := amount
	if outstanding.IsPositive() {
		// truncated to cents so the credit never exceeds the cap
		ceiling := outstanding.Mul(rate).Truncate(2)
		if credited.GreaterThan(ceiling) {
			credited = ceiling
		}
	}

	if err := e.Credit(ctx, tx, clientID, credited); err != nil {
		return decimal.Zero, err
	}
	return credited, nil
}
