package service

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrRoleNotAllowed    = errors.New("designed for clients only")
	ErrContractNotActive = errors.New("contract is not active")
	ErrAlreadyPaid       = errors.New("job is already paid")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidInput      = errors.New("invalid input")
)
