package domain

import "errors"

var (
	// ErrBankNotFound indicates the question bank for a section code could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrEntryNotFound indicates a submitted entry ID is not part of its bank.
	ErrEntryNotFound = errors.New("bank entry not found")
	// ErrInvalidBank is returned when bank content breaks its structural rules.
	ErrInvalidBank = errors.New("invalid question bank")
)
