package ledger

import "errors"

var (
	ErrGameNotFound        = errors.New("game not found")
	ErrGameClosed          = errors.New("cannot bet on completed games")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDuplicateWager      = errors.New("pending prediction already exists for game")
)
