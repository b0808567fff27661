package service

import "errors"

var (
	// ErrClientNotFound is returned when no historical record matches the target client.
	ErrClientNotFound = errors.New("no information found for client")

	// ErrDataInconsistency is returned when bureau and no-hit scores are both nonzero.
	ErrDataInconsistency = errors.New("bureau and no-hit scores are both set")

	// ErrInvalidInput is returned for inputs a pipeline cannot score.
	ErrInvalidInput = errors.New("invalid input")
)
