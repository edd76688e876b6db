package config

import "errors"

var (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfig indicates a field failed validation.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrMinTriggerBelowFee indicates a create_team trigger could not even pay for its asset definition.
	ErrMinTriggerBelowFee = errors.New("config: min trigger value must cover the define fee")

	// ErrBounceFeeTooLow indicates refunding a bounce would cost the pool more than the bounce keeps.
	ErrBounceFeeTooLow = errors.New("config: bounce fee must cover the payment fee of the refund")
)
