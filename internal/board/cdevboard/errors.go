package cdevboard

import "errors"

// Hardware initialization errors
var (
	ErrChipOpenFailed    = errors.New("failed to open GPIO chip")
	ErrLineRequestFailed = errors.New("failed to request GPIO line")
)

// Waveform errors
var (
	ErrInvalidFrequency = errors.New("frequency must be greater than 0")
	ErrInvalidDutyCycle = errors.New("duty cycle must be between 0 and 1")
)
