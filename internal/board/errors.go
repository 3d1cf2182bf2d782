package board

import "errors"

// Pin lookup errors
var (
	ErrPinNotFound = errors.New("failed to find pin")
	ErrBoardClosed = errors.New("board is closed")
)

// Pin operation errors
var (
	ErrInvalidDutyCycle = errors.New("duty cycle must be between 0 and 1")
	ErrInvalidFrequency = errors.New("frequency must be greater than 0")
	ErrPinWrite         = errors.New("failed to write pin")
)
