package solenoid

import "errors"

// Position errors
var (
	ErrInvalidPosition = errors.New("position must be 0 or 1")
	ErrClosed          = errors.New("solenoid is closed")
)

// Configuration errors
var (
	ErrMissingPins      = errors.New("pin configuration is required")
	ErrAmbiguousVariant = errors.New("configure either pin1/pin2 or control-pin/pwm-pin, not both")
	ErrMissingPin1      = errors.New("'pin1' and 'pin2' must be configured together")
	ErrMissingPWMPin    = errors.New("'control-pin' and 'pwm-pin' must be configured together")
	ErrInvalidFrequency = errors.New("'pwm-frequency' must be greater than 0")
)

// Waveform errors
var (
	ErrAlreadyRunning = errors.New("alternator is already running")
	ErrNotRunning     = errors.New("alternator is not running")
)
