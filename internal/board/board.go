package board

type (
	// Pin is a single hardware output channel. Duty cycles are
	// expressed as a fraction in [0, 1]; SetPWM(0) must leave the
	// output electrically low.
	Pin interface {
		Set(high bool) error
		SetPWM(duty float64) error
		SetPWMFrequency(hz float64) error
		Name() string
	}

	// Board provides named access to output pins. A Board owns its
	// pins; closing the board releases them.
	Board interface {
		GPIOPinByName(name string) (Pin, error)
		Close() error
	}
)
