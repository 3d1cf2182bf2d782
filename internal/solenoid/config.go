package solenoid

// Variant selects the hardware wiring strategy for a solenoid.
type Variant int

const (
	// VariantAlternating drives two digital pins alternately at the
	// configured frequency.
	VariantAlternating Variant = iota
	// VariantPWM holds a control pin high and runs a PWM pin at 50%
	// duty.
	VariantPWM
)

const DefaultFrequency = 60

// Config describes the pins a solenoid is wired to. The variant is
// implied by which keys are present: pin1/pin2 select the alternating
// variant, control-pin/pwm-pin select the PWM variant.
type Config struct {
	Pin1         string  `mapstructure:"pin1"`
	Pin2         string  `mapstructure:"pin2"`
	ControlPin   string  `mapstructure:"control-pin"`
	PWMPin       string  `mapstructure:"pwm-pin"`
	PWMFrequency float64 `mapstructure:"pwm-frequency"`
}

// Validate checks the pin configuration and returns the selected
// variant.
func (c *Config) Validate() (Variant, error) {
	hasAlternating := c.Pin1 != "" || c.Pin2 != ""
	hasPWM := c.ControlPin != "" || c.PWMPin != ""

	switch {
	case hasAlternating && hasPWM:
		return 0, ErrAmbiguousVariant
	case !hasAlternating && !hasPWM:
		return 0, ErrMissingPins
	}

	// Zero means "use the default"; only a negative value is invalid.
	if c.PWMFrequency < 0 {
		return 0, ErrInvalidFrequency
	}

	if hasAlternating {
		if c.Pin1 == "" || c.Pin2 == "" {
			return 0, ErrMissingPin1
		}
		return VariantAlternating, nil
	}

	if c.ControlPin == "" || c.PWMPin == "" {
		return 0, ErrMissingPWMPin
	}
	return VariantPWM, nil
}

// Frequency returns the configured PWM frequency, or the 60 Hz default.
func (c *Config) Frequency() float64 {
	if c.PWMFrequency == 0 {
		return DefaultFrequency
	}
	return c.PWMFrequency
}

func (v Variant) String() string {
	switch v {
	case VariantAlternating:
		return "alternating"
	case VariantPWM:
		return "pwm"
	default:
		return "unknown"
	}
}
