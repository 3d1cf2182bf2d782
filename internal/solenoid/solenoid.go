package solenoid

import (
	"fmt"
	"log"
	"sync"

	"github.com/biotinker/solenoid-ac/internal/board"
)

// Solenoid is a two-position switch over an AC solenoid. Position 0 is
// off (all outputs low), position 1 is on (the variant-specific "on"
// waveform). All position changes are serialized; a failed hardware
// write leaves the reported position unchanged.
type Solenoid struct {
	mutex    sync.Mutex
	drive    driver
	position int
	closed   bool
}

// driver translates the logical on/off state into hardware writes for
// one wiring variant.
type driver interface {
	on() error
	off() error
	variant() Variant
}

// NumPositions is the number of positions a solenoid switch has.
const NumPositions = 2

// New creates a Solenoid on the given board. The wiring variant is
// selected by the config (see Config). The outputs are forced low
// before New returns, so a new solenoid always starts at position 0.
func New(b board.Board, cfg *Config) (*Solenoid, error) {
	variant, err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	var drive driver
	switch variant {
	case VariantAlternating:
		pin1, err := b.GPIOPinByName(cfg.Pin1)
		if err != nil {
			return nil, fmt.Errorf("failed to get pin1: %w", err)
		}
		pin2, err := b.GPIOPinByName(cfg.Pin2)
		if err != nil {
			return nil, fmt.Errorf("failed to get pin2: %w", err)
		}
		alt, err := NewAlternator(pin1, pin2, cfg.Frequency())
		if err != nil {
			return nil, err
		}
		drive = &alternatingDriver{alt: alt}
	case VariantPWM:
		control, err := b.GPIOPinByName(cfg.ControlPin)
		if err != nil {
			return nil, fmt.Errorf("failed to get control pin: %w", err)
		}
		pwm, err := b.GPIOPinByName(cfg.PWMPin)
		if err != nil {
			return nil, fmt.Errorf("failed to get pwm pin: %w", err)
		}
		drive = &pwmDriver{control: control, pwm: pwm, frequency: cfg.Frequency()}
	}

	s := &Solenoid{drive: drive}
	if err := s.drive.off(); err != nil {
		return nil, fmt.Errorf("failed to initialize outputs: %w", err)
	}

	return s, nil
}

// SetPosition moves the switch to position p (0 = off, 1 = on).
// Re-asserting the current position is not an error. The stored
// position is updated only after the hardware writes succeed.
func (s *Solenoid) SetPosition(p int) error {
	if p != 0 && p != 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPosition, p)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return ErrClosed
	}

	var err error
	if p == 1 {
		err = s.drive.on()
	} else {
		err = s.drive.off()
	}
	if err != nil {
		return err
	}

	s.position = p
	return nil
}

// GetPosition returns the stored position. It never fails and has no
// hardware side effects.
func (s *Solenoid) GetPosition() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.position
}

// GetNumberOfPositions returns the number of switch positions (2).
func (s *Solenoid) GetNumberOfPositions() int {
	return NumPositions
}

// Variant returns the wiring variant this solenoid was configured with.
func (s *Solenoid) Variant() Variant {
	return s.drive.variant()
}

// Close forces all outputs low regardless of the stored position and
// stops any waveform goroutine before returning. It is safe to call
// repeatedly; each call re-asserts the off state so the solenoid is
// never left energized.
func (s *Solenoid) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.closed = true

	if err := s.drive.off(); err != nil {
		return fmt.Errorf("failed to force outputs low on close: %w", err)
	}
	s.position = 0
	return nil
}

func (s *Solenoid) String() string {
	return fmt.Sprintf("%s solenoid switch", s.drive.variant())
}

// alternatingDriver implements the two-digital-pin variant: "on" is a
// running alternator, "off" is a stopped one.
type alternatingDriver struct {
	alt *Alternator
}

func (d *alternatingDriver) on() error {
	if d.alt.IsRunning() {
		return nil
	}
	return d.alt.Start()
}

func (d *alternatingDriver) off() error {
	err := d.alt.Stop()
	if err == ErrNotRunning {
		// Nothing was running; re-assert the low state directly.
		for _, pin := range d.alt.pins {
			if err := pin.Set(false); err != nil {
				return err
			}
		}
		return nil
	}
	return err
}

func (d *alternatingDriver) variant() Variant { return VariantAlternating }

// pwmDriver implements the control-plus-PWM variant: "on" is control
// high with the PWM pin free-running at 50% duty, "off" is control low
// with 0% duty. No goroutine is needed; the PWM peripheral holds the
// waveform.
type pwmDriver struct {
	control   board.Pin
	pwm       board.Pin
	frequency float64
}

func (d *pwmDriver) on() error {
	if err := d.control.Set(true); err != nil {
		return err
	}
	if err := d.pwm.SetPWMFrequency(d.frequency); err != nil {
		return err
	}
	if err := d.pwm.SetPWM(0.5); err != nil {
		// Do not leave the control pin energized behind a dead PWM
		// output.
		if offErr := d.control.Set(false); offErr != nil {
			log.Printf("failed to lower control pin %s after pwm error: %v", d.control.Name(), offErr)
		}
		return err
	}
	return nil
}

func (d *pwmDriver) off() error {
	if err := d.control.Set(false); err != nil {
		return err
	}
	return d.pwm.SetPWM(0)
}

func (d *pwmDriver) variant() Variant { return VariantPWM }
