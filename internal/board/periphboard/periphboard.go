package periphboard

import (
	"fmt"
	"log"
	"sync"

	"github.com/biotinker/solenoid-ac/internal/board"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

type (
	// PeriphPin drives a single periph.io pin. PWM uses the pin's
	// hardware PWM support where available; periph falls back to
	// toggling in software for pins without it.
	PeriphPin struct {
		pin   gpio.PinIO
		mutex sync.Mutex
		freq  physic.Frequency
	}

	// PeriphBoard resolves pins through the periph.io host registry.
	PeriphBoard struct {
		mutex sync.Mutex
		pins  map[string]*PeriphPin
	}
)

const defaultFrequency = 60 * physic.Hertz

func NewPeriphBoard() (*PeriphBoard, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHostInitFailed, err)
	}

	return &PeriphBoard{
		pins: make(map[string]*PeriphPin),
	}, nil
}

func (b *PeriphBoard) GPIOPinByName(name string) (board.Pin, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if pin, ok := b.pins[name]; ok {
		return pin, nil
	}

	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("%w: %s", board.ErrPinNotFound, name)
	}

	p := &PeriphPin{pin: pin, freq: defaultFrequency}
	b.pins[name] = p
	return p, nil
}

func (b *PeriphBoard) Close() error {
	log.Printf("closing periph board")
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, p := range b.pins {
		if err := p.Set(false); err != nil {
			log.Printf("failed to reset pin %s to low: %s", p.Name(), err)
		}
	}
	return nil
}

func (b *PeriphBoard) String() string {
	return "periph board"
}

func (p *PeriphPin) Set(high bool) error {
	level := gpio.Low
	if high {
		level = gpio.High
	}
	if err := p.pin.Out(level); err != nil {
		return fmt.Errorf("%w %s: %v", board.ErrPinWrite, p.Name(), err)
	}
	return nil
}

func (p *PeriphPin) SetPWM(duty float64) error {
	if duty < 0 || duty > 1 {
		return fmt.Errorf("%w: %f", board.ErrInvalidDutyCycle, duty)
	}

	// Duty 0 is a plain low output; this also releases the PWM
	// peripheral on hosts where PWM claims a clock.
	if duty == 0 {
		return p.Set(false)
	}

	p.mutex.Lock()
	freq := p.freq
	p.mutex.Unlock()

	scaled := gpio.Duty(duty*float64(gpio.DutyMax) + 0.5)
	if err := p.pin.PWM(scaled, freq); err != nil {
		return fmt.Errorf("%w %s: %v", board.ErrPinWrite, p.Name(), err)
	}
	return nil
}

func (p *PeriphPin) SetPWMFrequency(hz float64) error {
	if hz <= 0 {
		return fmt.Errorf("%w: %f", board.ErrInvalidFrequency, hz)
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.freq = physic.Frequency(hz * float64(physic.Hertz))
	return nil
}

func (p *PeriphPin) Name() string {
	return p.pin.Name()
}

func (p *PeriphPin) String() string {
	return p.pin.Name()
}
