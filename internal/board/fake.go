package board

import (
	"fmt"
	"sync"
	"time"
)

// PinWrite records a single write to a fake pin.
type PinWrite struct {
	High bool
	Duty float64
	PWM  bool // true if this write came from SetPWM
	At   time.Time
}

// FakePin is an in-memory Pin implementation for tests and dry runs.
// It records every write so tests can inspect the waveform a caller
// produced.
type FakePin struct {
	name    string
	mutex   sync.RWMutex
	high    bool
	duty    float64
	freq    float64
	writes  []PinWrite
	failSet error
	failPWM error
}

// FakeBoard is an in-memory Board implementation. Pins are created on
// first lookup and persist for the life of the board.
type FakeBoard struct {
	mutex  sync.Mutex
	pins   map[string]*FakePin
	closed bool
}

func NewFakeBoard() *FakeBoard {
	return &FakeBoard{
		pins: make(map[string]*FakePin),
	}
}

func (b *FakeBoard) GPIOPinByName(name string) (Pin, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.closed {
		return nil, ErrBoardClosed
	}

	pin, ok := b.pins[name]
	if !ok {
		pin = &FakePin{name: name, freq: 60}
		b.pins[name] = pin
	}
	return pin, nil
}

// Pin returns the named fake pin without creating it, for test
// inspection.
func (b *FakeBoard) Pin(name string) (*FakePin, bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	pin, ok := b.pins[name]
	return pin, ok
}

func (b *FakeBoard) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.closed = true
	return nil
}

func (b *FakeBoard) String() string {
	return fmt.Sprintf("fake board with %d pins", len(b.pins))
}

func (p *FakePin) Set(high bool) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.failSet != nil {
		return p.failSet
	}

	p.high = high
	if !high {
		p.duty = 0
	} else {
		p.duty = 1
	}
	p.writes = append(p.writes, PinWrite{High: high, Duty: p.duty, At: time.Now()})
	return nil
}

func (p *FakePin) SetPWM(duty float64) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.failPWM != nil {
		return p.failPWM
	}
	if duty < 0 || duty > 1 {
		return fmt.Errorf("%w: %f", ErrInvalidDutyCycle, duty)
	}

	p.duty = duty
	p.high = duty > 0
	p.writes = append(p.writes, PinWrite{High: p.high, Duty: duty, PWM: true, At: time.Now()})
	return nil
}

func (p *FakePin) SetPWMFrequency(hz float64) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if hz <= 0 {
		return fmt.Errorf("%w: %f", ErrInvalidFrequency, hz)
	}
	p.freq = hz
	return nil
}

func (p *FakePin) Name() string {
	return p.name
}

func (p *FakePin) String() string {
	return fmt.Sprintf("fake:%s", p.name)
}

// IsHigh reports the current electrical state of the pin.
func (p *FakePin) IsHigh() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.high
}

// Duty reports the current duty cycle.
func (p *FakePin) Duty() float64 {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.duty
}

// Frequency reports the configured PWM frequency.
func (p *FakePin) Frequency() float64 {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.freq
}

// Writes returns a copy of the write history.
func (p *FakePin) Writes() []PinWrite {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	writes := make([]PinWrite, len(p.writes))
	copy(writes, p.writes)
	return writes
}

// FailWith makes subsequent Set and SetPWM calls return err. Pass nil
// to clear.
func (p *FakePin) FailWith(err error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.failSet = err
	p.failPWM = err
}
