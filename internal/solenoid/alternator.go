package solenoid

import (
	"log"
	"sync"
	"time"

	"github.com/biotinker/solenoid-ac/internal/board"
)

// Alternator drives two pins alternately: while it runs, exactly one
// pin is high at a time, each for half the waveform period. An AC
// solenoid wired across the pin pair sees an alternating signal at the
// configured frequency.
type Alternator struct {
	pins      [2]board.Pin
	frequency float64
	stopCh    chan struct{}
	doneCh    chan struct{}
	mutex     sync.RWMutex
	running   bool
}

// NewAlternator creates a new Alternator for the given pin pair and
// frequency in Hz.
func NewAlternator(pin1, pin2 board.Pin, frequency float64) (*Alternator, error) {
	if pin1 == nil || pin2 == nil {
		return nil, ErrMissingPin1
	}
	if frequency <= 0 {
		return nil, ErrInvalidFrequency
	}

	return &Alternator{
		pins:      [2]board.Pin{pin1, pin2},
		frequency: frequency,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}, nil
}

// Start begins alternating. The first pin goes high immediately.
func (a *Alternator) Start() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.running {
		return ErrAlreadyRunning
	}

	// Establish a known initial state before the loop takes over.
	if err := a.pins[1].Set(false); err != nil {
		return err
	}
	if err := a.pins[0].Set(true); err != nil {
		return err
	}

	a.running = true
	go a.alternateLoop()

	return nil
}

// Stop halts the alternation and forces both pins low. The waveform
// goroutine has exited by the time Stop returns; no further pin writes
// occur afterwards.
func (a *Alternator) Stop() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if !a.running {
		return ErrNotRunning
	}

	close(a.stopCh)
	<-a.doneCh // Wait for goroutine to finish

	a.running = false

	// Reset channels for potential restart
	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})

	for _, pin := range a.pins {
		if err := pin.Set(false); err != nil {
			return err
		}
	}

	return nil
}

// IsRunning returns true if the alternator is currently running.
func (a *Alternator) IsRunning() bool {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.running
}

// GetFrequency returns the waveform frequency in Hz.
func (a *Alternator) GetFrequency() float64 {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.frequency
}

// alternateLoop is the goroutine that handles the alternation. Each
// pin stays high for half the period: 1/120 s at the default 60 Hz.
func (a *Alternator) alternateLoop() {
	defer close(a.doneCh)

	halfPeriod := time.Duration(float64(time.Second) / (2 * a.frequency))
	clock := time.NewTicker(halfPeriod)
	defer clock.Stop()

	active := 0 // Start() left pins[0] high

	for {
		select {
		case <-a.stopCh:
			return
		case <-clock.C:
			// Drop the active pin before raising its partner so the
			// pair is never high simultaneously.
			if err := a.pins[active].Set(false); err != nil {
				log.Printf("alternator failed to lower pin %s: %v", a.pins[active].Name(), err)
				break
			}
			active = 1 - active
			if err := a.pins[active].Set(true); err != nil {
				log.Printf("alternator failed to raise pin %s: %v", a.pins[active].Name(), err)
				break
			}
		}
	}
}
