package cdevboard

import (
	"log"
	"sync"
	"time"
)

// SoftPWM toggles an output in software to approximate a PWM
// peripheral. The character-device GPIO interface exposes no hardware
// PWM, so pins that need a waveform run one of these.
type SoftPWM struct {
	set     func(high bool) error
	name    string
	mutex   sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewSoftPWM(name string, set func(high bool) error) *SoftPWM {
	return &SoftPWM{
		set:    set,
		name:   name,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Run starts the waveform, replacing any waveform already running.
// The output is left low if duty is 0 and steady high if duty is 1.
func (s *SoftPWM) Run(frequency float64, duty float64) error {
	if frequency <= 0 {
		return ErrInvalidFrequency
	}
	if duty < 0 || duty > 1 {
		return ErrInvalidDutyCycle
	}

	if err := s.Stop(); err != nil {
		return err
	}

	if duty == 0 {
		return s.set(false)
	}
	if duty == 1 {
		return s.set(true)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.running = true
	go s.pwmLoop(frequency, duty)

	return nil
}

// Stop halts the waveform and forces the output low. Stopping a
// stopped waveform is a no-op beyond re-asserting the low state.
func (s *SoftPWM) Stop() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		close(s.stopCh)
		<-s.doneCh // Wait for goroutine to finish

		s.running = false

		// Reset channels for potential restart
		s.stopCh = make(chan struct{})
		s.doneCh = make(chan struct{})
	}

	return s.set(false)
}

// IsRunning returns true if the waveform goroutine is active.
func (s *SoftPWM) IsRunning() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.running
}

func (s *SoftPWM) pwmLoop(frequency float64, duty float64) {
	defer close(s.doneCh)

	period := float64(time.Second) / frequency
	onTime := time.Duration(period * duty)
	offTime := time.Duration(period * (1 - duty))
	clock := time.NewTimer(offTime)
	defer clock.Stop()

	state := false // Start with off state

	for {
		select {
		case <-s.stopCh:
			return
		case <-clock.C:
			state = !state
			if state {
				if err := s.set(true); err != nil {
					log.Printf("soft pwm failed to raise output %s: %v", s.name, err)
					break
				}
				clock = time.NewTimer(onTime)
			} else {
				if err := s.set(false); err != nil {
					log.Printf("soft pwm failed to lower output %s: %v", s.name, err)
					break
				}
				clock = time.NewTimer(offTime)
			}
		}
	}
}
