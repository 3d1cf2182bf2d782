package cdevboard

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/biotinker/solenoid-ac/internal/board"
	"github.com/warthog618/go-gpiocdev"
)

const DefaultChip = "gpiochip0"

type (
	// CdevPin drives a single GPIO line through the Linux character
	// device. PWM is emulated in software.
	CdevPin struct {
		line    *gpiocdev.Line
		lineNum int
		mutex   sync.Mutex
		freq    float64
		pwm     *SoftPWM
	}

	// CdevBoard resolves pins against a single GPIO chip, typically
	// /dev/gpiochip0 on a Raspberry Pi.
	CdevBoard struct {
		chip  *gpiocdev.Chip
		mutex sync.Mutex
		pins  map[string]*CdevPin
	}
)

func NewCdevBoard(chipName string) (*CdevBoard, error) {
	if chipName == "" {
		chipName = DefaultChip
	}

	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrChipOpenFailed, chipName, err)
	}

	return &CdevBoard{
		chip: chip,
		pins: make(map[string]*CdevPin),
	}, nil
}

func (b *CdevBoard) GPIOPinByName(name string) (board.Pin, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if pin, ok := b.pins[name]; ok {
		return pin, nil
	}

	lineNum, err := ParsePinNumber(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", board.ErrPinNotFound, err)
	}

	line, err := b.chip.RequestLine(lineNum, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrLineRequestFailed, lineNum, err)
	}

	p := &CdevPin{
		line:    line,
		lineNum: lineNum,
		freq:    60,
	}
	p.pwm = NewSoftPWM(p.Name(), p.setValue)
	b.pins[name] = p
	return p, nil
}

func (b *CdevBoard) Close() error {
	log.Printf("closing cdev board")
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, p := range b.pins {
		if err := p.pwm.Stop(); err != nil {
			log.Printf("failed to reset line %d to low: %s", p.lineNum, err)
		}
		if err := p.line.Close(); err != nil {
			log.Printf("failed to close GPIO line %d: %s", p.lineNum, err)
		}
	}

	if err := b.chip.Close(); err != nil {
		return fmt.Errorf("failed to close GPIO chip: %w", err)
	}
	return nil
}

func (b *CdevBoard) String() string {
	return fmt.Sprintf("cdev board on %s", b.chip.Name)
}

// setValue writes the raw line value, bypassing the soft PWM.
func (p *CdevPin) setValue(high bool) error {
	value := 0
	if high {
		value = 1
	}
	if err := p.line.SetValue(value); err != nil {
		return fmt.Errorf("%w %s: %v", board.ErrPinWrite, p.Name(), err)
	}
	return nil
}

func (p *CdevPin) Set(high bool) error {
	// A steady level supersedes any running waveform.
	if err := p.pwm.Stop(); err != nil {
		return err
	}
	return p.setValue(high)
}

func (p *CdevPin) SetPWM(duty float64) error {
	if duty < 0 || duty > 1 {
		return fmt.Errorf("%w: %f", board.ErrInvalidDutyCycle, duty)
	}

	p.mutex.Lock()
	freq := p.freq
	p.mutex.Unlock()

	if duty == 0 {
		return p.pwm.Stop()
	}
	return p.pwm.Run(freq, duty)
}

func (p *CdevPin) SetPWMFrequency(hz float64) error {
	if hz <= 0 {
		return fmt.Errorf("%w: %f", board.ErrInvalidFrequency, hz)
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.freq = hz
	return nil
}

func (p *CdevPin) Name() string {
	return fmt.Sprintf("GPIO%d", p.lineNum)
}

func (p *CdevPin) String() string {
	return p.Name()
}

// ParsePinNumber parses a GPIO pin name (e.g. "GPIO16") and returns the
// line number. Supports both "GPIO<number>" and "<number>" formats.
func ParsePinNumber(pinName string) (int, error) {
	if lineNum, err := strconv.Atoi(pinName); err == nil {
		return lineNum, nil
	}

	if strings.HasPrefix(strings.ToUpper(pinName), "GPIO") {
		numStr := strings.TrimPrefix(strings.ToUpper(pinName), "GPIO")
		if lineNum, err := strconv.Atoi(numStr); err == nil {
			return lineNum, nil
		}
	}

	return 0, fmt.Errorf("invalid GPIO pin format: %s (expected format: GPIO<number> or <number>)", pinName)
}
