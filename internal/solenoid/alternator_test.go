package solenoid

import (
	"sort"
	"testing"
	"time"

	"github.com/biotinker/solenoid-ac/internal/board"
)

func newTestPins(t *testing.T) (*board.FakePin, *board.FakePin, board.Pin, board.Pin) {
	t.Helper()
	b := board.NewFakeBoard()
	p1, err := b.GPIOPinByName("GPIO17")
	if err != nil {
		t.Fatalf("GPIOPinByName() failed: %v", err)
	}
	p2, err := b.GPIOPinByName("GPIO27")
	if err != nil {
		t.Fatalf("GPIOPinByName() failed: %v", err)
	}
	return p1.(*board.FakePin), p2.(*board.FakePin), p1, p2
}

func TestNewAlternatorErrors(t *testing.T) {
	_, _, p1, p2 := newTestPins(t)

	if _, err := NewAlternator(nil, p2, 60); err != ErrMissingPin1 {
		t.Errorf("NewAlternator(nil pin) error = %v, want %v", err, ErrMissingPin1)
	}
	if _, err := NewAlternator(p1, p2, 0); err != ErrInvalidFrequency {
		t.Errorf("NewAlternator(zero frequency) error = %v, want %v", err, ErrInvalidFrequency)
	}
	if _, err := NewAlternator(p1, p2, -60); err != ErrInvalidFrequency {
		t.Errorf("NewAlternator(negative frequency) error = %v, want %v", err, ErrInvalidFrequency)
	}
}

func TestAlternatorStartStop(t *testing.T) {
	f1, f2, p1, p2 := newTestPins(t)

	// 100 Hz keeps the half period at 5ms so the test stays fast.
	alt, err := NewAlternator(p1, p2, 100)
	if err != nil {
		t.Fatalf("NewAlternator() failed: %v", err)
	}

	if alt.IsRunning() {
		t.Error("alternator should not be running initially")
	}

	if err := alt.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !alt.IsRunning() {
		t.Error("alternator should be running after Start()")
	}
	if err := alt.Start(); err != ErrAlreadyRunning {
		t.Errorf("Start() while running should return ErrAlreadyRunning, got %v", err)
	}

	time.Sleep(40 * time.Millisecond)

	if err := alt.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if alt.IsRunning() {
		t.Error("alternator should not be running after Stop()")
	}
	if err := alt.Stop(); err != ErrNotRunning {
		t.Errorf("Stop() while stopped should return ErrNotRunning, got %v", err)
	}

	if f1.IsHigh() || f2.IsHigh() {
		t.Error("both pins should be low after Stop()")
	}

	// Both pins must have seen high phases while running.
	sawHigh := func(writes []board.PinWrite) bool {
		for _, w := range writes {
			if w.High {
				return true
			}
		}
		return false
	}
	if !sawHigh(f1.Writes()) {
		t.Error("pin1 never went high while alternating")
	}
	if !sawHigh(f2.Writes()) {
		t.Error("pin2 never went high while alternating")
	}
}

func TestAlternatorPinsNeverBothHigh(t *testing.T) {
	f1, f2, p1, p2 := newTestPins(t)

	alt, err := NewAlternator(p1, p2, 200)
	if err != nil {
		t.Fatalf("NewAlternator() failed: %v", err)
	}
	if err := alt.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if err := alt.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}

	// Replay the interleaved write history and check the invariant.
	type event struct {
		at   time.Time
		pin  int
		high bool
	}
	var events []event
	for _, w := range f1.Writes() {
		events = append(events, event{at: w.At, pin: 0, high: w.High})
	}
	for _, w := range f2.Writes() {
		events = append(events, event{at: w.At, pin: 1, high: w.High})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].at.Before(events[j].at) })

	var high [2]bool
	for _, e := range events {
		high[e.pin] = e.high
		if high[0] && high[1] {
			t.Fatal("pin1 and pin2 were high simultaneously")
		}
	}
}

func TestAlternatorRestart(t *testing.T) {
	_, _, p1, p2 := newTestPins(t)

	alt, err := NewAlternator(p1, p2, 100)
	if err != nil {
		t.Fatalf("NewAlternator() failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := alt.Start(); err != nil {
			t.Fatalf("Start() cycle %d failed: %v", i, err)
		}
		time.Sleep(15 * time.Millisecond)
		if err := alt.Stop(); err != nil {
			t.Fatalf("Stop() cycle %d failed: %v", i, err)
		}
	}
}
