package boarddrivers

import (
	"github.com/biotinker/solenoid-ac/internal/board"
)

// FakeFactory implements Factory for the in-memory fake board, used
// for tests and dry runs on machines without GPIO hardware.
type FakeFactory struct{}

// CreateBoard creates a new fake board
func (f *FakeFactory) CreateBoard(config map[string]interface{}) (board.Board, error) {
	return board.NewFakeBoard(), nil
}

// ValidateConfig validates fake configuration (anything goes)
func (f *FakeFactory) ValidateConfig(config map[string]interface{}) error {
	return nil
}

func init() {
	Register("fake", &FakeFactory{}) //nolint:errcheck
}
