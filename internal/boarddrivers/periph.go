package boarddrivers

import (
	"fmt"

	"github.com/biotinker/solenoid-ac/internal/board"
	"github.com/biotinker/solenoid-ac/internal/board/periphboard"
)

// PeriphFactory implements Factory for the periph.io driver
type PeriphFactory struct{}

// CreateBoard creates a new periph board
func (f *PeriphFactory) CreateBoard(config map[string]interface{}) (board.Board, error) {
	if err := f.ValidateConfig(config); err != nil {
		return nil, err
	}
	return periphboard.NewPeriphBoard()
}

// ValidateConfig validates periph configuration. The periph driver
// takes no options; anything present is a mistake worth reporting.
func (f *PeriphFactory) ValidateConfig(config map[string]interface{}) error {
	for key := range config {
		return fmt.Errorf("periph driver takes no configuration, got %q", key)
	}
	return nil
}

func init() {
	Register("periph", &PeriphFactory{}) //nolint:errcheck
}
