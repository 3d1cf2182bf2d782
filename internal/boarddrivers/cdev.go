package boarddrivers

import (
	"fmt"

	"github.com/biotinker/solenoid-ac/internal/board"
	"github.com/biotinker/solenoid-ac/internal/board/cdevboard"
)

// CdevConfig represents cdev driver configuration
type CdevConfig struct {
	Chip string `mapstructure:"chip"`
}

// CdevFactory implements Factory for the character-device GPIO driver
type CdevFactory struct{}

// CreateBoard creates a new cdev board
func (f *CdevFactory) CreateBoard(config map[string]interface{}) (board.Board, error) {
	cfg, err := f.parseConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cdev config: %w", err)
	}

	if cfg.Chip == "" {
		cfg.Chip = cdevboard.DefaultChip
	}

	return cdevboard.NewCdevBoard(cfg.Chip)
}

// ValidateConfig validates cdev configuration
func (f *CdevFactory) ValidateConfig(config map[string]interface{}) error {
	_, err := f.parseConfig(config)
	return err
}

// parseConfig converts map to CdevConfig struct
func (f *CdevFactory) parseConfig(config map[string]interface{}) (*CdevConfig, error) {
	cfg := &CdevConfig{}

	for key, value := range config {
		switch key {
		case "chip":
			chipStr, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("chip must be a string")
			}
			cfg.Chip = chipStr
		default:
			return nil, fmt.Errorf("unknown cdev option %q", key)
		}
	}

	return cfg, nil
}

func init() {
	Register("cdev", &CdevFactory{}) //nolint:errcheck
}
