package periphboard

import "errors"

// Hardware initialization errors
var (
	ErrHostInitFailed = errors.New("failed to initialize periph.io host")
)
