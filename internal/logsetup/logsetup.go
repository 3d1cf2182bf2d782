// Package logsetup configures the standard logger for all commands.
// Import it for side effects.
package logsetup

import "log"

func init() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
