package version

import "fmt"

// Set at build time via -ldflags.
var (
	Version   = "dev"
	BuildDate = "unknown"
)

// ShowVersion prints version information to stdout.
func ShowVersion() {
	fmt.Printf("solenoid-ac %s (built %s)\n", Version, BuildDate)
}
