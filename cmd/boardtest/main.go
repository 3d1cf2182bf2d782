package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/biotinker/solenoid-ac/internal/boarddrivers"
	_ "github.com/biotinker/solenoid-ac/internal/logsetup"
	"github.com/spf13/pflag"
)

// boardtest drives named pins directly through a board driver, for
// hardware bring-up. Values are "on", "off", or a duty cycle fraction.
func main() {
	driver := pflag.String("driver", "periph", "Board driver to use")
	chip := pflag.String("chip", "", "GPIO chip (cdev driver only)")
	pflag.Parse()

	args := pflag.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] pin_name:value [pin_name:value...]\n", os.Args[0])
		os.Exit(1)
	}

	driverConfig := map[string]interface{}{}
	if *chip != "" {
		driverConfig["chip"] = *chip
	}

	b, err := boarddrivers.Create(*driver, driverConfig)
	if err != nil {
		log.Fatalf("failed to create board: %s", err)
	}
	defer b.Close() //nolint:errcheck

	for _, arg := range args {
		parts := strings.SplitN(arg, ":", 2)
		if len(parts) != 2 {
			log.Fatalf("invalid argument: %s", arg)
		}
		pinName, action := parts[0], parts[1]

		pin, err := b.GPIOPinByName(pinName)
		if err != nil {
			log.Fatalf("failed to get pin %s: %s", pinName, err)
		}

		switch strings.ToLower(action) {
		case "on", "1", "true":
			if err := pin.Set(true); err != nil {
				log.Fatalf("failed to turn on %s: %s", pinName, err)
			}
		case "off", "0", "false":
			if err := pin.Set(false); err != nil {
				log.Fatalf("failed to turn off %s: %s", pinName, err)
			}
		default:
			duty, err := strconv.ParseFloat(action, 64)
			if err != nil {
				log.Fatalf("invalid value for %s: %s", pinName, action)
			}
			if err := pin.SetPWM(duty); err != nil {
				log.Fatalf("failed to set pwm on %s: %s", pinName, err)
			}
		}
	}
}
