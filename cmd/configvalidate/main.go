package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/biotinker/solenoid-ac/internal/api"
	"github.com/biotinker/solenoid-ac/internal/boarddrivers"
	"github.com/biotinker/solenoid-ac/internal/version"
	"github.com/spf13/pflag"
)

func main() {
	var (
		versionFlag = pflag.Bool("version", false, "Show version and exit")
		configFile  = pflag.String("config", "", "Configuration file to validate")
		helpFlag    = pflag.BoolP("help", "h", false, "Show help")
	)

	pflag.Parse()

	if *versionFlag {
		version.ShowVersion()
		os.Exit(0)
	}

	if *helpFlag {
		usage()
		os.Exit(0)
	}

	if *configFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --config flag is required\n\n")
		usage()
		os.Exit(1)
	}

	if _, err := os.Stat(*configFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: Configuration file %s does not exist\n", *configFile)
		os.Exit(1)
	}

	if err := validateServerConfig(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Configuration file %s is valid\n", *configFile)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s --config FILE\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "A tool for validating solenoid-server configuration files\nwithout touching any hardware.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	pflag.PrintDefaults()
}

func validateServerConfig(configFile string) error {
	cfg := api.NewConfig()
	cfg.ConfigFile = configFile

	// Add flags but don't parse them; the config loader needs them
	// for defaults only.
	cfg.AddFlags(pflag.NewFlagSet("server", pflag.ContinueOnError))

	if err := cfg.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %v", err)
	}

	if cfg.ListenPort <= 0 || cfg.ListenPort > 65535 {
		return fmt.Errorf("listen port must be between 1 and 65535, got %d", cfg.ListenPort)
	}

	drivers := boarddrivers.ListDrivers()
	if !slices.Contains(drivers, cfg.Driver) {
		return fmt.Errorf("unknown driver %q (available: %v)", cfg.Driver, drivers)
	}

	if err := boarddrivers.ValidateConfig(cfg.Driver, cfg.DriverConfig); err != nil {
		return fmt.Errorf("invalid driver configuration: %v", err)
	}

	if _, err := cfg.Solenoid.Validate(); err != nil {
		return fmt.Errorf("invalid solenoid configuration: %v", err)
	}

	return nil
}
