package solenoidctl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/biotinker/solenoid-ac/internal/config"
	"github.com/spf13/pflag"
)

const defaultServerURL = "http://localhost:8080"

// Config holds the solenoidctl configuration
type Config struct {
	ServerURL          string `mapstructure:"server-url"`
	ConfigFile         string `mapstructure:"config-file"`
	explicitConfigFile bool   // Track if config file was explicitly set
}

func getDefaultServerURL() string {
	if url := os.Getenv("SOLENOID_SERVER_URL"); url != "" {
		return url
	}
	return defaultServerURL
}

func getDefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, "solenoidctl", "solenoidctl.toml")
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		ServerURL: getDefaultServerURL(),
	}
}

// AddFlags adds command-line flags for all configuration options
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", getDefaultConfigFile(), "Config file to use")
	fs.StringVar(&c.ServerURL, "server-url", c.ServerURL, "API server URL")
}

// LoadConfig loads configuration with the standard precedence
func (c *Config) LoadConfig() error {
	return c.LoadConfigWithFlagSet(pflag.CommandLine)
}

// LoadConfigWithFlagSet loads configuration using a custom flag set (for testing)
func (c *Config) LoadConfigWithFlagSet(fs *pflag.FlagSet) error {
	c.explicitConfigFile = c.ConfigFile != getDefaultConfigFile()

	// The default config file is optional; an explicitly named one
	// must exist.
	if !c.explicitConfigFile {
		if _, err := os.Stat(c.ConfigFile); os.IsNotExist(err) {
			c.ConfigFile = ""
		}
	} else if _, err := os.Stat(c.ConfigFile); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", c.ConfigFile)
	}

	loader := config.NewLoader()
	loader.SetConfigFile(c.ConfigFile)
	loader.SetDefaults(map[string]any{
		"server-url": getDefaultServerURL(),
	})

	return loader.LoadWithFlagSet(c, fs)
}
