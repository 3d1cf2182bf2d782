package api

import (
	"github.com/biotinker/solenoid-ac/internal/config"
	"github.com/biotinker/solenoid-ac/internal/solenoid"
	"github.com/spf13/pflag"
)

// Config holds the configuration for the API server.
type Config struct {
	ConfigFile    string                 `mapstructure:"config-file"`
	ListenAddress string                 `mapstructure:"listen-address"`
	ListenPort    int                    `mapstructure:"listen-port"`
	Driver        string                 `mapstructure:"driver"`
	DriverConfig  map[string]interface{} `mapstructure:"driver-config"`
	MQTTServer    string                 `mapstructure:"mqtt-server"`
	Solenoid      solenoid.Config        `mapstructure:"solenoid"`
}

// NewConfig creates a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		ListenPort: 8080,
		Driver:     "periph",
	}
}

// AddFlags adds pflag flags for the configuration.
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", "", "Config file to use")
	fs.StringVar(&c.ListenAddress, "listen-address", c.ListenAddress, "Listen address for http server")
	fs.IntVar(&c.ListenPort, "listen-port", c.ListenPort, "Listen port for http server")
	fs.StringVar(&c.Driver, "driver", c.Driver, "Board driver to use (periph, cdev, or fake)")
	fs.StringVar(&c.MQTTServer, "mqtt-server", c.MQTTServer, "MQTT server URL for position events (optional)")
	fs.StringVar(&c.Solenoid.Pin1, "solenoid.pin1", c.Solenoid.Pin1, "First pin for the alternating variant")
	fs.StringVar(&c.Solenoid.Pin2, "solenoid.pin2", c.Solenoid.Pin2, "Second pin for the alternating variant")
	fs.StringVar(&c.Solenoid.ControlPin, "solenoid.control-pin", c.Solenoid.ControlPin, "Control pin for the pwm variant")
	fs.StringVar(&c.Solenoid.PWMPin, "solenoid.pwm-pin", c.Solenoid.PWMPin, "PWM pin for the pwm variant")
	fs.Float64Var(&c.Solenoid.PWMFrequency, "solenoid.pwm-frequency", c.Solenoid.PWMFrequency, "Waveform frequency in Hz (default 60)")
}

// LoadConfig loads the configuration from flags and the config file.
func (c *Config) LoadConfig() error {
	return c.LoadConfigWithFlagSet(pflag.CommandLine)
}

// LoadConfigWithFlagSet loads the configuration using a custom flag set.
func (c *Config) LoadConfigWithFlagSet(fs *pflag.FlagSet) error {
	loader := config.NewLoader()
	loader.SetConfigFile(c.ConfigFile)
	loader.SetDefaults(map[string]any{
		"listen-address": c.ListenAddress,
		"listen-port":    c.ListenPort,
		"driver":         c.Driver,
	})
	return loader.LoadWithFlagSet(c, fs)
}
