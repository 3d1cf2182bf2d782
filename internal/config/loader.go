package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configurable represents a type that can be configured via flags and
// config files.
type Configurable interface {
	// AddFlags should add command-line flags to the provided FlagSet
	AddFlags(fs *pflag.FlagSet)
}

// Loader loads configuration with the precedence
// defaults < config file < explicitly set flags.
type Loader struct {
	configFile string
	defaults   map[string]any
}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{
		defaults: make(map[string]any),
	}
}

// SetConfigFile sets the configuration file path.
func (l *Loader) SetConfigFile(configFile string) {
	l.configFile = configFile
}

// SetDefault sets a default value for a configuration key.
func (l *Loader) SetDefault(key string, value any) {
	l.defaults[key] = value
}

// SetDefaults sets multiple default values at once.
func (l *Loader) SetDefaults(defaults map[string]any) {
	for key, value := range defaults {
		l.defaults[key] = value
	}
}

// Load populates config, which must be a pointer to a struct tagged
// with mapstructure tags.
func (l *Loader) Load(config any) error {
	return l.LoadWithFlagSet(config, pflag.CommandLine)
}

// LoadWithFlagSet populates config using an explicit flag set, so
// tests can avoid the global pflag.CommandLine.
func (l *Loader) LoadWithFlagSet(config any, fs *pflag.FlagSet) error {
	v := viper.New()

	for key, value := range l.defaults {
		v.SetDefault(key, value)
	}

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w %s: %v", ErrConfigFileRead, l.configFile, err)
		}
	}

	// Only flags the user explicitly set may override the config
	// file. Flag names map directly onto viper keys; dots separate
	// sections (e.g. --solenoid.pwm-pin).
	fs.Visit(func(flag *pflag.Flag) {
		v.Set(flag.Name, flagValue(flag))
	})

	if err := v.Unmarshal(config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	return nil
}

// flagValue converts a pflag value to its natural Go type so that
// viper does not hand mapstructure a string where a number belongs.
func flagValue(flag *pflag.Flag) any {
	s := flag.Value.String()

	switch flag.Value.Type() {
	case "int", "int8", "int16", "int32", "int64":
		if val, err := strconv.ParseInt(s, 10, 64); err == nil {
			return val
		}
	case "uint", "uint8", "uint16", "uint32", "uint64":
		if val, err := strconv.ParseUint(s, 10, 64); err == nil {
			return val
		}
	case "bool":
		if val, err := strconv.ParseBool(s); err == nil {
			return val
		}
	case "float32", "float64":
		if val, err := strconv.ParseFloat(s, 64); err == nil {
			return val
		}
	case "stringSlice":
		if sliceFlag, ok := flag.Value.(pflag.SliceValue); ok {
			return sliceFlag.GetSlice()
		}
		return strings.Split(strings.Trim(s, "[]"), ",")
	}

	return s
}

// LoadWithFile is a convenience wrapper for the common pattern of one
// file plus defaults.
func LoadWithFile(config Configurable, configFile string, defaults map[string]any) error {
	loader := NewLoader()
	loader.SetConfigFile(configFile)
	if defaults != nil {
		loader.SetDefaults(defaults)
	}
	return loader.Load(config)
}
