package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/i474232898/temperature-dashboard/internal/temperature"
	"github.com/i474232898/temperature-dashboard/internal/temperature/sources"
)

// Temperature source names accepted by TEMPERATURE_SOURCE / --source.
const (
	SourceSynthetic = "synthetic"
	SourceOpenMeteo = "openmeteo"
)

type AppConfig struct {
	// UpdateInterval is the time between two ticks of the feed.
	UpdateInterval time.Duration

	// HistoryCapacity is how many readings the feed keeps.
	HistoryCapacity int

	// DefaultUnit is used when a request does not pick a unit.
	DefaultUnit temperature.Unit

	Port string

	Source    string
	Latitude  float64
	Longitude float64

	HTTPTimeout     time.Duration
	ShutdownTimeout time.Duration

	LogLevel  string
	LogFormat string

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// Load reads configuration from an optional .env file, the environment and
// command-line args (flags win over env, env wins over defaults).
func Load(args []string) (*AppConfig, error) {
	cfg := &AppConfig{}
	cfg.EnvFileLoaded = godotenv.Load() == nil

	fs := pflag.NewFlagSet("temperature-dashboard", pflag.ContinueOnError)
	fs.String("interval", "3s", "time between readings (duration or whole seconds)")
	fs.Int("capacity", 5, "number of readings kept in the history window")
	fs.String("unit", string(temperature.Celsius), "default display unit: Celsius, Fahrenheit or Kelvin")
	fs.String("port", "8080", "HTTP listen port")
	fs.String("source", SourceSynthetic, "temperature source: synthetic or openmeteo")
	fs.String("log-level", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	bindings := []struct {
		key  string
		envs []string
		def  any
	}{
		{"interval", []string{"UPDATE_INTERVAL", "UPDATE_INTERVAL_SECONDS"}, "3s"},
		{"capacity", []string{"HISTORY_CAPACITY"}, 5},
		{"unit", []string{"DEFAULT_UNIT"}, string(temperature.Celsius)},
		{"port", []string{"PORT"}, "8080"},
		{"source", []string{"TEMPERATURE_SOURCE"}, SourceSynthetic},
		{"latitude", []string{"OPENMETEO_LATITUDE"}, sources.DefaultLatitude},
		{"longitude", []string{"OPENMETEO_LONGITUDE"}, sources.DefaultLongitude},
		{"http_timeout", []string{"HTTP_TIMEOUT"}, "5s"},
		{"shutdown_timeout", []string{"SHUTDOWN_TIMEOUT"}, "10s"},
		{"log-level", []string{"LOG_LEVEL"}, "info"},
		{"log_format", []string{"LOG_FORMAT"}, "console"},
	}
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(append([]string{b.key}, b.envs...)...); err != nil {
			return nil, err
		}
		if f := fs.Lookup(b.key); f != nil {
			if err := v.BindPFlag(b.key, f); err != nil {
				return nil, err
			}
		}
	}

	var err error
	if cfg.UpdateInterval, err = parseInterval(v.GetString("interval")); err != nil {
		return nil, invalid("UPDATE_INTERVAL", err)
	}

	if cfg.HistoryCapacity, err = strconv.Atoi(strings.TrimSpace(v.GetString("capacity"))); err != nil {
		return nil, invalid("HISTORY_CAPACITY", err)
	}
	if cfg.HistoryCapacity <= 0 {
		return nil, invalid("HISTORY_CAPACITY", fmt.Errorf("must be positive, got %d", cfg.HistoryCapacity))
	}

	if cfg.DefaultUnit, err = temperature.ParseUnit(v.GetString("unit")); err != nil {
		return nil, invalid("DEFAULT_UNIT", err)
	}

	cfg.Port = v.GetString("port")

	cfg.Source = strings.ToLower(v.GetString("source"))
	if cfg.Source != SourceSynthetic && cfg.Source != SourceOpenMeteo {
		return nil, invalid("TEMPERATURE_SOURCE", fmt.Errorf("unknown source %q", cfg.Source))
	}

	if cfg.Latitude, err = strconv.ParseFloat(v.GetString("latitude"), 64); err != nil {
		return nil, invalid("OPENMETEO_LATITUDE", err)
	}
	if cfg.Longitude, err = strconv.ParseFloat(v.GetString("longitude"), 64); err != nil {
		return nil, invalid("OPENMETEO_LONGITUDE", err)
	}

	if cfg.HTTPTimeout, err = parsePositiveDuration(v.GetString("http_timeout")); err != nil {
		return nil, invalid("HTTP_TIMEOUT", err)
	}
	if cfg.ShutdownTimeout, err = parsePositiveDuration(v.GetString("shutdown_timeout")); err != nil {
		return nil, invalid("SHUTDOWN_TIMEOUT", err)
	}

	cfg.LogLevel = v.GetString("log-level")
	cfg.LogFormat = v.GetString("log_format")

	return cfg, nil
}

func invalid(key string, err error) error {
	return fmt.Errorf("%w: %s: %v", temperature.ErrInvalidConfig, key, err)
}

// parseInterval accepts a Go duration ("1500ms", "2s") or whole seconds ("3").
func parseInterval(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("must be positive, got %d", n)
		}
		return time.Duration(n) * time.Second, nil
	}
	return parsePositiveDuration(s)
}

func parsePositiveDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}
