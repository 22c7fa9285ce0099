package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/odvcencio/cadence/pkg/errors"
	"github.com/odvcencio/cadence/pkg/ui/compose"
)

// Backends the driver can render to.
const (
	BackendTCell = "tcell"
	BackendSim   = "sim"
)

// Default configuration values exported for documentation and validation
const (
	DefaultBackend       = BackendTCell
	DefaultFlow          = "top-down"
	DefaultTickRate      = time.Second
	DefaultRefreshRate   = time.Second / 60
	DefaultSimWidth      = 80
	DefaultSimHeight     = 24
	DefaultHeadlessTicks = 3
	DefaultTheme         = "auto"
	DefaultNATSURL       = "nats://127.0.0.1:4222"
	DefaultLogLevel      = "info"
	DefaultMetricsAddr   = ""
)

// Config is the full cadence configuration.
type Config struct {
	UI        UIConfig        `yaml:"ui"`
	Devices   DevicesConfig   `yaml:"devices"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// UIConfig configures the driver and its backend.
type UIConfig struct {
	Backend string `yaml:"backend"`
	Flow    string `yaml:"flow"`
	Theme   string `yaml:"theme"`
	// TickRate is the period of driver timer ticks; zero disables them.
	TickRate time.Duration `yaml:"tick_rate"`
	// RefreshRate is the minimum interval between painted frames.
	RefreshRate   time.Duration `yaml:"refresh_rate"`
	SimWidth      int           `yaml:"sim_width"`
	SimHeight     int           `yaml:"sim_height"`
	HeadlessTicks int           `yaml:"headless_ticks"`
}

// DevicesConfig configures external device sources and sinks.
type DevicesConfig struct {
	NATS      NATSConfig      `yaml:"nats"`
	Watch     WatchConfig     `yaml:"watch"`
	WebSocket WebSocketConfig `yaml:"websocket"`
}

// NATSConfig configures the message bus device.
type NATSConfig struct {
	Enabled       bool     `yaml:"enabled"`
	URL           string   `yaml:"url"`
	Subjects      []string `yaml:"subjects"`
	OutputSubject string   `yaml:"output_subject"`
	Token         string   `yaml:"token"`
}

// WatchConfig configures file watch devices.
type WatchConfig struct {
	Paths []string `yaml:"paths"`
}

// WebSocketConfig configures websocket devices.
type WebSocketConfig struct {
	URLs []string `yaml:"urls"`
}

// TelemetryConfig configures logging, metrics and tracing.
type TelemetryConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
	MetricsAddr string `yaml:"metrics_addr"`
	Tracing     bool   `yaml:"tracing"`
	TraceFile   string `yaml:"trace_file"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Backend:       DefaultBackend,
			Flow:          DefaultFlow,
			Theme:         DefaultTheme,
			TickRate:      DefaultTickRate,
			RefreshRate:   DefaultRefreshRate,
			SimWidth:      DefaultSimWidth,
			SimHeight:     DefaultSimHeight,
			HeadlessTicks: DefaultHeadlessTicks,
		},
		Devices: DevicesConfig{
			NATS: NATSConfig{
				URL: DefaultNATSURL,
			},
		},
		Telemetry: TelemetryConfig{
			LogLevel:    DefaultLogLevel,
			MetricsAddr: DefaultMetricsAddr,
		},
	}
}

// Load loads configuration from default locations with proper precedence:
// defaults, ~/.cadence/config.yaml, ./.cadence/config.yaml, then CADENCE_*
// environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configEnv := loadConfigEnvVars()

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		userConfigPath := filepath.Join(home, ".cadence", "config.yaml")
		if err := loadAndMerge(cfg, userConfigPath); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "loading user config").
				WithContext("path", userConfigPath)
		}
	}

	projectConfigPath := filepath.Join(".", ".cadence", "config.yaml")
	if err := loadAndMerge(cfg, projectConfigPath); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "loading project config").
			WithContext("path", projectConfigPath)
	}

	applyEnvOverrides(cfg, configEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	configEnv := loadConfigEnvVars()

	if err := loadAndMerge(cfg, expandHomeDir(path)); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "loading config").
			WithContext("path", path)
	}

	applyEnvOverrides(cfg, configEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Values from the
// process environment win over ~/.cadence/config.env.
func applyEnvOverrides(cfg *Config, configEnv map[string]string) {
	get := func(key string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(configEnv[key])
	}

	if v := get("CADENCE_BACKEND"); v != "" {
		cfg.UI.Backend = strings.ToLower(v)
	}
	if v := get("CADENCE_FLOW"); v != "" {
		cfg.UI.Flow = strings.ToLower(v)
	}
	if v := get("CADENCE_THEME"); v != "" {
		cfg.UI.Theme = strings.ToLower(v)
	}
	if v := get("CADENCE_TICK_RATE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.UI.TickRate = d
		}
	}
	if v := get("CADENCE_REFRESH_RATE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.UI.RefreshRate = d
		}
	}
	if v := get("CADENCE_HEADLESS_TICKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.UI.HeadlessTicks = n
		}
	}

	if val, ok := envBool(get("CADENCE_NATS_ENABLED")); ok {
		cfg.Devices.NATS.Enabled = val
	}
	if v := get("CADENCE_NATS_URL"); v != "" {
		cfg.Devices.NATS.URL = v
	}
	if v := get("CADENCE_NATS_SUBJECTS"); v != "" {
		cfg.Devices.NATS.Subjects = splitCommaList(v)
	}
	if v := get("CADENCE_NATS_OUTPUT_SUBJECT"); v != "" {
		cfg.Devices.NATS.OutputSubject = v
	}
	if v := get("CADENCE_NATS_TOKEN"); v != "" {
		cfg.Devices.NATS.Token = v
	}
	if v := get("CADENCE_WATCH_PATHS"); v != "" {
		cfg.Devices.Watch.Paths = splitCommaList(v)
	}
	if v := get("CADENCE_WS_URLS"); v != "" {
		cfg.Devices.WebSocket.URLs = splitCommaList(v)
	}

	if v := get("CADENCE_LOG_LEVEL"); v != "" {
		cfg.Telemetry.LogLevel = strings.ToLower(v)
	}
	if v := get("CADENCE_LOG_FILE"); v != "" {
		cfg.Telemetry.LogFile = v
	}
	if v := get("CADENCE_METRICS_ADDR"); v != "" {
		cfg.Telemetry.MetricsAddr = v
	}
	if val, ok := envBool(get("CADENCE_TRACING")); ok {
		cfg.Telemetry.Tracing = val
	}
	if v := get("CADENCE_TRACE_FILE"); v != "" {
		cfg.Telemetry.TraceFile = v
	}
}

func splitCommaList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func envBool(val string) (bool, bool) {
	if val == "" {
		return false, false
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// Flow returns the configured root flow direction.
func (c *Config) Flow() compose.Flow {
	f, err := compose.ParseFlow(c.UI.Flow)
	if err != nil {
		return compose.TopDown
	}
	return f
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	invalid := func(field, format string, args ...any) error {
		return errors.Newf(errors.ErrCodeConfigInvalid, format, args...).WithContext("field", field)
	}

	switch c.UI.Backend {
	case BackendTCell, BackendSim:
	default:
		return invalid("ui.backend", "invalid backend: %s (valid: tcell, sim)", c.UI.Backend)
	}
	if _, err := compose.ParseFlow(c.UI.Flow); err != nil {
		return invalid("ui.flow", "invalid flow: %s (valid: top-down, bottom-up, left-right, right-left)", c.UI.Flow)
	}
	switch c.UI.Theme {
	case "auto", "dark", "light", "ansi":
	default:
		return invalid("ui.theme", "invalid theme: %s (valid: auto, dark, light, ansi)", c.UI.Theme)
	}
	if c.UI.TickRate < 0 {
		return invalid("ui.tick_rate", "tick rate must not be negative: %s", c.UI.TickRate)
	}
	if c.UI.RefreshRate <= 0 {
		return invalid("ui.refresh_rate", "refresh rate must be positive: %s", c.UI.RefreshRate)
	}
	if c.UI.SimWidth <= 0 || c.UI.SimHeight <= 0 {
		return invalid("ui.sim_width", "simulation size must be positive: %dx%d", c.UI.SimWidth, c.UI.SimHeight)
	}
	if c.UI.HeadlessTicks < 0 {
		return invalid("ui.headless_ticks", "headless ticks must not be negative: %d", c.UI.HeadlessTicks)
	}

	nats := c.Devices.NATS
	if nats.Enabled {
		if strings.TrimSpace(nats.URL) == "" {
			return invalid("devices.nats.url", "nats device enabled without a url")
		}
		if len(nats.Subjects) == 0 && nats.OutputSubject == "" {
			return invalid("devices.nats.subjects", "nats device enabled without subjects or an output subject")
		}
	}
	for _, u := range c.Devices.WebSocket.URLs {
		if !strings.HasPrefix(u, "ws://") && !strings.HasPrefix(u, "wss://") {
			return invalid("devices.websocket.urls", "websocket url must use ws:// or wss://: %s", u)
		}
	}

	switch c.Telemetry.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return invalid("telemetry.log_level", "invalid log level: %s (valid: debug, info, warn, error)", c.Telemetry.LogLevel)
	}
	return nil
}

// ValidationWarnings returns non-fatal configuration issues.
func (c *Config) ValidationWarnings() []string {
	var warnings []string
	if c.UI.Backend == BackendTCell && c.Telemetry.LogFile == "" && c.Telemetry.LogLevel == "debug" {
		warnings = append(warnings, "debug logging to stderr will garble the terminal UI; set telemetry.log_file")
	}
	if c.Telemetry.Tracing && c.Telemetry.TraceFile == "" && c.UI.Backend == BackendTCell {
		warnings = append(warnings, "tracing without telemetry.trace_file writes spans to stderr")
	}
	if c.UI.RefreshRate < time.Millisecond {
		warnings = append(warnings, "refresh_rate below 1ms repaints on every tick")
	}
	return warnings
}
