package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/cadence/pkg/errors"
)

// loadAndMerge loads a YAML file and merges it into the config.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Scalars replace the base value when
// non-zero; booleans and lists only when the key is present in raw, so a
// file can switch a default off or clear a list.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	if override.UI.Backend != "" {
		base.UI.Backend = strings.ToLower(override.UI.Backend)
	}
	if override.UI.Flow != "" {
		base.UI.Flow = strings.ToLower(override.UI.Flow)
	}
	if override.UI.Theme != "" {
		base.UI.Theme = strings.ToLower(override.UI.Theme)
	}
	if fieldSet(raw, "ui", "tick_rate") {
		base.UI.TickRate = override.UI.TickRate
	}
	if override.UI.RefreshRate != 0 {
		base.UI.RefreshRate = override.UI.RefreshRate
	}
	if override.UI.SimWidth != 0 {
		base.UI.SimWidth = override.UI.SimWidth
	}
	if override.UI.SimHeight != 0 {
		base.UI.SimHeight = override.UI.SimHeight
	}
	if fieldSet(raw, "ui", "headless_ticks") {
		base.UI.HeadlessTicks = override.UI.HeadlessTicks
	}

	if fieldSet(raw, "devices", "nats", "enabled") {
		base.Devices.NATS.Enabled = override.Devices.NATS.Enabled
	}
	if override.Devices.NATS.URL != "" {
		base.Devices.NATS.URL = override.Devices.NATS.URL
	}
	if fieldSet(raw, "devices", "nats", "subjects") {
		base.Devices.NATS.Subjects = override.Devices.NATS.Subjects
	}
	if override.Devices.NATS.OutputSubject != "" {
		base.Devices.NATS.OutputSubject = override.Devices.NATS.OutputSubject
	}
	if override.Devices.NATS.Token != "" {
		base.Devices.NATS.Token = override.Devices.NATS.Token
	}
	if fieldSet(raw, "devices", "watch", "paths") {
		base.Devices.Watch.Paths = override.Devices.Watch.Paths
	}
	if fieldSet(raw, "devices", "websocket", "urls") {
		base.Devices.WebSocket.URLs = override.Devices.WebSocket.URLs
	}

	if override.Telemetry.LogLevel != "" {
		base.Telemetry.LogLevel = strings.ToLower(override.Telemetry.LogLevel)
	}
	if override.Telemetry.LogFile != "" {
		base.Telemetry.LogFile = expandHomeDir(override.Telemetry.LogFile)
	}
	if fieldSet(raw, "telemetry", "metrics_addr") {
		base.Telemetry.MetricsAddr = override.Telemetry.MetricsAddr
	}
	if fieldSet(raw, "telemetry", "tracing") {
		base.Telemetry.Tracing = override.Telemetry.Tracing
	}
	if override.Telemetry.TraceFile != "" {
		base.Telemetry.TraceFile = expandHomeDir(override.Telemetry.TraceFile)
	}
}

func fieldSet(raw map[string]any, path ...string) bool {
	if len(path) == 0 || raw == nil {
		return false
	}
	current := any(raw)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		val, ok := m[key]
		if !ok {
			return false
		}
		current = val
	}
	return true
}

// loadConfigEnvVars reads KEY=value lines from ~/.cadence/config.env.
func loadConfigEnvVars() map[string]string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(home, ".cadence", "config.env"))
	if err != nil {
		return nil
	}

	vars := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		vars[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	return vars
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
