// Package config provides YAML-based configuration loading and rule presets
// for t2048.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// ClassicPreset is the name of the preset built from the top-level rules.
const ClassicPreset = "classic"

// ErrUnknownPreset is returned when a preset name is not configured.
var ErrUnknownPreset = errors.New("config: unknown preset")

// Config contains all configuration for t2048.
type Config struct {
	Rules     RulesConfig     `yaml:"rules"`
	Presets   []Preset        `yaml:"presets"`
	Storage   StorageConfig   `yaml:"storage"`
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
}

// RulesConfig defines the classic rule set.
type RulesConfig struct {
	WinTile    int     `yaml:"win_tile"`
	Spawn4Prob float64 `yaml:"spawn4_prob"`
}

// Preset is a named rule set selectable with --preset.
type Preset struct {
	Name       string  `yaml:"name"`
	Title      string  `yaml:"title"`
	WinTile    int     `yaml:"win_tile"`
	Spawn4Prob float64 `yaml:"spawn4_prob"`
}

// StorageConfig defines where scores are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// TelemetryConfig toggles OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// LogConfig sets the log level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the hardcoded configuration used when no YAML is available.
func Default() Config {
	return Config{
		Rules: RulesConfig{
			WinTile:    engine.DefaultWinTile,
			Spawn4Prob: engine.DefaultSpawn4Prob,
		},
		Presets: []Preset{
			{Name: "endless", Title: "Endless", WinTile: 0, Spawn4Prob: engine.DefaultSpawn4Prob},
		},
		Storage: StorageConfig{
			DBPath: "~/.t2048/scores.db",
		},
		Server: ServerConfig{
			Address:     ":2048",
			HostKeyPath: "~/.t2048/ssh_host_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "t2048",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Rules converts the preset to engine rules.
func (p Preset) Rules() engine.Rules {
	return engine.Rules{WinTile: p.WinTile, Spawn4Prob: p.Spawn4Prob}
}

// Goal describes the win condition for menus.
func (p Preset) Goal() string {
	if p.WinTile == 0 {
		return "no target"
	}
	return fmt.Sprintf("reach %d", p.WinTile)
}

// Classic returns the preset defined by the top-level rules section.
func (c Config) Classic() Preset {
	return Preset{
		Name:       ClassicPreset,
		Title:      "Classic 2048",
		WinTile:    c.Rules.WinTile,
		Spawn4Prob: c.Rules.Spawn4Prob,
	}
}

// AllPresets returns the classic preset followed by the configured ones.
func (c Config) AllPresets() []Preset {
	all := make([]Preset, 0, len(c.Presets)+1)
	all = append(all, c.Classic())
	for _, p := range c.Presets {
		if p.Name == ClassicPreset {
			continue
		}
		all = append(all, p)
	}
	return all
}

// Preset looks a preset up by name. An empty name selects the classic preset.
func (c Config) Preset(name string) (Preset, error) {
	if name == "" {
		name = ClassicPreset
	}
	for _, p := range c.AllPresets() {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Validate checks rule values and preset names.
func (c Config) Validate() error {
	seen := make(map[string]bool)
	for _, p := range c.AllPresets() {
		if p.Name == "" {
			return errors.New("config: preset without a name")
		}
		if seen[p.Name] {
			return fmt.Errorf("config: duplicate preset %q", p.Name)
		}
		seen[p.Name] = true

		if err := validateRules(p.WinTile, p.Spawn4Prob); err != nil {
			return fmt.Errorf("config: preset %q: %w", p.Name, err)
		}
	}
	return nil
}

func validateRules(winTile int, spawn4Prob float64) error {
	if winTile < 0 || (winTile != 0 && (winTile < 4 || winTile&(winTile-1) != 0)) {
		return fmt.Errorf("win_tile %d must be 0 or a power of two >= 4", winTile)
	}
	if spawn4Prob < 0 || spawn4Prob > 1 {
		return fmt.Errorf("spawn4_prob %v must be within [0, 1]", spawn4Prob)
	}
	return nil
}
