package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// UserConfig represents the user's custom configuration.
type UserConfig struct {
	Appearance AppearanceConfig `toml:"appearance"`
	Gesture    GestureConfig    `toml:"gesture"`
}

// AppearanceConfig holds appearance-related settings.
type AppearanceConfig struct {
	StripPosition     string `toml:"strip_position"`     // Tab strip position: top, bottom
	AnimationsEnabled *bool  `toml:"animations_enabled"` // Enable snapback/preview animations (default: true)
	ASCIIOnly         bool   `toml:"ascii_only"`         // Use ASCII characters instead of Nerd Font icons
	Theme             string `toml:"theme"`              // Color theme name (e.g., dracula, nord). Empty = terminal colors.
}

// GestureConfig holds gesture timing overrides. Zero values mean "use the
// built-in defaults" so a partial config file stays valid.
type GestureConfig struct {
	HoldDelayMs       int `toml:"hold_delay_ms"`        // Touch hold dwell before the gesture arms (default: 180)
	SpringLoadDwellMs int `toml:"spring_load_dwell_ms"` // Hover time before a candidate window is focused (default: 420)
	ProbeDebounceMs   int `toml:"probe_debounce_ms"`    // Minimum interval between drop-target probes (default: 60)
	DragOutMargin     int `toml:"drag_out_margin"`      // Vertical escape distance from the strip band, in cells (default: 2)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			StripPosition: "top",
		},
	}
}

// HoldDelayOrDefault resolves the effective hold delay.
func (g GestureConfig) HoldDelayOrDefault() time.Duration {
	if g.HoldDelayMs > 0 {
		return time.Duration(g.HoldDelayMs) * time.Millisecond
	}
	return HoldDelay
}

// SpringLoadDwellOrDefault resolves the effective spring-load dwell.
func (g GestureConfig) SpringLoadDwellOrDefault() time.Duration {
	if g.SpringLoadDwellMs > 0 {
		return time.Duration(g.SpringLoadDwellMs) * time.Millisecond
	}
	return SpringLoadDwell
}

// ProbeDebounceOrDefault resolves the effective probe debounce interval.
func (g GestureConfig) ProbeDebounceOrDefault() time.Duration {
	if g.ProbeDebounceMs > 0 {
		return time.Duration(g.ProbeDebounceMs) * time.Millisecond
	}
	return ProbeDebounce
}

// DragOutMarginOrDefault resolves the effective drag-out margin. The
// fallback is the cell-scale demo value, not the pixel constant, because
// the knob tunes the terminal demo.
func (g GestureConfig) DragOutMarginOrDefault() int {
	if g.DragOutMargin > 0 {
		return g.DragOutMargin
	}
	return DemoDragOutMargin
}

// LoadUserConfig loads the user configuration, creating a default config
// file on first run.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile("tabflow/config.toml")
	if err != nil {
		// Config doesn't exist, create default
		return createDefaultConfig()
	}

	// #nosec G304 - configPath is from XDG search, reading user config is intentional
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	fillMissing(&cfg, DefaultConfig())

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// fillMissing fills in absent sections with defaults so partial config files
// remain usable.
func fillMissing(cfg, defaults *UserConfig) {
	if cfg.Appearance.StripPosition == "" {
		cfg.Appearance.StripPosition = defaults.Appearance.StripPosition
	}
}

// validate rejects values that would make the gesture engine misbehave.
func validate(cfg *UserConfig) error {
	switch cfg.Appearance.StripPosition {
	case "top", "bottom":
	default:
		return fmt.Errorf("config error in [appearance]: strip_position must be %q or %q, got %q",
			"top", "bottom", cfg.Appearance.StripPosition)
	}
	if cfg.Gesture.HoldDelayMs < 0 {
		return fmt.Errorf("config error in [gesture]: hold_delay_ms must not be negative")
	}
	if cfg.Gesture.SpringLoadDwellMs < 0 {
		return fmt.Errorf("config error in [gesture]: spring_load_dwell_ms must not be negative")
	}
	if cfg.Gesture.ProbeDebounceMs < 0 {
		return fmt.Errorf("config error in [gesture]: probe_debounce_ms must not be negative")
	}
	if cfg.Gesture.DragOutMargin < 0 {
		return fmt.Errorf("config error in [gesture]: drag_out_margin must not be negative")
	}
	return nil
}

// createDefaultConfig creates a default config file in the user's config
// directory.
func createDefaultConfig() (*UserConfig, error) {
	cfg := DefaultConfig()

	configPath, err := xdg.ConfigFile("tabflow/config.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# tabflow Configuration File\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("#\n")
	sb.WriteString("# [appearance]\n")
	sb.WriteString("# strip_position: Tab strip position inside each window\n")
	sb.WriteString("#   Options: top, bottom\n")
	sb.WriteString("#   Default: top\n")
	sb.WriteString("#\n")
	sb.WriteString("# [gesture]\n")
	sb.WriteString("# hold_delay_ms: Touch hold dwell before a drag arms (default: 180)\n")
	sb.WriteString("# spring_load_dwell_ms: Hover time before the hovered window is focused (default: 420)\n")
	sb.WriteString("# probe_debounce_ms: Minimum interval between drop-target probes (default: 60)\n")
	sb.WriteString("# drag_out_margin: Vertical escape distance from the strip band, in cells (default: 2)\n\n")

	if _, err := sb.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write config data: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfg, nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile("tabflow/config.toml")
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile("tabflow/config.toml")
	}
	return path, nil
}
