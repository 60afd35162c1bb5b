package tweakbar

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tree-wide scale and interaction settings.
//
// It can be decoded from TOML:
//
//	ui_scale = 1.5
//	text_scale = 1.0
//	drag_deadzone = 3
//	tooltip_delay = 0.6
//	scroll_speed = 3
type Config struct {
	UIScale      float32 `toml:"ui_scale"`      // Multiplies every size in Style
	TextScale    float32 `toml:"text_scale"`    // Multiplies glyph size, on top of UIScale
	DragDeadzone float32 `toml:"drag_deadzone"` // Pointer travel in unscaled pixels before a press becomes a drag
	TooltipDelay float32 `toml:"tooltip_delay"` // Hover time in seconds before help text shows (0 disables)
	ScrollSpeed  float32 `toml:"scroll_speed"`  // Rows scrolled per wheel notch
}

// DefaultConfig returns the settings used when no config is supplied.
func DefaultConfig() Config {
	return Config{
		UIScale:      1,
		TextScale:    1,
		DragDeadzone: 3,
		TooltipDelay: 0.6,
		ScrollSpeed:  3,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.UIScale <= 0:
		return fmt.Errorf("%w: ui_scale must be positive, got %g", ErrInvalidConfig, c.UIScale)
	case c.TextScale <= 0:
		return fmt.Errorf("%w: text_scale must be positive, got %g", ErrInvalidConfig, c.TextScale)
	case c.DragDeadzone < 0:
		return fmt.Errorf("%w: drag_deadzone must not be negative, got %g", ErrInvalidConfig, c.DragDeadzone)
	case c.TooltipDelay < 0:
		return fmt.Errorf("%w: tooltip_delay must not be negative, got %g", ErrInvalidConfig, c.TooltipDelay)
	case c.ScrollSpeed < 0:
		return fmt.Errorf("%w: scroll_speed must not be negative, got %g", ErrInvalidConfig, c.ScrollSpeed)
	}
	return nil
}

// LoadConfig decodes TOML from r on top of DefaultConfig and validates it.
// Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: decode: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes a TOML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return LoadConfig(bytes.NewReader(data))
}

// EncodeTOML encodes the config, e.g. to write a starting file for users.
func (c Config) EncodeTOML() ([]byte, error) {
	return toml.Marshal(c)
}
