package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fotosort/internal/errors"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// SlotCount is the number of destination slots reachable from the keyboard.
const SlotCount = 5

// Transfer modes accepted by settings.default_mode.
const (
	ModeCopy = "copy"
	ModeMove = "move"
)

// Collision strategies accepted by settings.collision.
const (
	CollisionRename    = "rename"
	CollisionSkip      = "skip"
	CollisionOverwrite = "overwrite"
)

// Config represents the application configuration structure.
// It maps destination slots to folders and tunes how files are transferred.
type Config struct {
	Slots    []string `yaml:"slots"`    // Folder name per slot, index 0 is slot 1
	Settings Settings `yaml:"settings"` // Transfer behaviour
	Filter   Filter   `yaml:"filter"`   // Startup candidate filter
	Theme    Theme    `yaml:"theme"`    // Terminal colours
}

// Settings holds transfer and session behaviour.
type Settings struct {
	DefaultMode     string `yaml:"default_mode"`     // copy or move
	DestinationRoot string `yaml:"destination_root"` // Parent of the slot folders
	CreateDirs      bool   `yaml:"create_dirs"`      // Create slot folders on first use
	Collision       string `yaml:"collision"`        // rename, skip or overwrite
	Watch           bool   `yaml:"watch"`            // Drop candidates removed by other programs
}

// Filter restricts which command line paths become candidates.
type Filter struct {
	Include []string `yaml:"include"` // Base name globs; empty means everything
	Exclude []string `yaml:"exclude"` // Base name globs removed after include
}

// Theme holds terminal colours as lipgloss colour strings.
type Theme struct {
	Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
	Primary  string `yaml:"primary"`  // Primary color for branding
	Success  string `yaml:"success"`  // Success message color
	Warning  string `yaml:"warning"`  // Warning message color
	Error    string `yaml:"error"`    // Error message color
	Info     string `yaml:"info"`     // Informational message color
	Emphasis string `yaml:"emphasis"` // Emphasis color for text that should stand out
	Border   string `yaml:"border"`   // Border color for frames
}

// DefaultPath returns ~/.config/fotosort/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fotosort", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Decoding over the defaults keeps every key the file leaves out.
	// Theme colours are resolved from the name afterwards.
	cfg.Theme = Theme{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if cfg.Theme.Primary == "" {
		name := cfg.Theme.Name
		if name == "" {
			name = "default"
		}
		cfg.ApplyTheme(name)
	}
	cfg.Settings.DefaultMode = strings.ToLower(cfg.Settings.DefaultMode)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Slots = make([]string, SlotCount)
	for i := range cfg.Slots {
		cfg.Slots[i] = fmt.Sprintf("fs%d", i+1)
	}

	cfg.Settings.DefaultMode = ModeCopy // Non-destructive by default
	cfg.Settings.DestinationRoot = "."
	cfg.Settings.CreateDirs = true
	cfg.Settings.Collision = CollisionRename
	cfg.Settings.Watch = false

	cfg.Filter.Include = []string{}
	cfg.Filter.Exclude = []string{}

	cfg.ApplyTheme("default")

	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	if len(c.Slots) != SlotCount {
		return errors.NewConfigError(
			fmt.Sprintf("expected %d slots, got %d", SlotCount, len(c.Slots)),
			"slots", errors.InvalidConfig, nil)
	}
	seen := make(map[string]int, SlotCount)
	for i, name := range c.Slots {
		clean := filepath.Clean(strings.TrimSpace(name))
		if strings.TrimSpace(name) == "" || clean == "." {
			return errors.NewConfigError(fmt.Sprintf("slot %d: folder name is required", i+1),
				"slots", errors.InvalidConfig, nil)
		}
		if prev, dup := seen[clean]; dup {
			return errors.NewConfigError(fmt.Sprintf("slot %d: same folder as slot %d", i+1, prev),
				"slots", errors.InvalidConfig, nil)
		}
		seen[clean] = i + 1
	}

	switch c.Settings.DefaultMode {
	case ModeCopy, ModeMove:
	default:
		return errors.NewConfigError("invalid default mode: "+c.Settings.DefaultMode,
			"settings.default_mode", errors.InvalidConfig, nil)
	}

	switch c.Settings.Collision {
	case CollisionRename, CollisionSkip, CollisionOverwrite:
	default:
		return errors.NewConfigError("invalid collision setting: "+c.Settings.Collision,
			"settings.collision", errors.InvalidConfig, nil)
	}

	if c.Settings.DestinationRoot == "" {
		return errors.NewConfigError("destination root is required",
			"settings.destination_root", errors.InvalidConfig, nil)
	}
	if info, err := os.Stat(c.Settings.DestinationRoot); err != nil {
		if !os.IsNotExist(err) {
			return errors.NewConfigError("error accessing destination root",
				"settings.destination_root", errors.InvalidConfig, err)
		}
		if !c.Settings.CreateDirs {
			return errors.NewConfigError("destination root does not exist and create_dirs is false",
				"settings.destination_root", errors.InvalidConfig, nil)
		}
	} else if !info.IsDir() {
		return errors.NewConfigError("destination root is not a directory",
			"settings.destination_root", errors.InvalidConfig, nil)
	}

	for _, list := range [][]string{c.Filter.Include, c.Filter.Exclude} {
		for _, pattern := range list {
			if _, err := glob.Compile(pattern); err != nil {
				return errors.NewConfigError("invalid filter pattern "+pattern,
					"filter", errors.InvalidConfig, err)
			}
		}
	}

	return nil
}

// SlotDir returns the folder for slot n (1-based) under the destination root.
func (c *Config) SlotDir(n int) (string, error) {
	if n < 1 || n > len(c.Slots) {
		return "", errors.Wrapf(errors.ErrInvalidSlot, "slot %d", n)
	}
	name := c.Slots[n-1]
	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}
	return filepath.Join(c.Settings.DestinationRoot, name), nil
}

// MoveByDefault reports whether slot assignments move rather than copy
// when no override key is held.
func (c *Config) MoveByDefault() bool {
	return c.Settings.DefaultMode == ModeMove
}

// NewTestConfig creates a configuration rooted at dir for tests.
func NewTestConfig(dir string) *Config {
	cfg := defaultConfig()
	cfg.Settings.DestinationRoot = dir
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
			"border":   "213", // Purple
		},
		"dark": {
			"primary":  "105",
			"success":  "78",
			"warning":  "214",
			"error":    "160",
			"info":     "33",
			"emphasis": "147",
			"border":   "105",
		},
		"light": {
			"primary":  "135",
			"success":  "150",
			"warning":  "222",
			"error":    "210",
			"info":     "117",
			"emphasis": "219",
			"border":   "135",
		},
		"monochrome": {
			"primary":  "245",
			"success":  "252",
			"warning":  "241",
			"error":    "232",
			"info":     "248",
			"emphasis": "255",
			"border":   "245",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ApplyTheme sets the theme colours from a predefined theme name.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
