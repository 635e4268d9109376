package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	StorageFile           = "file"
	StorageSQLite         = "sqlite"
)

type Keymap struct {
	Quit    string `toml:"quit"`
	Add     string `toml:"add"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	Toggle  string `toml:"toggle"`
	Delete  string `toml:"delete"`
	Edit    string `toml:"edit"`
	Notes   string `toml:"notes"`
	Notify  string `toml:"notify"`
	Confirm string `toml:"confirm"`
	Cancel  string `toml:"cancel"`
}

type Config struct {
	DataDir              string `toml:"data_dir"`
	Storage              string `toml:"storage"`
	DesktopNotifications bool   `toml:"desktop_notifications"`
	Keys                 Keymap `toml:"keys"`
}

func (c Config) Validate() error {
	switch c.Storage {
	case StorageFile, StorageSQLite:
		return nil
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage)
	}
}

// ResolveConfigPath places the config beside the user's other app configs,
// falling back to the working directory when none is resolvable.
func ResolveConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(base, "tickler", DefaultConfigFileName)
}

// LoadOrCreate reads the config, writing one with defaults on first launch.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Dir(path)
	}
	if cfg.Storage == "" {
		cfg.Storage = StorageFile
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save rewrites the config, keeping toggles like desktop notifications
// across launches.
func Save(path string, cfg Config) error {
	return write(path, cfg)
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{
		DataDir:              dir,
		Storage:              StorageFile,
		DesktopNotifications: false,
		Keys: Keymap{
			Quit:    "q",
			Add:     "a",
			Up:      "k",
			Down:    "j",
			Toggle:  " ",
			Delete:  "d",
			Edit:    "e",
			Notes:   "enter",
			Notify:  "n",
			Confirm: "enter",
			Cancel:  "esc",
		},
	}
}
