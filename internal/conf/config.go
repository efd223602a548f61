// Package conf loads and persists the WLDS-Go configuration using viper.
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/viper"
	"github.com/wlds/wlds-go/internal/errors"
)

// Theme values persisted in the configuration. Light is the default when
// the preference is unset.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// MainSettings contains top-level application settings.
type MainSettings struct {
	Name  string // application instance name
	Theme string // UI theme preference, "light" or "dark"
}

// PanelSettings contains settings for the control panel daemon.
type PanelSettings struct {
	Listen       string // listen address for the panel HTTP API
	HistoryLimit int    // maximum retained detection history entries
}

// ClassifierSettings contains settings for the remote classifier.
type ClassifierSettings struct {
	URL    string // base URL of the classification endpoint
	Listen string // listen address for the built-in demo classifier
}

// AudioSettings contains audio capture settings.
type AudioSettings struct {
	Source string // capture device name, e.g. "sysdefault"
}

// CameraSettings contains camera capture settings.
type CameraSettings struct {
	SnapshotURL string // snapshot endpoint of the device camera daemon
}

// CaptureSettings groups the device capture settings.
type CaptureSettings struct {
	Audio  AudioSettings
	Camera CameraSettings
}

// Settings is the root configuration structure.
type Settings struct {
	Debug      bool
	Main       MainSettings
	Panel      PanelSettings
	Classifier ClassifierSettings
	Capture    CaptureSettings
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration into the package-level settings instance.
// The first call initializes viper; later calls return the cached instance.
func Load() (*Settings, error) {
	var loadErr error
	once.Do(func() {
		settings := &Settings{}

		if err := initViper(); err != nil {
			loadErr = fmt.Errorf("error initializing viper: %w", err)
			return
		}

		if err := viper.Unmarshal(settings); err != nil {
			loadErr = fmt.Errorf("error unmarshaling config into struct: %w", err)
			return
		}

		if err := ValidateSettings(settings); err != nil {
			loadErr = fmt.Errorf("error validating settings: %w", err)
			return
		}

		settingsMutex.Lock()
		settingsInstance = settings
		settingsMutex.Unlock()
	})
	if loadErr != nil {
		return nil, loadErr
	}
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance, nil
}

// Setting returns the current settings instance, loading it if needed.
func Setting() *Settings {
	settingsMutex.RLock()
	s := settingsInstance
	settingsMutex.RUnlock()
	if s == nil {
		loaded, err := Load()
		if err != nil {
			return nil
		}
		return loaded
	}
	return s
}

// ValidateSettings checks settings values that have a constrained domain.
func ValidateSettings(settings *Settings) error {
	switch settings.Main.Theme {
	case ThemeLight, ThemeDark:
	case "":
		settings.Main.Theme = ThemeLight
	default:
		return errors.Newf("invalid theme %q", settings.Main.Theme).
			Component("conf").
			Category(errors.CategoryValidation).
			Context("theme", settings.Main.Theme).
			Build()
	}
	if settings.Panel.HistoryLimit <= 0 {
		return errors.Newf("history limit must be positive, got %d", settings.Panel.HistoryLimit).
			Component("conf").
			Category(errors.CategoryValidation).
			Build()
	}
	return nil
}

// SaveTheme persists the theme preference, the single durable setting.
func SaveTheme(settings *Settings, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return errors.Newf("invalid theme %q", theme).
			Component("conf").
			Category(errors.CategoryValidation).
			Context("theme", theme).
			Build()
	}

	settingsMutex.Lock()
	settings.Main.Theme = theme
	settingsMutex.Unlock()

	viper.Set("main.theme", theme)
	if err := viper.WriteConfig(); err != nil {
		return errors.New(err).
			Component("conf").
			Category(errors.CategoryFileIO).
			Context("operation", "write_config").
			Build()
	}
	return nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	setDefaultConfig()

	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig writes a config file with default values to the first
// default config path and points viper at it.
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")

	if err := os.MkdirAll(configPaths[0], 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	if err := viper.SafeWriteConfigAs(configPath); err != nil {
		if _, ok := err.(viper.ConfigFileAlreadyExistsError); !ok {
			return fmt.Errorf("error writing default config file: %w", err)
		}
	}

	return viper.ReadInConfig()
}

// GetDefaultConfigPaths returns OS specific paths for looking up config files.
func GetDefaultConfigPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error fetching user directory: %w", err)
	}

	var configPaths []string
	switch runtime.GOOS {
	case "windows":
		configPaths = []string{
			filepath.Join(homeDir, "AppData", "Local", "wlds-go"),
			".",
		}
	default:
		configPaths = []string{
			filepath.Join(homeDir, ".config", "wlds-go"),
			".",
		}
	}

	return configPaths, nil
}
