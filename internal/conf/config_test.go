package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(s *Settings) {}, false},
		{"dark_theme", func(s *Settings) { s.Main.Theme = ThemeDark }, false},
		{"unknown_theme", func(s *Settings) { s.Main.Theme = "solarized" }, true},
		{"zero_history_limit", func(s *Settings) { s.Panel.HistoryLimit = 0 }, true},
		{"negative_history_limit", func(s *Settings) { s.Panel.HistoryLimit = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := &Settings{
				Main:  MainSettings{Theme: ThemeLight},
				Panel: PanelSettings{HistoryLimit: 10},
			}
			tt.mutate(settings)

			err := ValidateSettings(settings)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSettingsEmptyThemeDefaultsToLight(t *testing.T) {
	settings := &Settings{Panel: PanelSettings{HistoryLimit: 10}}

	require.NoError(t, ValidateSettings(settings))
	assert.Equal(t, ThemeLight, settings.Main.Theme)
}

func TestSaveThemeRejectsUnknownValue(t *testing.T) {
	settings := &Settings{
		Main:  MainSettings{Theme: ThemeLight},
		Panel: PanelSettings{HistoryLimit: 10},
	}

	err := SaveTheme(settings, "solarized")
	require.Error(t, err)
	assert.Equal(t, ThemeLight, settings.Main.Theme, "rejected theme must not change the setting")
}

func TestGetDefaultConfigPaths(t *testing.T) {
	paths, err := GetDefaultConfigPaths()
	require.NoError(t, err)
	assert.NotEmpty(t, paths)
}
