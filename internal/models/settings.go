package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/moodatlas/internal/constants"
)

// Settings represents per-database application settings
type Settings struct {
	Timezone         string `json:"timezone"`          // IANA timezone name or "Local"
	DefaultUser      string `json:"default_user"`      // username used when --user is omitted
	RemindersEnabled bool   `json:"reminders_enabled"` // whether `remind` sends notifications
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingDefaultUser:
			settings.DefaultUser = value
		case constants.SettingRemindersEnabled:
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", constants.SettingRemindersEnabled, err)
			}
			settings.RemindersEnabled = enabled
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:         settings.Timezone,
		constants.SettingDefaultUser:      settings.DefaultUser,
		constants.SettingRemindersEnabled: strconv.FormatBool(settings.RemindersEnabled),
	}
}

// DefaultSettings returns the settings written on first initialization.
func DefaultSettings() Settings {
	return Settings{
		Timezone:         constants.DefaultTimezone,
		RemindersEnabled: constants.DefaultRemindersEnabled,
	}
}
