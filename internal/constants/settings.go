package constants

const (
	SettingTimezone         = "timezone"
	SettingDefaultUser      = "default_user"
	SettingRemindersEnabled = "reminders_enabled"

	DefaultTimezone         = "Local" // Use system local timezone by default
	DefaultRemindersEnabled = true
)
