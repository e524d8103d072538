package constants

const (
	AppName            = "moodatlas"
	DisplayName        = "MoodAtlas"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/moodatlas/moodatlas.db"
	DefaultConfigFile  = "~/.config/moodatlas/config.yaml"
	EnvPrefix          = "MOODATLAS"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// LongDateFormat is used when rendering entry dates for humans
	LongDateFormat = "Monday, January 02, 2006"

	// PeriodDateFormat is used for export periods
	PeriodDateFormat = "January 02, 2006"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "moodatlas-"
	BackupFileSuffix = ".db"

	// Analytics constants
	MostUsedTagsLimit = 5
	NoMoodsRecorded   = "No moods recorded"

	// Default colors and icons
	DefaultTagColor      = "#6c757d"
	DefaultCategoryColor = "#667eea"
	DefaultCategoryIcon  = "📝"
	DefaultEntryEmoji    = "📝"

	// Notification constants
	NotifyMaxRetries = 3

	// HTTP server
	DefaultServerAddr = "127.0.0.1:8787"
)
