package config

// Config holds all application configuration.
type Config struct {
	// Database is a SQLite file path or a PostgreSQL connection string.
	Database  string          `mapstructure:"database" validate:"required"`
	User      string          `mapstructure:"user" validate:"omitempty,max=50"`
	Timezone  string          `mapstructure:"timezone" validate:"tz"`
	Debug     bool            `mapstructure:"debug"`
	Server    ServerConfig    `mapstructure:"server"`
	Reminders RemindersConfig `mapstructure:"reminders"`
}

// ServerConfig contains the read-only HTTP API settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required,hostname_port"`
}

// RemindersConfig controls the `remind` command.
type RemindersConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
