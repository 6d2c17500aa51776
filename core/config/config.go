package config

import (
	"fmt"

	"appointments-api/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // in minutes
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

// AppointmentsConfig carries the runtime settings of the scheduling core.
type AppointmentsConfig struct {
	// FirstDayOfWeek selects the weekday that starts a Week period,
	// 0=Sunday .. 6=Saturday.
	FirstDayOfWeek int `mapstructure:"first_day_of_week"`

	// EventDuration is the default length (in minutes) of a new event
	// when the request omits an end time.
	EventDuration int `mapstructure:"event_duration"`

	// ShowCancelledOccurrences controls whether period classification
	// keeps cancelled occurrences (tagged "cancelled") or drops them.
	ShowCancelledOccurrences bool `mapstructure:"show_cancelled_occurrences"`

	// OccurrenceCancelRedirect, when set, is returned to clients after a
	// cancellation so they know where to navigate next.
	OccurrenceCancelRedirect string `mapstructure:"occurrence_cancel_redirect"`
}

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Appointments AppointmentsConfig `mapstructure:"appointments"`
}

var instance *Config

// Get returns the loaded configuration. Load must have been called.
func Get() *Config {
	return instance
}

// Load reads configuration from config.yaml (optional) and the
// environment, validates it and stores the global instance.
func Load() (*Config, error) {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		logger.Debug("config: no .env file loaded")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("server.port", 7070)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "appointments")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry_hours", 24)
	v.SetDefault("appointments.first_day_of_week", 0)
	v.SetDefault("appointments.event_duration", 30)
	v.SetDefault("appointments.show_cancelled_occurrences", false)
	v.SetDefault("appointments.occurrence_cancel_redirect", "")

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	bindEnvAliases(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Appointments.FirstDayOfWeek < 0 || cfg.Appointments.FirstDayOfWeek > 6 {
		return nil, fmt.Errorf("appointments.first_day_of_week must be an integer between 0 and 6, got %d",
			cfg.Appointments.FirstDayOfWeek)
	}
	if cfg.Appointments.EventDuration <= 0 {
		return nil, fmt.Errorf("appointments.event_duration must be positive, got %d",
			cfg.Appointments.EventDuration)
	}

	instance = &cfg
	return instance, nil
}

func bindEnvAliases(v *viper.Viper) {
	aliases := map[string]string{
		"server.port":                             "SERVER_PORT",
		"database.host":                           "DB_HOST",
		"database.port":                           "DB_PORT",
		"database.user":                           "DB_USER",
		"database.password":                       "DB_PASSWORD",
		"database.name":                           "DB_NAME",
		"database.sslmode":                        "DB_SSLMODE",
		"jwt.secret":                              "JWT_SECRET",
		"jwt.expiry_hours":                        "JWT_EXPIRY_HOURS",
		"appointments.first_day_of_week":          "APPOINTMENTS_FIRST_DAY_OF_WEEK",
		"appointments.event_duration":             "APPOINTMENTS_EVENT_DURATION",
		"appointments.show_cancelled_occurrences": "APPOINTMENTS_SHOW_CANCELLED_OCCURRENCES",
		"appointments.occurrence_cancel_redirect": "APPOINTMENTS_OCCURRENCE_CANCEL_REDIRECT",
	}
	for key, env := range aliases {
		_ = v.BindEnv(key, env)
	}
}
