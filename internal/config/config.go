package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/rckarchitects/crashboard/internal/domain"
)

// Calendar source types
const (
	CalendarSourceMSGraph  = "msgraph"
	CalendarSourceICalFeed = "icalfeed"
)

// Config полная конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Cache        CacheConfig        `toml:"cache"`
	Scheduler    SchedulerConfig    `toml:"scheduler"`
	Calendar     CalendarConfig     `toml:"calendar"`
	Availability AvailabilityConfig `toml:"availability"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к базе данных
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CacheConfig настройки кэша результатов доступности
type CacheConfig struct {
	TTLSeconds int `toml:"ttl_seconds"`
	MaxEntries int `toml:"max_entries"`
}

// SchedulerConfig настройки фонового прогрева кэша
type SchedulerConfig struct {
	Enabled bool    `toml:"enabled"`
	Spec    string  `toml:"spec"` // формат crontab, например "*/10 * * * *"
	UserIDs []int64 `toml:"user_ids"`
}

// CalendarConfig настройки источника календаря
type CalendarConfig struct {
	Source   string         `toml:"source"`  // msgraph | icalfeed
	Timeout  int            `toml:"timeout"` // секунды
	MSGraph  MSGraphConfig  `toml:"msgraph"`
	ICalFeed ICalFeedConfig `toml:"icalfeed"`
}

// MSGraphConfig настройки клиента Microsoft Graph
type MSGraphConfig struct {
	BaseURL     string `toml:"base_url"`
	AccessToken string `toml:"access_token"`
}

// ICalFeedConfig настройки клиента iCalendar фида
type ICalFeedConfig struct {
	URL string `toml:"url"`
}

// AvailabilityConfig настройки окна рабочего дня
type AvailabilityConfig struct {
	Timezone        string `toml:"timezone"`
	WorkStartHour   int    `toml:"work_start_hour"`
	WorkEndHour     int    `toml:"work_end_hour"`
	LunchStartHour  int    `toml:"lunch_start_hour"`
	LunchEndHour    int    `toml:"lunch_end_hour"`
	BufferHours     int    `toml:"buffer_hours"`
	MinFreeMinutes  int    `toml:"min_free_minutes"`
	MaxDaysReturned int    `toml:"max_days_returned"`
}

// Policy возвращает политику рабочего дня: значения из конфига
// поверх значений по умолчанию
func (a AvailabilityConfig) Policy() domain.WorkDayPolicy {
	policy := domain.DefaultWorkDayPolicy()
	if a.WorkStartHour > 0 {
		policy.WorkStartHour = a.WorkStartHour
	}
	if a.WorkEndHour > 0 {
		policy.WorkEndHour = a.WorkEndHour
	}
	if a.LunchStartHour > 0 {
		policy.LunchStartHour = a.LunchStartHour
	}
	if a.LunchEndHour > 0 {
		policy.LunchEndHour = a.LunchEndHour
	}
	if a.BufferHours > 0 {
		policy.BufferHours = a.BufferHours
	}
	if a.MinFreeMinutes > 0 {
		policy.MinFreeMinutes = a.MinFreeMinutes
	}
	if a.MaxDaysReturned > 0 {
		policy.MaxDaysReturned = a.MaxDaysReturned
	}
	return policy
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			File:  "logs/app.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "crashboard",
		},
		Cache: CacheConfig{
			TTLSeconds: 600,
			MaxEntries: 1000,
		},
		Scheduler: SchedulerConfig{
			Spec: "*/10 * * * *",
		},
		Calendar: CalendarConfig{
			Source:  CalendarSourceICalFeed,
			Timeout: 10,
		},
		Availability: AvailabilityConfig{
			Timezone: "UTC",
		},
	}
}

func (c *Config) validate() error {
	switch c.Calendar.Source {
	case CalendarSourceMSGraph:
		if c.Calendar.MSGraph.BaseURL == "" {
			return fmt.Errorf("calendar.msgraph.base_url is required for source %q", c.Calendar.Source)
		}
	case CalendarSourceICalFeed:
		if c.Calendar.ICalFeed.URL == "" {
			return fmt.Errorf("calendar.icalfeed.url is required for source %q", c.Calendar.Source)
		}
	default:
		return fmt.Errorf("unknown calendar source %q", c.Calendar.Source)
	}

	if c.Scheduler.Enabled && len(c.Scheduler.UserIDs) == 0 {
		return fmt.Errorf("scheduler.user_ids is required when scheduler is enabled")
	}

	return nil
}
