package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	OCR      OCRConfig
	Payroll  PayrollConfig
	Calendar CalendarConfig
	Uploads  UploadsConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// OCRConfig tunes the external recognition engine.
type OCRConfig struct {
	Binary      string
	Concurrency int
	Timeout     time.Duration
	CacheTTL    time.Duration
}

// PayrollConfig carries fallback pay rates and the weekend definition.
type PayrollConfig struct {
	DefaultDayRate           float64
	DefaultNightDifferential float64
	WeekendDays              []time.Weekday
}

// CalendarConfig sets defaults for generated calendar files.
type CalendarConfig struct {
	Name        string
	Timezone    string
	Location    string
	DisplayRate float64
}

// UploadsConfig controls temporary image storage.
type UploadsConfig struct {
	Dir             string
	MaxFileSize     int64
	CleanupInterval time.Duration
	TTL             time.Duration
}

// Load reads configuration from .env and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		Enabled:  v.GetBool("REDIS_ENABLED"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.OCR = OCRConfig{
		Binary:      v.GetString("OCR_BINARY"),
		Concurrency: v.GetInt("OCR_CONCURRENCY"),
		Timeout:     parseDuration(v.GetString("OCR_TIMEOUT"), 2*time.Minute),
		CacheTTL:    parseDuration(v.GetString("OCR_CACHE_TTL"), 24*time.Hour),
	}

	cfg.Payroll = PayrollConfig{
		DefaultDayRate:           v.GetFloat64("PAYROLL_DAY_RATE"),
		DefaultNightDifferential: v.GetFloat64("PAYROLL_NIGHT_DIFFERENTIAL"),
		WeekendDays:              parseWeekdays(v.GetString("PAYROLL_WEEKEND_DAYS")),
	}

	cfg.Calendar = CalendarConfig{
		Name:        v.GetString("CALENDAR_NAME"),
		Timezone:    v.GetString("CALENDAR_TIMEZONE"),
		Location:    v.GetString("CALENDAR_LOCATION"),
		DisplayRate: v.GetFloat64("CALENDAR_DISPLAY_RATE"),
	}

	maxUploadSize := v.GetInt64("UPLOADS_MAX_FILE_SIZE")
	if maxUploadSize <= 0 {
		maxUploadSize = 10 * 1024 * 1024
	}
	cfg.Uploads = UploadsConfig{
		Dir:             v.GetString("UPLOADS_DIR"),
		MaxFileSize:     maxUploadSize,
		CleanupInterval: parseDuration(v.GetString("UPLOADS_CLEANUP_INTERVAL"), time.Hour),
		TTL:             parseDuration(v.GetString("UPLOADS_TTL"), time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_ENABLED", false)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("OCR_BINARY", "tesseract")
	v.SetDefault("OCR_CONCURRENCY", 2)

	v.SetDefault("PAYROLL_DAY_RATE", 50)
	v.SetDefault("PAYROLL_NIGHT_DIFFERENTIAL", 5)
	v.SetDefault("PAYROLL_WEEKEND_DAYS", "friday,saturday")

	v.SetDefault("CALENDAR_NAME", "Work Shifts")
	v.SetDefault("CALENDAR_TIMEZONE", "Asia/Jerusalem")
	v.SetDefault("CALENDAR_LOCATION", "Workplace")
	v.SetDefault("CALENDAR_DISPLAY_RATE", 50)

	v.SetDefault("UPLOADS_DIR", "./uploads")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekdays(raw string) []time.Weekday {
	days := make([]time.Weekday, 0, 2)
	for _, name := range splitAndTrim(raw) {
		if d, ok := weekdayNames[strings.ToLower(name)]; ok {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		days = []time.Weekday{time.Friday, time.Saturday}
	}
	return days
}
