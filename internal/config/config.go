package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds token verification settings. Token issuance lives in the
// auth collaborator; this service only verifies.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// AttendanceConfig holds the attendance policy knobs.
type AttendanceConfig struct {
	// Timezone is the office-local timezone all day boundaries and
	// time-of-day windows are evaluated in.
	Timezone *time.Location

	// WeeklyOffDays are non-working weekday indices, 0 = Sunday.
	WeeklyOffDays []int

	// CheckInWindowStart/End bound employee check-in, as seconds past
	// midnight. Elevated roles bypass the window.
	CheckInWindowStart time.Duration
	CheckInWindowEnd   time.Duration

	// SweepCutoff is the policy checkout time applied by the finalization
	// sweep to dangling check-ins, as seconds past midnight.
	SweepCutoff time.Duration

	// SweepInterval is how often the scheduler wakes up to check whether
	// yesterday still needs finalizing.
	SweepInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "ekaramchari"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Attendance policy
	loc, err := time.LoadLocation(getEnv("ATTENDANCE_TIMEZONE", "Asia/Kolkata"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}

	weeklyOff, err := parseWeekdays(getEnv("ATTENDANCE_WEEKLY_OFF", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_WEEKLY_OFF: %w", err)
	}

	windowStart, err := parseClock(getEnv("ATTENDANCE_CHECKIN_OPENS", "08:00:00"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_CHECKIN_OPENS: %w", err)
	}
	windowEnd, err := parseClock(getEnv("ATTENDANCE_CHECKIN_CLOSES", "17:00:00"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_CHECKIN_CLOSES: %w", err)
	}
	sweepCutoff, err := parseClock(getEnv("ATTENDANCE_SWEEP_CUTOFF", "17:00:00"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_SWEEP_CUTOFF: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("ATTENDANCE_SWEEP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_SWEEP_INTERVAL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Timezone:           loc,
		WeeklyOffDays:      weeklyOff,
		CheckInWindowStart: windowStart,
		CheckInWindowEnd:   windowEnd,
		SweepCutoff:        sweepCutoff,
		SweepInterval:      sweepInterval,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.CheckInWindowEnd <= c.Attendance.CheckInWindowStart {
		return fmt.Errorf("ATTENDANCE_CHECKIN_CLOSES must be after ATTENDANCE_CHECKIN_OPENS")
	}
	if len(c.Attendance.WeeklyOffDays) >= 7 {
		return fmt.Errorf("ATTENDANCE_WEEKLY_OFF cannot cover the whole week")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseWeekdays parses a comma-separated list of weekday indices (0=Sunday).
func parseWeekdays(value string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(value, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("weekday index %d out of range", d)
		}
		days = append(days, d)
	}
	return days, nil
}

// parseClock parses "HH:MM:SS" into an offset from midnight.
func parseClock(value string) (time.Duration, error) {
	t, err := time.Parse("15:04:05", value)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}
