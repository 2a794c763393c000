package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr       = ":8080"
	defaultJWTAccessTTL   = "15m"
	defaultRefreshTTL     = "168h"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultRefreshPepper  = "change-me-refresh-pepper"
	defaultRoomHourlyRate = "1000"
	defaultRefundWindows  = "24h=1,2h=0.5"
	defaultDatabaseURL    = "coworking.db"
)

// RefundWindow maps a minimum lead time before booking start to the fraction
// of the final price refunded on cancellation.
type RefundWindow struct {
	MinLead  time.Duration
	Fraction float64
}

// BookingConfig carries the business constants of the booking engine.
// Nothing here may be hardcoded in the calculation functions.
type BookingConfig struct {
	// DefaultRoomHourlyRate is the fallback hourly rate for room-type
	// workstations whose base_price_per_hour is not populated.
	DefaultRoomHourlyRate float64
	// RefundWindows is sorted by MinLead descending. Cancellation with lead
	// time below the smallest window refunds nothing.
	RefundWindows []RefundWindow
}

type Config struct {
	AppEnv             string
	HTTPAddr           string
	DatabaseURL        string
	JWTSecret          string
	JWTAccessTTL       time.Duration
	RefreshTTL         time.Duration
	RefreshTokenPepper string
	Booking            BookingConfig
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RefreshTokenPepper = strings.TrimSpace(getEnv("REFRESH_TOKEN_PEPPER", defaultRefreshPepper))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(getEnv("DEFAULT_ROOM_HOURLY_RATE", defaultRoomHourlyRate)), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_ROOM_HOURLY_RATE: %w", err)
	}
	cfg.Booking.DefaultRoomHourlyRate = rate

	cfg.Booking.RefundWindows, err = ParseRefundWindows(getEnv("REFUND_WINDOWS", defaultRefundWindows))
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParseRefundWindows parses "24h=1,2h=0.5" into windows sorted by lead time
// descending.
func ParseRefundWindows(raw string) ([]RefundWindow, error) {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	windows := make([]RefundWindow, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid refund window %q: want <lead>=<fraction>", p)
		}
		lead, err := time.ParseDuration(strings.TrimSpace(kv[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid refund window lead %q: %w", kv[0], err)
		}
		frac, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid refund window fraction %q: %w", kv[1], err)
		}
		if lead <= 0 {
			return nil, fmt.Errorf("refund window lead must be > 0, got %s", lead)
		}
		if frac < 0 || frac > 1 {
			return nil, fmt.Errorf("refund window fraction must be in [0,1], got %v", frac)
		}
		windows = append(windows, RefundWindow{MinLead: lead, Fraction: frac})
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("REFUND_WINDOWS must define at least one window")
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].MinLead > windows[j].MinLead })
	return windows, nil
}

func validate(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TTL must be > 0")
	}
	if cfg.Booking.DefaultRoomHourlyRate <= 0 {
		return fmt.Errorf("DEFAULT_ROOM_HOURLY_RATE must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.RefreshTokenPepper, defaultRefreshPepper) {
			return fmt.Errorf("in prod/release REFRESH_TOKEN_PEPPER must be set and not default")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
