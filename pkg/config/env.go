// Package config reads typed settings from environment variables and
// validates them.
//
// The GetEnv* helpers never fail: an unset variable yields the default and
// an unparsable one yields the default plus a warning log, so a typo in an
// optional knob does not stop the process.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnv parses key with parse, falling back to def when the variable is
// unset or malformed.
func getEnv[T any](key string, def T, kind string, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("invalid "+kind+" value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", def),
			slog.String("error", err.Error()))
		return def
	}
	return v
}

// GetEnvString returns the variable, or defaultValue when unset or empty.
func GetEnvString(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvInt returns the variable parsed as a base-10 integer.
func GetEnvInt(key string, defaultValue int) int {
	return getEnv(key, defaultValue, "integer", strconv.Atoi)
}

// GetEnvFloat returns the variable parsed as a float64.
//
//	temperature := GetEnvFloat("SUMMARIZER_TEMPERATURE", 0.3)
func GetEnvFloat(key string, defaultValue float64) float64 {
	return getEnv(key, defaultValue, "float", func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// GetEnvBool returns the variable parsed by strconv.ParseBool
// (1, t, true, 0, f, false and their upper-case forms).
func GetEnvBool(key string, defaultValue bool) bool {
	return getEnv(key, defaultValue, "boolean", strconv.ParseBool)
}

// GetEnvDuration returns the variable parsed by time.ParseDuration, e.g. "90s" or "1m30s".
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return getEnv(key, defaultValue, "duration", time.ParseDuration)
}
