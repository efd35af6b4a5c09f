package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	assert.Equal(t, "gemini", GetEnvString("TEST_PROVIDER_UNSET", "gemini"))

	t.Setenv("TEST_PROVIDER", "claude")
	assert.Equal(t, "claude", GetEnvString("TEST_PROVIDER", "gemini"))
}

func TestGetEnvTyped(t *testing.T) {
	tests := []struct {
		name  string
		value string
		get   func() any
		want  any
	}{
		{name: "int", value: "30000", get: func() any { return GetEnvInt("TEST_VALUE", 1) }, want: 30000},
		{name: "int with spaces", value: " 42 ", get: func() any { return GetEnvInt("TEST_VALUE", 1) }, want: 42},
		{name: "bad int", value: "30k", get: func() any { return GetEnvInt("TEST_VALUE", 1) }, want: 1},
		{name: "unset int", value: "", get: func() any { return GetEnvInt("TEST_VALUE", 7) }, want: 7},
		{name: "float", value: "0.7", get: func() any { return GetEnvFloat("TEST_VALUE", 0.1) }, want: 0.7},
		{name: "bad float", value: "seven", get: func() any { return GetEnvFloat("TEST_VALUE", 0.1) }, want: 0.1},
		{name: "bool", value: "false", get: func() any { return GetEnvBool("TEST_VALUE", true) }, want: false},
		{name: "bad bool", value: "nope", get: func() any { return GetEnvBool("TEST_VALUE", true) }, want: true},
		{name: "duration", value: "1m30s", get: func() any { return GetEnvDuration("TEST_VALUE", time.Second) }, want: 90 * time.Second},
		{name: "bad duration", value: "90", get: func() any { return GetEnvDuration("TEST_VALUE", time.Second) }, want: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_VALUE", tt.value)
			assert.Equal(t, tt.want, tt.get())
		})
	}
}
