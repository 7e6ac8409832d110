package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no input", func(c *Config) { c.Scenario = "" }},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }},
		{"negative sweeps", func(c *Config) { c.MaxSweeps = -1 }},
		{"discount above one", func(c *Config) { c.Discount = 1.1 }},
		{"gamma above one", func(c *Config) { c.Gamma = 2 }},
		{"bad discipline", func(c *Config) { c.Discipline = "random" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestSlogLevel(t *testing.T) {
	c := Default()
	c.LogLevel = "DEBUG"
	level, err := c.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}
