package main

import (
	"testing"

	"github.com/jamesainslie/manifestgen/pkg/manifestgen/config"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/logging"
)

func TestParseRotationConfig(t *testing.T) {
	tests := []struct {
		name     string
		input    config.RotationConfig
		expected logging.RotationConfig
	}{
		{
			name: "default values",
			input: config.RotationConfig{
				MaxSize:    "10MB",
				MaxAge:     14,
				MaxBackups: 3,
			},
			expected: logging.RotationConfig{
				MaxSize:    10 * 1000 * 1000,
				MaxAge:     14,
				MaxBackups: 3,
			},
		},
		{
			name: "binary units",
			input: config.RotationConfig{
				MaxSize:    "1GiB",
				MaxAge:     7,
				MaxBackups: 2,
				Daily:      true,
			},
			expected: logging.RotationConfig{
				MaxSize:    1024 * 1024 * 1024,
				MaxAge:     7,
				MaxBackups: 2,
				Daily:      true,
			},
		},
		{
			name:     "empty max_size uses default",
			input:    config.RotationConfig{MaxAge: 1},
			expected: logging.RotationConfig{MaxSize: logging.DefaultMaxSize, MaxAge: 1},
		},
		{
			name:     "invalid max_size uses default",
			input:    config.RotationConfig{MaxSize: "huge", MaxBackups: 4},
			expected: logging.RotationConfig{MaxSize: logging.DefaultMaxSize, MaxBackups: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseRotationConfig(tt.input); got != tt.expected {
				t.Errorf("parseRotationConfig() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestLoggingConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Logging.Level = "warn"
	cfg.Logging.Format = "json"
	cfg.Logging.Path = "/tmp/manifestgen.log"

	lc := loggingConfig(cfg, false, "run-1")
	if lc.Level != "warn" || lc.Format != "json" || lc.Path != "/tmp/manifestgen.log" {
		t.Errorf("loggingConfig() = %+v", lc)
	}
	if lc.ConsoleLevel != "" {
		t.Errorf("ConsoleLevel = %q, want empty without --verbose", lc.ConsoleLevel)
	}
	if len(lc.Fields) != 2 || lc.Fields[0] != "run" || lc.Fields[1] != "run-1" {
		t.Errorf("Fields = %v, want run id", lc.Fields)
	}

	verbose := loggingConfig(cfg, true, "run-2")
	if verbose.Level != "debug" || verbose.ConsoleLevel != "debug" {
		t.Errorf("verbose loggingConfig() = %+v, want debug file and console", verbose)
	}
}
