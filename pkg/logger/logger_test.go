package logger

import (
	"dsa_tracker_backend/internal/config"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	cases := []struct {
		mode, level string
		want        zapcore.Level
	}{
		{"debug", "", zapcore.DebugLevel},
		{"release", "", zapcore.InfoLevel},
		{"release", "error", zapcore.ErrorLevel},
		{"debug", "warn", zapcore.WarnLevel},
		{"release", "bogus", zapcore.InfoLevel},
	}
	for _, tc := range cases {
		cfg := &config.Config{Server: config.ServerConfig{Mode: tc.mode}, Log: config.LogConfig{Level: tc.level}}
		SetLevel(cfg)
		if got := Level(); got != tc.want {
			t.Errorf("mode=%s level=%q: got %s, want %s", tc.mode, tc.level, got, tc.want)
		}
	}
}
