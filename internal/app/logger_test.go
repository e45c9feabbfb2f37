package app

import (
	"testing"

	"github.com/sirupsen/logrus"

	"cabbooking/internal/config"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name      string
		cfg       config.LogConfig
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{name: "debug json", cfg: config.LogConfig{Level: "debug", Format: "json"}, wantLevel: logrus.DebugLevel, wantJSON: true},
		{name: "warn text", cfg: config.LogConfig{Level: "warn", Format: "text"}, wantLevel: logrus.WarnLevel},
		{name: "bad level falls back", cfg: config.LogConfig{Level: "loud"}, wantLevel: logrus.InfoLevel, wantJSON: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger := NewLogger(tc.cfg)
			if logger.GetLevel() != tc.wantLevel {
				t.Errorf("expected level %s, got %s", tc.wantLevel, logger.GetLevel())
			}
			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			if isJSON != tc.wantJSON {
				t.Errorf("expected json formatter %v, got %T", tc.wantJSON, logger.Formatter)
			}
		})
	}
}
