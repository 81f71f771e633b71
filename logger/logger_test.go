package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewZapConfig(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		isTest      bool
		outputs     []string
		encoding    string
	}{
		{name: "production logs to stderr", environment: "production", outputs: []string{"stderr"}, encoding: "json"},
		{name: "development logs to stderr", environment: "development", outputs: []string{"stderr"}, encoding: "console"},
		{name: "tests log to stdout", environment: "production", isTest: true, outputs: []string{"stdout"}, encoding: "console"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newZapConfig(tt.environment, tt.isTest, zapcore.WarnLevel)

			assert.Equal(t, tt.outputs, cfg.OutputPaths)
			assert.NotContains(t, cfg.ErrorOutputPaths, "stdout")
			assert.Equal(t, tt.encoding, cfg.Encoding)
			assert.Equal(t, zapcore.WarnLevel, cfg.Level.Level())
		})
	}
}
