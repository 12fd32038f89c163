package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLevel(tc.level))
		})
	}
}

func TestNew_WritesJSONToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Output: &buf})

	logger.Info().Str("key", "value").Msg("test message")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "test message", event["message"])
	assert.Equal(t, "value", event["key"])
	assert.Equal(t, "info", event["level"])
	assert.Contains(t, event, "time")
}

func TestNew_LevelFiltersLower(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "error", Output: &buf})

	logger.Info().Msg("should not appear")
	assert.NotContains(t, buf.String(), "should not appear")

	logger.Error().Msg("should appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestNew_PrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Pretty: true, Output: &buf})

	logger.Debug().Msg("pretty message")
	assert.Contains(t, buf.String(), "pretty message")
}

func TestCalculationLogger(t *testing.T) {
	var buf bytes.Buffer
	calc := NewCalculationLogger(New(Config{Level: "debug", Output: &buf}), "engine")

	calc.Debugf("step %d", 3)
	calc.Infof("rate %.2f", 0.25)
	calc.Warnf("discarded %d", 4)
	calc.Errorf("failed: %s", "boom")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)

	wantLevels := []string{"debug", "info", "warn", "error"}
	wantMessages := []string{"step 3", "rate 0.25", "discarded 4", "failed: boom"}
	for i, line := range lines {
		var event map[string]any
		require.NoError(t, json.Unmarshal(line, &event))
		assert.Equal(t, wantLevels[i], event["level"])
		assert.Equal(t, wantMessages[i], event["message"])
		assert.Equal(t, "engine", event["component"])
	}
}

func TestSetGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalLogger(New(Config{Output: &buf}))
	t.Cleanup(func() { SetGlobalLogger(zerolog.Nop()) })

	log.Info().Msg("global logger test")
	assert.Contains(t, buf.String(), "global logger test")
}
