package logging

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestParseTimeFormat(t *testing.T) {
	assert.Equal(t, time.Kitchen, parseTimeFormat("kitchen"))
	assert.Equal(t, time.RFC3339, parseTimeFormat("RFC3339"))
	assert.Equal(t, "", parseTimeFormat("unix"))
	assert.Equal(t, "2006-01-02", parseTimeFormat("2006-01-02"))
	assert.Equal(t, time.Kitchen, parseTimeFormat("whatever"))
}

func TestParseFields(t *testing.T) {
	fields := ParseFields("app=diecast, env = test,broken")
	assert.Equal(t, map[string]any{"app": "diecast", "env": "test"}, fields)
	assert.Empty(t, ParseFields(""))
}

func TestNewLoggerFromConfigWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diecast.log")
	logger := NewLoggerFromConfig(&Config{
		Level:  "info",
		Format: "json",
		Output: path,
		Fields: map[string]any{"app": "diecast"},
	})
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	logger.Info().Msg("hello")
	logger.Debug().Msg("hidden")

	data, err := readFile(path)
	require.NoError(t, err)
	assert.Contains(t, data, `"app":"diecast"`)
	assert.Contains(t, data, "hello")
	assert.NotContains(t, data, "hidden")
}

func TestContextHelpers(t *testing.T) {
	tl := NewTestLogger(t)
	ctx := WithLogger(context.Background(), tl.Logger)

	ctx = WithOperation(ctx, "search")
	ctx = WithYear(ctx, "2025")
	ctx = WithCar(ctx, "twin-mill.png")
	ctx = WithError(ctx, errors.New("boom"))
	ctx = WithFields(ctx, map[string]any{"results": 3})

	Ctx(ctx).Info().Msg("done")

	tl.AssertContains(t, `"operation":"search"`)
	tl.AssertContains(t, `"year":"2025"`)
	tl.AssertContains(t, `"car":"twin-mill.png"`)
	tl.AssertContains(t, `"error":"boom"`)
	tl.AssertContains(t, `"results":3`)
	assert.Equal(t, 1, tl.Count())
}

func TestFromContextDefaults(t *testing.T) {
	assert.Same(t, Default(), FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled
	assert.Same(t, Default(), FromContext(nil))
	assert.Same(t, Default(), FromContext(WithLogger(context.Background(), nil)))
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := CaptureLoggingForTest(t)
	Info().Str("car", "bone-shaker.png").Msg("marked owned")
	Warn().Msg("careful")

	assert.Equal(t, 2, tl.Count())
	tl.AssertContains(t, "marked owned")
	tl.Clear()
	tl.AssertNotContains(t, "careful")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(tl.Output()), ""))
}
