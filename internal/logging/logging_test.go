package logging_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rateio/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(in), in)
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := logging.New(&buf, slog.LevelWarn)
	logger.Info("plan generated", "installments", 3)
	assert.Empty(t, buf.String())

	logger.Warn("plan partially created", "created", 2)
	assert.Contains(t, buf.String(), "plan partially created")
	assert.Contains(t, buf.String(), "created")
}

func TestSetupFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	type testCase struct {
		name    string
		path    func(t *testing.T) string
		wantLog bool
		wantErr bool
	}

	tests := []testCase{
		{
			name:    "WritesToFile",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "tui.log") },
			wantLog: true,
		},
		{
			name: "EmptyPathDiscards",
			path: func(*testing.T) string { return "" },
		},
		{
			name:    "MissingDirectory",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing", "tui.log") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t)

			closer, err := logging.SetupFile(path, "info")
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)

			slog.Debug("hidden")
			slog.Warn("import line rejected", "line", 3)
			require.NoError(t, closer.Close())

			if !tt.wantLog {
				return
			}

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), "import line rejected")
			assert.NotContains(t, string(data), "hidden")
			assert.NotContains(t, string(data), "\x1b[")
		})
	}
}
