// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/officemd/pkg/types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.LogConfig
		wantErr bool
	}{
		{name: "defaults", cfg: types.LogConfig{}},
		{name: "debug json", cfg: types.LogConfig{Level: "debug", Format: "json"}},
		{name: "upper case", cfg: types.LogConfig{Level: "WARN", Format: "Console"}},
		{name: "bad level", cfg: types.LogConfig{Level: "loud"}, wantErr: true},
		{name: "bad format", cfg: types.LogConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNew_Level(t *testing.T) {
	logger, err := New(types.LogConfig{Level: "error"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(&buf, types.LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("page written", zap.Int("page", 2))
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "page written", entry["msg"])
	assert.EqualValues(t, 2, entry["page"])
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T`, entry["ts"])
}

func TestNewWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(&buf, types.LogConfig{Level: "debug"})
	require.NoError(t, err)

	logger.Warn("skipping shape", zap.String("kind", "chart"))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "skipping shape")
	assert.Contains(t, out, `"kind": "chart"`)
}
