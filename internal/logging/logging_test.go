package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/gamepole/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in          string
		development bool
		want        logrus.Level
		wantErr     bool
	}{
		{"", false, logrus.InfoLevel, false},
		{"warn", false, logrus.WarnLevel, false},
		{"warn", true, logrus.DebugLevel, false},
		{"loud", false, logrus.InfoLevel, true},
	}
	for _, test := range tests {
		level, err := ParseLevel(test.in, test.development)
		if test.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, test.want, level)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "info", Format: "json"}, false, &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.WithField("size", 9).Info("board ready")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "board ready", entry["msg"])
	assert.Equal(t, float64(9), entry["size"])
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New(config.LogConfig{Format: "xml"}, false, nil)
	assert.Error(t, err)
}

func TestNewFileHook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mines.log")
	var buf bytes.Buffer
	log, err := New(config.LogConfig{
		Level: "info", Format: "text", File: path,
		MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1,
	}, false, &buf)
	require.NoError(t, err)

	log.Info("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Contains(t, buf.String(), "written to file")
}

func TestFileHookFollowsLevelChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mines.log")
	log, err := New(config.LogConfig{
		Level: "info", Format: "json", File: path,
		MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1,
	}, false, io.Discard)
	require.NoError(t, err)

	log.Debug("before reload")
	log.SetLevel(logrus.DebugLevel)
	log.Debug("after reload")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "before reload")
	assert.Contains(t, string(data), "after reload")
}
