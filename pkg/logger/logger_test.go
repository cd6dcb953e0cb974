package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		level    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"INFO", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"bogus", logrus.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseLevel(tc.level))
		})
	}
}

func TestJSONOutput(t *testing.T) {
	Init("debug", "json")
	var buf bytes.Buffer
	SetOutput(&buf)

	WithField("pass", "primary").Info("traversal finished")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "primary", entry["pass"])
	assert.Equal(t, "traversal finished", entry["msg"])
	assert.Equal(t, "info", entry["level"])
}

func TestTextOutput(t *testing.T) {
	Init("info", "text")
	var buf bytes.Buffer
	SetOutput(&buf)

	Debugf("hidden %d", 1)
	Infof("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
}
