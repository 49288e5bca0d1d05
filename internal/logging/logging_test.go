package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()
			log := New(&bytes.Buffer{}, tt.level, FormatJSON)
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "info", FormatJSON)
	log.Debug().Msg("hidden")
	log.Info().Str("component", "importer").Int("rows", 3).Msg("imported")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "imported", rec["message"])
	assert.Equal(t, "importer", rec["component"])
	assert.Equal(t, 3.0, rec["rows"])
	assert.Contains(t, rec, "time")
}

func TestNewConsole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "warn", FormatConsole)
	log.Info().Msg("quiet")
	log.Warn().Int("row", 7).Msg("skipped row")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "skipped row")
	assert.Contains(t, out, "row=7")
}
