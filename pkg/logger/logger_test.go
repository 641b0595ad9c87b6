package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("desconocido"))
}

func TestComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info").Component("backups")

	l.Info().Int64("backup_id", 3).Msg("respaldo completado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "backups", entry["component"])
	assert.Equal(t, "respaldo completado", entry["message"])
	assert.EqualValues(t, 3, entry["backup_id"])
}

func TestNivel_FiltraEventosInferiores(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Info().Msg("no debe aparecer")
	assert.Zero(t, buf.Len())
}
