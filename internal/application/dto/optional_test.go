package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_DistingueAusenteNuloYValor(t *testing.T) {
	var in dto.UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"nuevo","description":null}`), &in))

	assert.True(t, in.Title.HasValue())
	assert.Equal(t, "nuevo", in.Title.Value)
	assert.True(t, in.Description.Set)
	assert.True(t, in.Description.Null)
	assert.Nil(t, in.Description.Ptr())
	assert.False(t, in.Status.Set)
}

func TestParseTime_FormatosAceptados(t *testing.T) {
	want := time.Date(2025, time.May, 6, 14, 30, 0, 0, time.UTC)
	for _, s := range []string{"2025-05-06T14:30:00Z", "2025-05-06T14:30:00", "2025-05-06T14:30", "2025-05-06 14:30:00"} {
		got, err := dto.ParseTime(s)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(got), s)
	}
	day, err := dto.ParseTime("2025-05-06")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.May, 6, 0, 0, 0, 0, time.UTC), day)

	_, err = dto.ParseTime("06/05/2025")
	assert.Error(t, err)
}

func TestTimestamp_VacioEsSinFecha(t *testing.T) {
	var in dto.UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"due_date":""}`), &in))
	assert.True(t, in.DueDate.Set)
	assert.Nil(t, dto.OptionalTime(in.DueDate))

	require.Error(t, json.Unmarshal([]byte(`{"due_date":"mañana"}`), &in))
}

func TestDate_SerializaSoloLaFecha(t *testing.T) {
	var d dto.Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-02-03T22:10:00Z"`), &d))
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-02-03"`, string(out))
}
