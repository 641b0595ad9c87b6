package excel_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/report"
	"github.com/jhoicas/gestion-ti-api/internal/infrastructure/excel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestTableRenderer_EscribeTituloResumenYTabla(t *testing.T) {
	table := report.Table{
		Title:       "Bitácora de Trabajo",
		GeneratedAt: time.Date(2025, time.April, 2, 10, 30, 0, 0, time.UTC),
		Summary:     [][2]string{{"Total de entradas", "1"}, {"Horas trabajadas", "2.50"}},
		Columns:     []string{"Fecha", "Título"},
		Rows:        [][]string{{"02/04/2025", "Cambio de router"}},
	}
	data, err := excel.NewTableRenderer().Render(context.Background(), table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	cell := func(ref string) string {
		v, err := f.GetCellValue("Reporte", ref)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Bitácora de Trabajo", cell("A1"))
	assert.Equal(t, "Generado: 02/04/2025 10:30", cell("A2"))
	assert.Equal(t, "Horas trabajadas", cell("A5"))
	assert.Equal(t, "2.50", cell("B5"))
	assert.Equal(t, "Fecha", cell("A7"))
	assert.Equal(t, "Cambio de router", cell("B8"))
}

func TestTableRenderer_SinColumnasFalla(t *testing.T) {
	_, err := excel.NewTableRenderer().Render(context.Background(), report.Table{Title: "x"})
	assert.Error(t, err)
}
