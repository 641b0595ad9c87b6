package backup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriter_EscribeVolcadoJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "respaldos")
	w := NewFileWriter(dir)

	snap := repository.Snapshot{"tasks": {{"id": float64(1), "title": "Revisar UPS"}}}
	path, size, err := w.Write(context.Background(), 7, snap)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "backup_7_"))
	assert.Equal(t, ".json", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)

	var doc struct {
		BackupID int64               `json:"backup_id"`
		Tables   repository.Snapshot `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, int64(7), doc.BackupID)
	assert.Equal(t, "Revisar UPS", doc.Tables["tasks"][0]["title"])
}

func TestFileWriter_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewFileWriter(t.TempDir()).Write(ctx, 1, repository.Snapshot{})
	assert.ErrorIs(t, err, context.Canceled)
}
