// Package backup escribe los volcados de respaldo en disco.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain/repository"
)

var _ usecase.BackupWriter = (*FileWriter)(nil)

// document contenido del archivo de respaldo.
type document struct {
	BackupID  int64               `json:"backup_id"`
	CreatedAt time.Time           `json:"created_at"`
	Tables    repository.Snapshot `json:"tables"`
}

// FileWriter guarda cada respaldo como un JSON en Dir.
type FileWriter struct {
	dir string
	now func() time.Time
}

// NewFileWriter construye el writer. El directorio se crea en la primera escritura.
func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{dir: dir, now: time.Now}
}

// Write serializa el volcado en backup_<id>_<fecha>_<uuid>.json.
func (w *FileWriter) Write(ctx context.Context, backupID int64, snapshot repository.Snapshot) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return "", 0, fmt.Errorf("crear directorio de respaldos: %w", err)
	}
	now := w.now()
	data, err := json.Marshal(document{BackupID: backupID, CreatedAt: now, Tables: snapshot})
	if err != nil {
		return "", 0, fmt.Errorf("serializar respaldo: %w", err)
	}
	name := fmt.Sprintf("backup_%d_%s_%s.json", backupID, now.Format("20060102_150405"), uuid.NewString()[:8])
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return "", 0, fmt.Errorf("escribir respaldo: %w", err)
	}
	return path, int64(len(data)), nil
}
