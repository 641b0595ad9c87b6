package entity

import (
	"fmt"
	"time"
)

// Estados de SystemBackup.
const (
	BackupStatusInProgress = "in_progress"
	BackupStatusCompleted  = "completed"
	BackupStatusFailed     = "failed"
)

// SystemBackup un intento de respaldo. Solo transita de in_progress a completed o failed.
type SystemBackup struct {
	ID           int64
	Status       string
	FilePath     *string
	SizeBytes    *int64
	ErrorMessage *string
	CreatedBy    *int64
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// Complete cierra el respaldo como exitoso.
func (b *SystemBackup) Complete(path string, size int64, now time.Time) error {
	if b.Status != BackupStatusInProgress {
		return fmt.Errorf("respaldo %d ya finalizado con estado %s", b.ID, b.Status)
	}
	b.Status = BackupStatusCompleted
	b.FilePath = &path
	b.SizeBytes = &size
	b.FinishedAt = &now
	return nil
}

// Fail cierra el respaldo como fallido.
func (b *SystemBackup) Fail(msg string, now time.Time) error {
	if b.Status != BackupStatusInProgress {
		return fmt.Errorf("respaldo %d ya finalizado con estado %s", b.ID, b.Status)
	}
	b.Status = BackupStatusFailed
	b.ErrorMessage = &msg
	b.FinishedAt = &now
	return nil
}
