package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/gestion-ti-api/internal/application/dto"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationUseCase_SoloAdministradoresCrean(t *testing.T) {
	s := newSeededStore(t)
	uc := usecase.NewNotificationUseCase(s, s)

	_, err := uc.Create(context.Background(), ana, dto.CreateNotificationRequest{UserID: beto.UserID, Title: "Hola", Message: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(context.Background(), admin, dto.CreateNotificationRequest{UserID: 999, Title: "Hola", Message: "x"})
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)

	n, err := uc.Create(context.Background(), admin, dto.CreateNotificationRequest{UserID: ana.UserID, Title: "Hola", Message: "x"})
	require.NoError(t, err)
	assert.Equal(t, "info", n.Type)
	assert.False(t, n.IsRead)
}

func TestNotificationUseCase_LecturaYPropiedad(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)
	uc := usecase.NewNotificationUseCase(s, s)

	first, err := uc.Create(ctx, admin, dto.CreateNotificationRequest{UserID: ana.UserID, Title: "1", Message: "uno"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, dto.CreateNotificationRequest{UserID: ana.UserID, Title: "2", Message: "dos"})
	require.NoError(t, err)
	past := dto.Timestamp{Time: time.Now().Add(-time.Hour)}
	_, err = uc.Create(ctx, admin, dto.CreateNotificationRequest{UserID: ana.UserID, Title: "vencida", Message: "x", ExpiresAt: &past})
	require.NoError(t, err)

	list, err := uc.List(ctx, ana, false)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	count, err := uc.UnreadCount(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.ErrorIs(t, uc.MarkRead(ctx, beto, first.ID), domain.ErrForbidden)
	require.NoError(t, uc.MarkRead(ctx, ana, first.ID))

	unread, err := uc.List(ctx, ana, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "2", unread[0].Title)

	n, err := uc.MarkAllRead(ctx, ana)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
	count, err = uc.UnreadCount(ctx, ana)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, uc.Delete(ctx, beto, first.ID), domain.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, superAdmin, first.ID))
	assert.ErrorIs(t, uc.MarkRead(ctx, ana, first.ID), domain.ErrNotFound)
}
