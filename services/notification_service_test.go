package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jamaah_server/models"
	"jamaah_server/utils"
)

func newNotificationService(t *testing.T) *NotificationService {
	t.Helper()
	return &NotificationService{KV: newTestKV(t), Log: testLogger()}
}

func TestNotificationListNewestFirst(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()

	for _, n := range []models.Notification{
		{Title: "first", CreatedAt: "2026-01-01T08:00:00Z"},
		{Title: "third", CreatedAt: "2026-01-03T08:00:00Z"},
		{Title: "second", CreatedAt: "2026-01-02T08:00:00Z"},
	} {
		_, err := svc.Append(ctx, "user-1", n)
		require.NoError(t, err)
	}

	notifications, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, notifications, 3)
	assert.Equal(t, "third", notifications[0].Title)
	assert.Equal(t, "second", notifications[1].Title)
	assert.Equal(t, "first", notifications[2].Title)
}

func TestNotificationListScopedToUser(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()

	_, err := svc.Append(ctx, "user-1", models.Notification{Title: "mine"})
	require.NoError(t, err)
	_, err = svc.Append(ctx, "user-2", models.Notification{Title: "theirs"})
	require.NoError(t, err)

	notifications, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "mine", notifications[0].Title)
}

func TestNotificationListEmpty(t *testing.T) {
	svc := newNotificationService(t)

	notifications, err := svc.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, notifications)
	assert.Empty(t, notifications)
}

func TestMarkReadIdempotent(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()

	created, err := svc.Append(ctx, "user-1", models.Notification{Title: "hello"})
	require.NoError(t, err)
	assert.False(t, created.Read)

	require.NoError(t, svc.MarkRead(ctx, "user-1", created.ID))
	require.NoError(t, svc.MarkRead(ctx, "user-1", created.ID))

	notifications, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.True(t, notifications[0].Read)

	assert.ErrorIs(t, svc.MarkRead(ctx, "user-1", "missing"), utils.ErrNotFound)
}

func TestMarkAllRead(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Append(ctx, "user-1", models.Notification{Title: "n"})
		require.NoError(t, err)
	}

	require.NoError(t, svc.MarkAllRead(ctx, "user-1"))

	notifications, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, notifications, 3)
	for _, n := range notifications {
		assert.True(t, n.Read)
	}
}
