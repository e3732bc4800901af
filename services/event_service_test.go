package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jamaah_server/models"
	"jamaah_server/utils"
)

func newEventService(t *testing.T) *EventService {
	t.Helper()
	return &EventService{KV: newTestKV(t), Log: testLogger()}
}

func TestCreateEvent(t *testing.T) {
	svc := newEventService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.Event{Title: "  "})
	require.ErrorIs(t, err, utils.ErrValidation)
	assert.Contains(t, err.Error(), "Judul acara wajib diisi")

	event, err := svc.Create(ctx, models.Event{
		Title:    "Kajian Akbar",
		Category: "kajian",
		Date:     "2026-09-15",
		Location: "Masjid Raya",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.NotNil(t, event.RSVP)
	assert.Empty(t, event.RSVP)

	events, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Kajian Akbar", events[0].Title)
}

func TestRSVPNoDuplicates(t *testing.T) {
	svc := newEventService(t)
	ctx := context.Background()

	event, err := svc.Create(ctx, models.Event{Title: "Buka Bersama"})
	require.NoError(t, err)

	updated, err := svc.RSVP(ctx, "user-1", event.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, updated.RSVP)

	// Repeating the RSVP is a no-op.
	updated, err = svc.RSVP(ctx, "user-1", event.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, updated.RSVP)

	updated, err = svc.RSVP(ctx, "user-2", event.ID)
	require.NoError(t, err)
	assert.Len(t, updated.RSVP, 2)
}

func TestRSVPUnknownEvent(t *testing.T) {
	svc := newEventService(t)

	_, err := svc.RSVP(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
