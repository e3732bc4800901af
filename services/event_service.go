package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jamaah_server/models"
	"jamaah_server/utils"
)

// EventService handles community events and their RSVP lists.
type EventService struct {
	KV  KVStore
	Log *zap.SugaredLogger
}

// List returns all events, newest first.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	entries, err := s.KV.GetByPrefix(ctx, models.EventPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]models.Event, 0, len(entries))
	for key, data := range entries {
		var event models.Event
		if err := json.Unmarshal(data, &event); err != nil {
			s.Log.Warnw("skipping malformed event", "key", key, "error", err)
			continue
		}
		events = append(events, event)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt > events[j].CreatedAt
	})
	return events, nil
}

// Create stores a new event.
func (s *EventService) Create(ctx context.Context, event models.Event) (*models.Event, error) {
	if strings.TrimSpace(event.Title) == "" {
		return nil, utils.Validationf("Judul acara wajib diisi")
	}

	event.ID = uuid.NewString()
	event.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if event.RSVP == nil {
		event.RSVP = []string{}
	}

	if err := s.put(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// RSVP adds the caller to the event's attendance list. The list only grows;
// repeating the call is a no-op.
func (s *EventService) RSVP(ctx context.Context, userID, eventID string) (*models.Event, error) {
	data, err := s.KV.Get(ctx, models.EventKey(eventID))
	if err != nil {
		return nil, err
	}
	var event models.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to parse event: %w", err)
	}

	for _, id := range event.RSVP {
		if id == userID {
			return &event, nil
		}
	}
	event.RSVP = append(event.RSVP, userID)

	if err := s.put(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) put(ctx context.Context, event *models.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return s.KV.Set(ctx, models.EventKey(event.ID), data)
}
