package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jamaah_server/models"
)

// NotificationService keeps a per-user append-only notification ledger.
// Records are never deleted; only the read flag is mutated.
type NotificationService struct {
	KV  KVStore
	Log *zap.SugaredLogger
}

// Append stores a new notification for a user, assigning an ID and timestamp
// when missing.
func (s *NotificationService) Append(ctx context.Context, userID string, n models.Notification) (*models.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt == "" {
		n.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	n.UserID = userID

	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification: %w", err)
	}
	if err := s.KV.Set(ctx, models.NotificationKey(userID, n.ID), data); err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}
	return &n, nil
}

// List returns a user's notifications, newest first. A user with no
// notifications gets an empty slice, not an error.
func (s *NotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	entries, err := s.KV.GetByPrefix(ctx, models.NotificationUserPrefix(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]models.Notification, 0, len(entries))
	for key, data := range entries {
		var n models.Notification
		if err := json.Unmarshal(data, &n); err != nil {
			s.Log.Warnw("skipping malformed notification", "key", key, "error", err)
			continue
		}
		notifications = append(notifications, n)
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt > notifications[j].CreatedAt
	})
	return notifications, nil
}

// MarkRead flips a single notification to read. Safe to repeat.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	key := models.NotificationKey(userID, id)
	data, err := s.KV.Get(ctx, key)
	if err != nil {
		return err
	}

	var n models.Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("failed to parse notification: %w", err)
	}
	if n.Read {
		return nil
	}
	n.Read = true

	updated, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	return s.KV.Set(ctx, key, updated)
}

// MarkAllRead flips every unread notification for the user.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	entries, err := s.KV.GetByPrefix(ctx, models.NotificationUserPrefix(userID))
	if err != nil {
		return fmt.Errorf("failed to list notifications: %w", err)
	}

	for key, data := range entries {
		var n models.Notification
		if err := json.Unmarshal(data, &n); err != nil || n.Read {
			continue
		}
		n.Read = true
		updated, err := json.Marshal(n)
		if err != nil {
			continue
		}
		if err := s.KV.Set(ctx, key, updated); err != nil {
			return err
		}
	}
	return nil
}
