package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jamaah_server/models"
	"jamaah_server/utils"
)

// ChatService handles two-party chats. Chats are keyed by the sorted
// participant pair, so opening a chat is idempotent regardless of who
// initiates. Delivery is poll-based; there are no push guarantees.
type ChatService struct {
	KV       KVStore
	Profiles *ProfileService
	Log      *zap.SugaredLogger
}

// OpenChat returns the chat between the caller and otherUserID, creating it
// on first contact. An optional product id links the chat to a marketplace
// listing.
func (s *ChatService) OpenChat(ctx context.Context, user *models.AuthUser, otherUserID, productID string) (*models.Chat, error) {
	otherUserID = strings.TrimSpace(otherUserID)
	if otherUserID == "" || otherUserID == user.ID {
		return nil, utils.Validationf("participant is required")
	}

	chatID := models.ChatID(user.ID, otherUserID)
	chat, err := s.get(ctx, chatID)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}

	callerProfile, err := s.Profiles.GetOrCreate(ctx, user)
	if err != nil {
		return nil, err
	}
	otherName := otherUserID
	if otherProfile, err := s.Profiles.Get(ctx, otherUserID); err == nil {
		otherName = otherProfile.Name
	}

	participants := []string{user.ID, otherUserID}
	names := []string{callerProfile.Name, otherName}
	if participants[0] > participants[1] {
		participants[0], participants[1] = participants[1], participants[0]
		names[0], names[1] = names[1], names[0]
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	chat = &models.Chat{
		ID:               chatID,
		Participants:     participants,
		ParticipantNames: names,
		ProductID:        productID,
		Messages:         []models.ChatMessage{},
		CreatedAt:        now,
		LastMessageAt:    now,
	}
	if err := s.put(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// ListChats returns the caller's chats, most recently active first.
func (s *ChatService) ListChats(ctx context.Context, userID string) ([]models.Chat, error) {
	entries, err := s.KV.GetByPrefix(ctx, models.ChatPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}

	chats := make([]models.Chat, 0)
	for key, data := range entries {
		var chat models.Chat
		if err := json.Unmarshal(data, &chat); err != nil {
			s.Log.Warnw("skipping malformed chat", "key", key, "error", err)
			continue
		}
		if chat.HasParticipant(userID) {
			chats = append(chats, chat)
		}
	}

	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].LastMessageAt > chats[j].LastMessageAt
	})
	return chats, nil
}

// GetMessages returns a chat's messages. Participant-only.
func (s *ChatService) GetMessages(ctx context.Context, userID, chatID string) ([]models.ChatMessage, error) {
	chat, err := s.authorized(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	return chat.Messages, nil
}

// SendMessage appends a message to the chat. Participant-only, non-empty
// text required.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID, text string) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, utils.Validationf("Pesan tidak boleh kosong")
	}

	chat, err := s.authorized(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	message := models.ChatMessage{
		ID:        uuid.NewString(),
		SenderID:  userID,
		Text:      text,
		CreatedAt: now,
	}
	chat.Messages = append(chat.Messages, message)
	chat.LastMessageAt = now

	if err := s.put(ctx, chat); err != nil {
		return nil, err
	}
	return &message, nil
}

// DeleteChat removes the whole conversation. Participant-only.
func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID string) error {
	if _, err := s.authorized(ctx, userID, chatID); err != nil {
		return err
	}
	return s.KV.Delete(ctx, models.ChatKey(chatID))
}

func (s *ChatService) authorized(ctx context.Context, userID, chatID string) (*models.Chat, error) {
	chat, err := s.get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, utils.ErrForbidden
	}
	return chat, nil
}

func (s *ChatService) get(ctx context.Context, chatID string) (*models.Chat, error) {
	data, err := s.KV.Get(ctx, models.ChatKey(chatID))
	if err != nil {
		return nil, err
	}
	var chat models.Chat
	if err := json.Unmarshal(data, &chat); err != nil {
		return nil, fmt.Errorf("failed to parse chat: %w", err)
	}
	return &chat, nil
}

func (s *ChatService) put(ctx context.Context, chat *models.Chat) error {
	data, err := json.Marshal(chat)
	if err != nil {
		return fmt.Errorf("failed to marshal chat: %w", err)
	}
	return s.KV.Set(ctx, models.ChatKey(chat.ID), data)
}
