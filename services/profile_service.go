package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"jamaah_server/models"
	"jamaah_server/utils"
)

// ProfileService manages user profiles. Profiles are created lazily the
// first time an authenticated user touches one.
type ProfileService struct {
	KV  KVStore
	Log *zap.SugaredLogger
}

// ProfileUpdate is a partial profile update; nil fields are left alone.
type ProfileUpdate struct {
	Name      *string `json:"name"`
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// Get returns a profile by user ID.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	data, err := s.KV.Get(ctx, models.ProfileKey(userID))
	if err != nil {
		return nil, err
	}
	var profile models.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &profile, nil
}

// GetOrCreate returns the caller's profile, creating it from the verified
// identity when absent.
func (s *ProfileService) GetOrCreate(ctx context.Context, user *models.AuthUser) (*models.UserProfile, error) {
	profile, err := s.Get(ctx, user.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}

	name := user.Metadata["name"]
	if name == "" {
		if at := strings.Index(user.Email, "@"); at > 0 {
			name = user.Email[:at]
		} else {
			name = user.Email
		}
	}

	profile = &models.UserProfile{
		ID:          user.ID,
		Email:       user.Email,
		Name:        name,
		Role:        models.RoleMember,
		MemberSince: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.put(ctx, profile); err != nil {
		return nil, err
	}
	s.Log.Infow("profile created", "userId", user.ID)
	return profile, nil
}

// Update applies a partial update. Usernames must stay unique; a claimed
// username is tracked with a pointer key back to its owner.
func (s *ProfileService) Update(ctx context.Context, userID string, update ProfileUpdate) (*models.UserProfile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Username != nil && *update.Username != profile.Username {
		username := strings.TrimSpace(*update.Username)
		if username == "" {
			return nil, utils.Validationf("username cannot be empty")
		}
		ownerData, err := s.KV.Get(ctx, models.UsernameKey(username))
		if err == nil && string(ownerData) != userID {
			return nil, utils.Validationf("username is already taken")
		}
		if err != nil && !errors.Is(err, utils.ErrNotFound) {
			return nil, err
		}
		if err := s.KV.Set(ctx, models.UsernameKey(username), []byte(userID)); err != nil {
			return nil, err
		}
		if profile.Username != "" {
			_ = s.KV.Delete(ctx, models.UsernameKey(profile.Username))
		}
		profile.Username = username
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
		profile.Name = strings.TrimSpace(*update.Name)
	}
	if update.AvatarURL != nil {
		profile.AvatarURL = *update.AvatarURL
	}

	if err := s.put(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// IsAdmin reports whether the user's profile carries the Admin role.
func (s *ProfileService) IsAdmin(ctx context.Context, userID string) bool {
	profile, err := s.Get(ctx, userID)
	return err == nil && profile.Role == models.RoleAdmin
}

func (s *ProfileService) put(ctx context.Context, profile *models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return s.KV.Set(ctx, models.ProfileKey(profile.ID), data)
}
