package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jamaah_server/models"
	"jamaah_server/utils"
)

func newProfileService(t *testing.T) *ProfileService {
	t.Helper()
	return &ProfileService{KV: newTestKV(t), Log: testLogger()}
}

func TestGetOrCreateProfile(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	profile, err := svc.GetOrCreate(ctx, &models.AuthUser{
		ID:       "user-1",
		Email:    "ahmad@example.com",
		Metadata: map[string]string{"name": "Ahmad Fauzi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ahmad Fauzi", profile.Name)
	assert.Equal(t, models.RoleMember, profile.Role)
	assert.NotEmpty(t, profile.MemberSince)

	// A second call returns the stored profile unchanged.
	again, err := svc.GetOrCreate(ctx, &models.AuthUser{ID: "user-1", Email: "ahmad@example.com"})
	require.NoError(t, err)
	assert.Equal(t, profile.MemberSince, again.MemberSince)
}

func TestGetOrCreateFallsBackToEmailPrefix(t *testing.T) {
	svc := newProfileService(t)

	profile, err := svc.GetOrCreate(context.Background(), &models.AuthUser{
		ID:    "user-2",
		Email: "fatimah@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "fatimah", profile.Name)
}

func TestUpdateProfileUsernameUnique(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, &models.AuthUser{ID: "user-1", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = svc.GetOrCreate(ctx, &models.AuthUser{ID: "user-2", Email: "b@example.com"})
	require.NoError(t, err)

	username := "ahmad"
	_, err = svc.Update(ctx, "user-1", ProfileUpdate{Username: &username})
	require.NoError(t, err)

	// A second user cannot claim a taken username.
	_, err = svc.Update(ctx, "user-2", ProfileUpdate{Username: &username})
	require.ErrorIs(t, err, utils.ErrValidation)
	assert.Contains(t, err.Error(), "username is already taken")

	// Renaming releases the old username for others.
	renamed := "ahmad_f"
	_, err = svc.Update(ctx, "user-1", ProfileUpdate{Username: &renamed})
	require.NoError(t, err)
	_, err = svc.Update(ctx, "user-2", ProfileUpdate{Username: &username})
	require.NoError(t, err)
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, &models.AuthUser{ID: "user-1", Email: "a@example.com"})
	require.NoError(t, err)

	name := "Nama Baru"
	avatar := "https://cdn.example.com/a.png"
	profile, err := svc.Update(ctx, "user-1", ProfileUpdate{Name: &name, AvatarURL: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "Nama Baru", profile.Name)
	assert.Equal(t, avatar, profile.AvatarURL)
	assert.Empty(t, profile.Username)

	empty := "  "
	_, err = svc.Update(ctx, "user-1", ProfileUpdate{Username: &empty})
	require.ErrorIs(t, err, utils.ErrValidation)
}

func TestIsAdmin(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	profile, err := svc.GetOrCreate(ctx, &models.AuthUser{ID: "user-1", Email: "a@example.com"})
	require.NoError(t, err)
	assert.False(t, svc.IsAdmin(ctx, "user-1"))
	assert.False(t, svc.IsAdmin(ctx, "nobody"))

	profile.Role = models.RoleAdmin
	require.NoError(t, svc.put(ctx, profile))
	assert.True(t, svc.IsAdmin(ctx, "user-1"))
}
