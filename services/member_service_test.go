package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jamaah_server/models"
	"jamaah_server/utils"
)

var memberIDPattern = regexp.MustCompile(`^JMH-\d{6}$`)

func validSignup() SignupRequest {
	return SignupRequest{
		Email:          "ahmad@example.com",
		Name:           "Ahmad Fauzi",
		Phone:          "+628123456789",
		InvitationCode: "RAMADAN2026",
	}
}

func TestSignupHappyPath(t *testing.T) {
	svc, provider, _ := newMemberService(t)
	ctx := context.Background()

	_, err := svc.CreateInvitation(ctx, "RAMADAN2026")
	require.NoError(t, err)

	memberID, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)
	assert.Regexp(t, memberIDPattern, memberID)
	assert.Equal(t, 1, provider.createCalls)

	// Member record created as pending.
	data, err := svc.KV.Get(ctx, models.MemberKey(memberID))
	require.NoError(t, err)
	var member models.MemberIDRecord
	require.NoError(t, json.Unmarshal(data, &member))
	assert.Equal(t, models.MemberStatusPending, member.Status)
	assert.Equal(t, "ahmad@example.com", member.Email)
	assert.Equal(t, "user-1", member.UserID)

	// Secondary index userId -> memberId.
	idx, err := svc.KV.Get(ctx, models.MemberUserKey("user-1"))
	require.NoError(t, err)
	assert.Equal(t, memberID, string(idx))

	// Pending record awaiting approval.
	_, err = svc.KV.Get(ctx, models.PendingUserKey("user-1"))
	require.NoError(t, err)

	// Used marker is written even when single-use is off.
	used, err := svc.KV.Get(ctx, models.InvitationUsedKey("RAMADAN2026"))
	require.NoError(t, err)
	assert.Equal(t, "ahmad@example.com", string(used))

	// The provider account carries the pending status and member id.
	account := provider.accounts["user-1"]
	require.NotNil(t, account)
	assert.Equal(t, models.MemberStatusPending, account.Metadata["status"])
	assert.Equal(t, memberID, account.Metadata["member_id"])
	assert.Len(t, provider.passwords["user-1"], 32)
}

func TestSignupRejectsUnknownInvitation(t *testing.T) {
	svc, provider, _ := newMemberService(t)

	_, err := svc.Signup(context.Background(), validSignup())
	require.ErrorIs(t, err, utils.ErrValidation)
	assert.Contains(t, err.Error(), "Kode undangan tidak valid")
	assert.Equal(t, 0, provider.createCalls)
}

func TestSignupRejectsMissingFields(t *testing.T) {
	svc, _, _ := newMemberService(t)

	req := validSignup()
	req.Phone = "   "
	_, err := svc.Signup(context.Background(), req)
	require.ErrorIs(t, err, utils.ErrValidation)
	assert.Contains(t, err.Error(), "Email, nama, dan nomor telepon wajib diisi")
}

func TestSignupSingleUseInvitation(t *testing.T) {
	svc, _, _ := newMemberService(t)
	svc.InviteSingleUse = true
	ctx := context.Background()

	_, err := svc.CreateInvitation(ctx, "ONCE")
	require.NoError(t, err)

	first := validSignup()
	first.InvitationCode = "ONCE"
	_, err = svc.Signup(ctx, first)
	require.NoError(t, err)

	second := validSignup()
	second.Email = "fatimah@example.com"
	second.InvitationCode = "ONCE"
	_, err = svc.Signup(ctx, second)
	require.ErrorIs(t, err, utils.ErrValidation)
	assert.Contains(t, err.Error(), "Kode undangan tidak valid")
}

func TestApproveUser(t *testing.T) {
	svc, provider, sender := newMemberService(t)
	ctx := context.Background()

	_, err := svc.CreateInvitation(ctx, "RAMADAN2026")
	require.NoError(t, err)
	memberID, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	result, err := svc.ApproveUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, memberID, result.MemberID)

	// The issued password is 8 chars from the readable alphabet.
	assert.Len(t, result.Password, 8)
	for _, c := range result.Password {
		assert.Contains(t, PasswordAlphabet, string(c))
	}

	// Rendered bodies carry the credentials for out-of-band relay.
	assert.Contains(t, result.WhatsAppMessage, memberID)
	assert.Contains(t, result.WhatsAppMessage, result.Password)
	assert.Contains(t, result.EmailMessage, result.Password)
	assert.Equal(t, "Akun Jamaah Anda telah aktif", result.EmailSubject)

	// Provider account flipped to approved with the real password.
	assert.Equal(t, models.MemberStatusApproved, provider.accounts["user-1"].Metadata["status"])
	assert.Equal(t, result.Password, provider.passwords["user-1"])

	// Member record approved, pending record gone.
	member, err := svc.MemberStatus(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.MemberStatusApproved, member.Status)
	assert.NotEmpty(t, member.ApprovedAt)
	_, err = svc.KV.Get(ctx, models.PendingUserKey("user-1"))
	assert.ErrorIs(t, err, utils.ErrNotFound)

	// Exactly one approval notification.
	notifications, err := svc.Notifications.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeApproval, notifications[0].Type)
	assert.Contains(t, notifications[0].Message, memberID)

	// Credentials went to the delivery queue.
	require.Len(t, sender.sent, 1)
	assert.Equal(t, memberID, sender.sent[0].MemberID)
}

func TestApproveUserUnknownPending(t *testing.T) {
	svc, _, _ := newMemberService(t)

	_, err := svc.ApproveUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestApproveUserSurvivesDeliveryFailure(t *testing.T) {
	svc, _, sender := newMemberService(t)
	sender.err = assert.AnError
	ctx := context.Background()

	_, err := svc.CreateInvitation(ctx, "RAMADAN2026")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	result, err := svc.ApproveUser(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Password)

	member, err := svc.MemberStatus(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.MemberStatusApproved, member.Status)
}

func TestSignInBlocksPendingMember(t *testing.T) {
	svc, provider, _ := newMemberService(t)
	ctx := context.Background()

	_, err := svc.CreateInvitation(ctx, "RAMADAN2026")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	// The throwaway password technically works at the provider level.
	throwaway := provider.passwords["user-1"]
	_, err = svc.SignIn(ctx, "ahmad@example.com", throwaway)
	require.ErrorIs(t, err, utils.ErrValidation)
	assert.Contains(t, err.Error(), "Akun Anda masih menunggu persetujuan admin")

	// The fresh session was revoked.
	require.Len(t, provider.signedOut, 1)
	assert.Equal(t, "token-user-1", provider.signedOut[0])
}

func TestSignInApprovedMember(t *testing.T) {
	svc, _, _ := newMemberService(t)
	ctx := context.Background()

	_, err := svc.CreateInvitation(ctx, "RAMADAN2026")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, validSignup())
	require.NoError(t, err)
	result, err := svc.ApproveUser(ctx, "user-1")
	require.NoError(t, err)

	session, err := svc.SignIn(ctx, "ahmad@example.com", result.Password)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.User.ID)
	assert.NotEmpty(t, session.AccessToken)
}

func TestSignInSurfacesProviderMessage(t *testing.T) {
	svc, provider, _ := newMemberService(t)

	_, err := svc.SignIn(context.Background(), "ahmad@example.com", "wrong")
	require.ErrorIs(t, err, utils.ErrValidation)
	// The provider prefix is stripped, the message itself is kept.
	assert.Contains(t, err.Error(), "Invalid login credentials")
	assert.NotContains(t, err.Error(), "auth provider:")
	assert.Empty(t, provider.signedOut)
}

func TestIssueMemberIDAvoidsFirstCollision(t *testing.T) {
	svc, _, _ := newMemberService(t)
	ctx := context.Background()

	first, err := svc.IssueMemberID(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.KV.Set(ctx, models.MemberKey(first), []byte("{}")))

	second, err := svc.IssueMemberID(ctx)
	require.NoError(t, err)
	assert.Regexp(t, memberIDPattern, second)
}

func TestGeneratePassword(t *testing.T) {
	password, err := GeneratePassword(8)
	require.NoError(t, err)
	assert.Len(t, password, 8)
	for _, c := range password {
		assert.True(t, strings.ContainsRune(PasswordAlphabet, c))
	}
	// The alphabet excludes ambiguous characters.
	for _, c := range "0O1lIo" {
		assert.False(t, strings.ContainsRune(PasswordAlphabet, c))
	}
}

func TestValidateInvitation(t *testing.T) {
	svc, _, _ := newMemberService(t)
	ctx := context.Background()

	ok, err := svc.ValidateInvitation(ctx, "MISSING")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.CreateInvitation(ctx, "VALID")
	require.NoError(t, err)
	ok, err = svc.ValidateInvitation(ctx, "VALID")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.CreateInvitation(ctx, "")
	require.ErrorIs(t, err, utils.ErrValidation)
}
