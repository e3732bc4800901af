package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	mathrand "math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"jamaah_server/models"
	"jamaah_server/utils"
)

// PasswordAlphabet excludes characters that are easy to misread when the
// password is relayed over WhatsApp (0/O/o, 1/l/I).
const PasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

const memberIDFormat = "JMH-%06d"

// MemberService orchestrates the invitation-gated signup and admin-approval
// workflow: pending accounts, member-ID issuance, credential issuance and the
// sign-in gate.
type MemberService struct {
	KV            KVStore
	Provider      AuthProvider
	Notifications *NotificationService
	Sender        NotificationSender
	Log           *zap.SugaredLogger

	// InviteSingleUse rejects codes that already carry a used marker.
	InviteSingleUse bool
}

// SignupRequest is the signup payload.
type SignupRequest struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	InvitationCode string `json:"invitationCode"`
}

// ApprovalResult is returned to the approving admin: the plaintext password
// plus rendered message bodies for out-of-band delivery.
type ApprovalResult struct {
	MemberID        string `json:"memberId"`
	Password        string `json:"password"`
	WhatsAppMessage string `json:"whatsappMessage"`
	EmailSubject    string `json:"emailSubject"`
	EmailMessage    string `json:"emailMessage"`
}

// CreateInvitation records a new invitation code. Admin-only.
func (s *MemberService) CreateInvitation(ctx context.Context, code string) (*models.InvitationCode, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, utils.Validationf("Kode undangan wajib diisi")
	}

	invitation := models.InvitationCode{
		Code:      code,
		Valid:     true,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(invitation)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invitation: %w", err)
	}
	if err := s.KV.Set(ctx, models.InvitationKey(code), data); err != nil {
		return nil, fmt.Errorf("failed to store invitation: %w", err)
	}
	return &invitation, nil
}

// ValidateInvitation reports whether a code admits a signup.
func (s *MemberService) ValidateInvitation(ctx context.Context, code string) (bool, error) {
	data, err := s.KV.Get(ctx, models.InvitationKey(code))
	if errors.Is(err, utils.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var invitation models.InvitationCode
	if err := json.Unmarshal(data, &invitation); err != nil || !invitation.Valid {
		return false, nil
	}

	if s.InviteSingleUse {
		if _, err := s.KV.Get(ctx, models.InvitationUsedKey(code)); err == nil {
			return false, nil
		} else if !errors.Is(err, utils.ErrNotFound) {
			return false, err
		}
	}
	return true, nil
}

// IssueMemberID produces a JMH-XXXXXX identifier from the current timestamp.
// One existence check is made; on collision the timestamp is perturbed with a
// random offset and the second candidate is returned as-is. Best effort at
// this scale, not a uniqueness guarantee.
func (s *MemberService) IssueMemberID(ctx context.Context) (string, error) {
	now := time.Now().UnixMilli()
	candidate := fmt.Sprintf(memberIDFormat, now%1_000_000)

	_, err := s.KV.Get(ctx, models.MemberKey(candidate))
	if errors.Is(err, utils.ErrNotFound) {
		return candidate, nil
	}
	if err != nil {
		return "", err
	}

	offset := mathrand.Int63n(1_000_000)
	return fmt.Sprintf(memberIDFormat, (now+offset)%1_000_000), nil
}

// Signup validates the invitation, issues a member ID and creates a pending
// account at the auth provider with a random throwaway password. The account
// can technically sign in at the provider level; the application gate in
// SignIn is what keeps pending members out.
func (s *MemberService) Signup(ctx context.Context, req SignupRequest) (string, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Email == "" || req.Name == "" || req.Phone == "" {
		return "", utils.Validationf("Email, nama, dan nomor telepon wajib diisi")
	}

	valid, err := s.ValidateInvitation(ctx, req.InvitationCode)
	if err != nil {
		return "", err
	}
	if !valid {
		return "", utils.Validationf("Kode undangan tidak valid")
	}

	memberID, err := s.IssueMemberID(ctx)
	if err != nil {
		return "", err
	}

	// The throwaway password is never relayed to anyone. High entropy is
	// what makes the pre-approval account unusable in practice.
	throwaway, err := GeneratePassword(32)
	if err != nil {
		return "", err
	}

	account, err := s.Provider.AdminCreateUser(ctx, req.Email, throwaway, map[string]string{
		"status":    models.MemberStatusPending,
		"member_id": memberID,
		"name":      req.Name,
		"phone":     req.Phone,
	})
	if err != nil {
		return "", err
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)
	member := models.MemberIDRecord{
		MemberID:  memberID,
		UserID:    account.ID,
		Email:     req.Email,
		Name:      req.Name,
		Phone:     req.Phone,
		Status:    models.MemberStatusPending,
		CreatedAt: createdAt,
	}
	if err := s.putJSON(ctx, models.MemberKey(memberID), member); err != nil {
		return "", err
	}
	if err := s.KV.Set(ctx, models.MemberUserKey(account.ID), []byte(memberID)); err != nil {
		return "", err
	}

	pending := models.PendingUser{
		UserID:         account.ID,
		Email:          req.Email,
		Name:           req.Name,
		Phone:          req.Phone,
		MemberID:       memberID,
		InvitationCode: req.InvitationCode,
		CreatedAt:      createdAt,
	}
	if err := s.putJSON(ctx, models.PendingUserKey(account.ID), pending); err != nil {
		return "", err
	}

	// Mark the code as used. Nothing enforces this unless InviteSingleUse
	// is on.
	if err := s.KV.Set(ctx, models.InvitationUsedKey(req.InvitationCode), []byte(req.Email)); err != nil {
		s.Log.Warnw("failed to write invitation used marker", "code", req.InvitationCode, "error", err)
	}

	s.Log.Infow("signup accepted", "memberId", memberID, "userId", account.ID)
	return memberID, nil
}

// ApproveUser completes a pending signup: issues the real password, flips the
// member record, writes the approval notification and deletes the pending
// record. The transition is irreversible through this path.
func (s *MemberService) ApproveUser(ctx context.Context, userID string) (*ApprovalResult, error) {
	data, err := s.KV.Get(ctx, models.PendingUserKey(userID))
	if errors.Is(err, utils.ErrNotFound) {
		return nil, fmt.Errorf("pending user %s: %w", userID, utils.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var pending models.PendingUser
	if err := json.Unmarshal(data, &pending); err != nil {
		return nil, fmt.Errorf("failed to parse pending user: %w", err)
	}

	password, err := GeneratePassword(8)
	if err != nil {
		return nil, err
	}

	if err := s.Provider.AdminUpdateUser(ctx, userID, password, map[string]string{
		"status":    models.MemberStatusApproved,
		"member_id": pending.MemberID,
	}); err != nil {
		return nil, err
	}

	memberData, err := s.KV.Get(ctx, models.MemberKey(pending.MemberID))
	if err != nil {
		return nil, err
	}
	var member models.MemberIDRecord
	if err := json.Unmarshal(memberData, &member); err != nil {
		return nil, fmt.Errorf("failed to parse member record: %w", err)
	}
	member.Status = models.MemberStatusApproved
	member.ApprovedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.putJSON(ctx, models.MemberKey(pending.MemberID), member); err != nil {
		return nil, err
	}

	if _, err := s.Notifications.Append(ctx, userID, models.Notification{
		Type:     models.NotificationTypeApproval,
		Title:    "Akun Anda telah disetujui",
		Message:  fmt.Sprintf("Selamat datang di komunitas! Nomor anggota Anda: %s", pending.MemberID),
		MemberID: pending.MemberID,
	}); err != nil {
		return nil, err
	}

	if err := s.KV.Delete(ctx, models.PendingUserKey(userID)); err != nil {
		return nil, err
	}

	result := &ApprovalResult{
		MemberID:        pending.MemberID,
		Password:        password,
		WhatsAppMessage: renderWhatsAppMessage(pending, password),
		EmailSubject:    "Akun Jamaah Anda telah aktif",
		EmailMessage:    renderEmailMessage(pending, password),
	}

	// Delivery happens out-of-band; a failed send must not roll back the
	// approval, the admin still holds the credentials.
	if err := s.Sender.SendCredentials(ctx, CredentialMessage{
		Email:        pending.Email,
		Phone:        pending.Phone,
		MemberID:     pending.MemberID,
		WhatsAppBody: result.WhatsAppMessage,
		EmailSubject: result.EmailSubject,
		EmailBody:    result.EmailMessage,
	}); err != nil {
		s.Log.Warnw("credential delivery failed", "userId", userID, "error", err)
	}

	s.Log.Infow("user approved", "memberId", pending.MemberID, "userId", userID)
	return result, nil
}

// SignIn authenticates with the provider, then applies the application-level
// gate: a pending member's fresh session is revoked immediately. The two
// guards stay separate on purpose.
func (s *MemberService) SignIn(ctx context.Context, email, password string) (*models.AuthSession, error) {
	session, err := s.Provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, utils.Validationf("%s", strings.TrimPrefix(err.Error(), "auth provider: "))
	}

	pendingStatus := false
	if memberID, err := s.KV.Get(ctx, models.MemberUserKey(session.User.ID)); err == nil {
		if memberData, err := s.KV.Get(ctx, models.MemberKey(string(memberID))); err == nil {
			var member models.MemberIDRecord
			if json.Unmarshal(memberData, &member) == nil {
				pendingStatus = member.Status == models.MemberStatusPending
			}
		}
	}
	if !pendingStatus {
		pendingStatus = session.User.Metadata["status"] == models.MemberStatusPending
	}

	if pendingStatus {
		if err := s.Provider.SignOut(ctx, session.AccessToken); err != nil {
			s.Log.Warnw("failed to revoke pending member session", "userId", session.User.ID, "error", err)
		}
		return nil, utils.Validationf("Akun Anda masih menunggu persetujuan admin")
	}

	return session, nil
}

// MemberStatus returns the member record for a user, for the sign-in gate and
// profile screens.
func (s *MemberService) MemberStatus(ctx context.Context, userID string) (*models.MemberIDRecord, error) {
	memberID, err := s.KV.Get(ctx, models.MemberUserKey(userID))
	if err != nil {
		return nil, err
	}
	data, err := s.KV.Get(ctx, models.MemberKey(string(memberID)))
	if err != nil {
		return nil, err
	}
	var member models.MemberIDRecord
	if err := json.Unmarshal(data, &member); err != nil {
		return nil, fmt.Errorf("failed to parse member record: %w", err)
	}
	return &member, nil
}

func (s *MemberService) putJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal record for %q: %w", key, err)
	}
	return s.KV.Set(ctx, key, data)
}

// GeneratePassword draws length characters from PasswordAlphabet using
// crypto/rand.
func GeneratePassword(length int) (string, error) {
	max := big.NewInt(int64(len(PasswordAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		out[i] = PasswordAlphabet[n.Int64()]
	}
	return string(out), nil
}

func renderWhatsAppMessage(pending models.PendingUser, password string) string {
	return fmt.Sprintf(
		"Assalamu'alaikum %s,\n\nAkun Jamaah Anda telah disetujui.\n\nNomor anggota: %s\nEmail: %s\nPassword: %s\n\nSilakan masuk dan segera ganti password Anda.",
		pending.Name, pending.MemberID, pending.Email, password,
	)
}

func renderEmailMessage(pending models.PendingUser, password string) string {
	return fmt.Sprintf(
		"Assalamu'alaikum %s,\n\nSelamat! Pendaftaran Anda telah disetujui oleh admin.\n\nNomor anggota: %s\nPassword sementara: %s\n\nGunakan email ini dan password di atas untuk masuk ke aplikasi, lalu ganti password Anda di menu profil.",
		pending.Name, pending.MemberID, password,
	)
}
