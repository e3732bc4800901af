package models

// InvitationCode is created by operators out-of-band and checked at signup.
type InvitationCode struct {
	Code      string `json:"code"`
	Valid     bool   `json:"valid"`
	CreatedAt string `json:"created_at"`
	UsedBy    string `json:"used_by,omitempty"`
}

// InvitationKey returns the store key for an invitation code.
func InvitationKey(code string) string {
	return InvitationPrefix + code
}

// InvitationUsedKey is a side record marking that a code has been consumed.
func InvitationUsedKey(code string) string {
	return InvitationPrefix + code + ":used"
}

// PendingUser represents a signup awaiting admin action. Deleted once the
// approval completes.
type PendingUser struct {
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	MemberID       string `json:"member_id"`
	InvitationCode string `json:"invitation_code"`
	CreatedAt      string `json:"created_at"`
}

func PendingUserKey(userID string) string {
	return PendingUserPrefix + userID
}

// MemberIDRecord maps a human-readable member identifier (JMH-XXXXXX) to an
// account. Created at signup, flipped to approved on admin approval, never
// deleted.
type MemberIDRecord struct {
	MemberID   string `json:"member_id"`
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	ApprovedAt string `json:"approved_at,omitempty"`
}

func MemberKey(memberID string) string {
	return MemberPrefix + memberID
}

// MemberUserKey is a secondary index: userId -> memberId.
func MemberUserKey(userID string) string {
	return MemberUserPrefix + userID
}
