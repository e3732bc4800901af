package models

// UserProfile defines the structure for user profiles. Created lazily on
// first profile read or chat interaction if absent.
type UserProfile struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	Username      string  `json:"username,omitempty"`
	Role          string  `json:"role"`
	AvatarURL     string  `json:"avatar_url,omitempty"`
	MemberSince   string  `json:"member_since"`
	WalletBalance float64 `json:"wallet_balance"`
}

func ProfileKey(userID string) string {
	return ProfilePrefix + userID
}

// UsernameKey points a claimed username back at its owner so uniqueness can
// be checked with a single get.
func UsernameKey(username string) string {
	return UsernamePrefix + username
}
