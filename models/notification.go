package models

// Notification is one entry in a user's append-only notification ledger.
// Only the Read flag is ever mutated.
type Notification struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	MemberID  string `json:"member_id,omitempty"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

// NotificationKey keys a notification under its owner so a per-user listing
// is a prefix scan.
func NotificationKey(userID, id string) string {
	return NotificationPrefix + userID + ":" + id
}

func NotificationUserPrefix(userID string) string {
	return NotificationPrefix + userID + ":"
}
