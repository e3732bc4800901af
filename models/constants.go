package models

// Member statuses
const (
	MemberStatusPending  = "pending_approval"
	MemberStatusApproved = "approved"
)

// Profile roles
const (
	RoleMember = "Member"
	RoleAdmin  = "Admin"
)

// Notification types
const (
	NotificationTypeApproval = "approval"
	NotificationTypeInfo     = "info"
	NotificationTypeSuccess  = "success"
	NotificationTypeWarning  = "warning"
)

// Key prefixes for the flat key-value store. Every record lives under its
// own namespace so listing a "table" is a prefix scan.
const (
	InvitationPrefix   = "invitation:"
	PendingUserPrefix  = "pending_user:"
	MemberPrefix       = "member:"
	MemberUserPrefix   = "member_user:"
	ProfilePrefix      = "profile:"
	UsernamePrefix     = "username:"
	NotificationPrefix = "notification:"
	TimelinePrefix     = "timeline:"
	BookmarksPrefix    = "bookmarks:"
	ChatPrefix         = "chat:"
	EventPrefix        = "event:"
)
