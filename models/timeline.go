package models

// Comment on a timeline post. UserName is snapshotted from the author's
// profile at creation time and not kept in sync with later edits.
type Comment struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// TimelinePost is a social feed item with likes, comments and bookmarks.
type TimelinePost struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at,omitempty"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	Status    string    `json:"status"`
}

func TimelineKey(postID string) string {
	return TimelinePrefix + postID
}

// BookmarksKey holds a user's whole bookmark set as one value.
func BookmarksKey(userID string) string {
	return BookmarksPrefix + userID
}
