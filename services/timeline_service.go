package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"jamaah_server/models"
	"jamaah_server/utils"
)

// TimelineService implements the social feed: posts, likes, comments and
// per-user bookmark sets. Toggles are plain read-modify-write against the
// store; concurrent toggles on one record are last-write-wins.
type TimelineService struct {
	KV       KVStore
	Profiles *ProfileService
	Log      *zap.SugaredLogger
}

// PostUpdate is a partial post update; nil fields are left alone.
type PostUpdate struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Image   *string `json:"image"`
}

// List returns all posts, newest first.
func (s *TimelineService) List(ctx context.Context) ([]models.TimelinePost, error) {
	entries, err := s.KV.GetByPrefix(ctx, models.TimelinePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]models.TimelinePost, 0, len(entries))
	for key, data := range entries {
		var post models.TimelinePost
		if err := json.Unmarshal(data, &post); err != nil {
			s.Log.Warnw("skipping malformed post", "key", key, "error", err)
			continue
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
	return posts, nil
}

// Get returns a single post.
func (s *TimelineService) Get(ctx context.Context, postID string) (*models.TimelinePost, error) {
	data, err := s.KV.Get(ctx, models.TimelineKey(postID))
	if err != nil {
		return nil, err
	}
	var post models.TimelinePost
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, fmt.Errorf("failed to parse post: %w", err)
	}
	return &post, nil
}

// Create stores a new post. The author's display name is snapshotted from
// the profile at creation time and not kept in sync with later edits.
func (s *TimelineService) Create(ctx context.Context, user *models.AuthUser, title, content, image string) (*models.TimelinePost, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, utils.Validationf("Judul dan konten wajib diisi")
	}

	profile, err := s.Profiles.GetOrCreate(ctx, user)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := models.TimelinePost{
		ID:        fmt.Sprintf("%d_%s", now.UnixMilli(), user.ID),
		UserID:    user.ID,
		UserName:  profile.Name,
		Title:     title,
		Content:   content,
		Image:     image,
		CreatedAt: now.Format(time.RFC3339Nano),
		Likes:     []string{},
		Comments:  []models.Comment{},
		Status:    "active",
	}
	if err := s.put(ctx, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update applies a partial update. Owner-only.
func (s *TimelineService) Update(ctx context.Context, userID, postID string, update PostUpdate) (*models.TimelinePost, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, utils.ErrForbidden
	}

	if update.Title != nil && strings.TrimSpace(*update.Title) != "" {
		post.Title = strings.TrimSpace(*update.Title)
	}
	if update.Content != nil && strings.TrimSpace(*update.Content) != "" {
		post.Content = strings.TrimSpace(*update.Content)
	}
	if update.Image != nil {
		post.Image = *update.Image
	}
	post.UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)

	if err := s.put(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post entirely. Owner-only, no tombstone.
func (s *TimelineService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return utils.ErrForbidden
	}
	return s.KV.Delete(ctx, models.TimelineKey(postID))
}

// ToggleLike flips the caller's membership in the post's likes set and
// returns the resulting set. Two toggles by the same user return the set to
// its original membership.
func (s *TimelineService) ToggleLike(ctx context.Context, userID, postID string) ([]string, bool, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, false, err
	}

	liked := false
	filtered := make([]string, 0, len(post.Likes))
	for _, id := range post.Likes {
		if id == userID {
			liked = true
			continue
		}
		filtered = append(filtered, id)
	}
	if !liked {
		filtered = append(filtered, userID)
	}
	post.Likes = filtered

	if err := s.put(ctx, post); err != nil {
		return nil, false, err
	}
	return post.Likes, !liked, nil
}

// AddComment appends a comment to the post. The commenter's name is
// snapshotted the same way as the post author's.
func (s *TimelineService) AddComment(ctx context.Context, user *models.AuthUser, postID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, utils.Validationf("Komentar tidak boleh kosong")
	}

	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	profile, err := s.Profiles.GetOrCreate(ctx, user)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := models.Comment{
		ID:        fmt.Sprintf("%d_%s", now.UnixMilli(), user.ID),
		UserID:    user.ID,
		UserName:  profile.Name,
		Text:      text,
		CreatedAt: now.Format(time.RFC3339Nano),
	}
	post.Comments = append(post.Comments, comment)

	if err := s.put(ctx, post); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment. Allowed for the comment's author and for
// the post's owner; anyone else gets Forbidden.
func (s *TimelineService) DeleteComment(ctx context.Context, userID, postID, commentID string) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}

	index := -1
	for i, c := range post.Comments {
		if c.ID == commentID {
			index = i
			break
		}
	}
	if index == -1 {
		return fmt.Errorf("comment %s: %w", commentID, utils.ErrNotFound)
	}

	if post.Comments[index].UserID != userID && post.UserID != userID {
		return utils.ErrForbidden
	}

	post.Comments = append(post.Comments[:index], post.Comments[index+1:]...)
	return s.put(ctx, post)
}

// ToggleBookmark flips the post's membership in the caller's bookmark set,
// which lives in its own record independent of the post.
func (s *TimelineService) ToggleBookmark(ctx context.Context, userID, postID string) (bool, error) {
	bookmarks, err := s.bookmarks(ctx, userID)
	if err != nil {
		return false, err
	}

	found := false
	filtered := make([]string, 0, len(bookmarks))
	for _, id := range bookmarks {
		if id == postID {
			found = true
			continue
		}
		filtered = append(filtered, id)
	}
	if !found {
		filtered = append(filtered, postID)
	}

	data, err := json.Marshal(filtered)
	if err != nil {
		return false, fmt.Errorf("failed to marshal bookmarks: %w", err)
	}
	if err := s.KV.Set(ctx, models.BookmarksKey(userID), data); err != nil {
		return false, err
	}
	return !found, nil
}

// ListBookmarks resolves the caller's bookmarked posts. IDs whose post has
// since been deleted are silently skipped.
func (s *TimelineService) ListBookmarks(ctx context.Context, userID string) ([]models.TimelinePost, error) {
	bookmarks, err := s.bookmarks(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts := make([]models.TimelinePost, 0, len(bookmarks))
	for _, postID := range bookmarks {
		post, err := s.Get(ctx, postID)
		if errors.Is(err, utils.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, nil
}

func (s *TimelineService) bookmarks(ctx context.Context, userID string) ([]string, error) {
	data, err := s.KV.Get(ctx, models.BookmarksKey(userID))
	if errors.Is(err, utils.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks: %w", err)
	}
	return ids, nil
}

func (s *TimelineService) put(ctx context.Context, post *models.TimelinePost) error {
	data, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("failed to marshal post: %w", err)
	}
	return s.KV.Set(ctx, models.TimelineKey(post.ID), data)
}
