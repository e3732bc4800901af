package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"jamaah_server/services"
	"jamaah_server/utils"
)

// TimelineController handles the social feed endpoints.
type TimelineController struct {
	Timeline *services.TimelineService
	Auth     *services.AuthService
}

// NewTimelineController creates a new instance of TimelineController.
func NewTimelineController(timeline *services.TimelineService, auth *services.AuthService) *TimelineController {
	return &TimelineController{Timeline: timeline, Auth: auth}
}

// HandleList returns all posts, newest first. Public.
func (c *TimelineController) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := c.Timeline.List(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, posts)
}

// HandleCreate creates a new post.
func (c *TimelineController) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Image   string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := c.Timeline.Create(r.Context(), user, req.Title, req.Content, req.Image)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, post)
}

// HandleUpdate applies a partial update to an owned post.
func (c *TimelineController) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	var update services.PostUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := c.Timeline.Update(r.Context(), user.ID, mux.Vars(r)["id"], update)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, post)
}

// HandleDelete removes an owned post.
func (c *TimelineController) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	if err := c.Timeline.Delete(r.Context(), user.ID, mux.Vars(r)["id"]); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleLike toggles the caller's like on a post.
func (c *TimelineController) HandleLike(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	likes, isLiked, err := c.Timeline.ToggleLike(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"likes":   likes,
		"isLiked": isLiked,
	})
}

// HandleComment appends a comment to a post.
func (c *TimelineController) HandleComment(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := c.Timeline.AddComment(r.Context(), user, mux.Vars(r)["id"], req.Text)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, comment)
}

// HandleDeleteComment removes a comment. Allowed for the comment author and
// the post owner.
func (c *TimelineController) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	vars := mux.Vars(r)
	if err := c.Timeline.DeleteComment(r.Context(), user.ID, vars["postId"], vars["commentId"]); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleBookmark toggles the post in the caller's bookmark set.
func (c *TimelineController) HandleBookmark(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	bookmarked, err := c.Timeline.ToggleBookmark(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"bookmarked": bookmarked})
}

// HandleListBookmarks resolves the caller's bookmarks to posts, skipping
// ids whose post no longer exists.
func (c *TimelineController) HandleListBookmarks(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	posts, err := c.Timeline.ListBookmarks(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, posts)
}
