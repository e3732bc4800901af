package controllers

import (
	"encoding/json"
	"net/http"

	"jamaah_server/services"
	"jamaah_server/utils"
)

// MediaController issues presigned upload/read URLs for images.
type MediaController struct {
	Media *services.MediaService
	Auth  *services.AuthService
}

// NewMediaController creates a new instance of MediaController.
func NewMediaController(media *services.MediaService, auth *services.AuthService) *MediaController {
	return &MediaController{Media: media, Auth: auth}
}

// HandleUploadURL returns a presigned PUT URL for a new image.
func (c *MediaController) HandleUploadURL(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	var req struct {
		Folder   string `json:"folder"`
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FileName == "" {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "fileName is required")
		return
	}
	if req.Folder == "" {
		req.Folder = "uploads"
	}

	url, key, err := c.Media.GenerateUploadURL(r.Context(), req.Folder, req.FileName, req.FileType)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"uploadUrl": url, "key": key})
}

// HandleReadURL returns a presigned GET URL for a stored object.
func (c *MediaController) HandleReadURL(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "key is required")
		return
	}

	url, err := c.Media.GenerateReadURL(r.Context(), key)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}
