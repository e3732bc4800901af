package controllers

import (
	"encoding/json"
	"net/http"

	"jamaah_server/services"
	"jamaah_server/utils"
)

// ProfileController handles the caller's own profile.
type ProfileController struct {
	Profiles *services.ProfileService
	Members  *services.MemberService
	Auth     *services.AuthService
}

// NewProfileController creates a new instance of ProfileController.
func NewProfileController(profiles *services.ProfileService, members *services.MemberService, auth *services.AuthService) *ProfileController {
	return &ProfileController{Profiles: profiles, Members: members, Auth: auth}
}

// HandleGetMe returns the caller's profile, creating it on first read.
func (c *ProfileController) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	profile, err := c.Profiles.GetOrCreate(r.Context(), user)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	// Attach the member record when one exists; brand-new admin-created
	// accounts may not have one.
	response := map[string]interface{}{"profile": profile}
	if member, err := c.Members.MemberStatus(r.Context(), user.ID); err == nil {
		response["member"] = member
	}
	utils.WriteJSON(w, http.StatusOK, response)
}

// HandleUpdateMe applies a partial update to the caller's profile.
func (c *ProfileController) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	var update services.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := c.Profiles.Update(r.Context(), user.ID, update)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, profile)
}
