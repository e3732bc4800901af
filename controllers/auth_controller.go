package controllers

import (
	"encoding/json"
	"net/http"

	"jamaah_server/services"
	"jamaah_server/utils"
)

// AuthController handles signup, sign-in and the admin approval workflow.
type AuthController struct {
	Members  *services.MemberService
	Auth     *services.AuthService
	Profiles *services.ProfileService
}

// NewAuthController creates a new instance of AuthController.
func NewAuthController(members *services.MemberService, auth *services.AuthService, profiles *services.ProfileService) *AuthController {
	return &AuthController{Members: members, Auth: auth, Profiles: profiles}
}

// HandleSignup processes an invitation-gated signup request.
func (c *AuthController) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req services.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	memberID, err := c.Members.Signup(r.Context(), req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"memberId": memberID})
}

// HandleSignIn authenticates and applies the pending-approval gate.
func (c *AuthController) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "Email dan password wajib diisi")
		return
	}

	session, err := c.Members.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, session)
}

// HandleApproveUser completes a pending signup. Requires an authenticated
// admin.
func (c *AuthController) HandleApproveUser(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}
	if !c.Profiles.IsAdmin(r.Context(), user.ID) {
		utils.WriteError(w, utils.ErrForbidden)
		return
	}

	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "userId is required")
		return
	}

	result, err := c.Members.ApproveUser(r.Context(), req.UserID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

// HandleCreateInvitation records a new invitation code. Requires an
// authenticated admin.
func (c *AuthController) HandleCreateInvitation(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}
	if !c.Profiles.IsAdmin(r.Context(), user.ID) {
		utils.WriteError(w, utils.ErrForbidden)
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	invitation, err := c.Members.CreateInvitation(r.Context(), req.Code)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, invitation)
}
