package controllers

import (
	"net/http"

	"jamaah_server/models"
	"jamaah_server/services"
	"jamaah_server/utils"
)

// HealthCheckHandler provides a basic health check.
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// WelcomeHandler provides a welcome message.
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Jamaah API"})
}

// requireUser resolves the caller's identity or writes a 401 and returns
// nil. Every protected handler calls this before touching any data.
func requireUser(w http.ResponseWriter, r *http.Request, auth *services.AuthService) *models.AuthUser {
	user, err := auth.Verify(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		utils.WriteError(w, err)
		return nil
	}
	return user
}
