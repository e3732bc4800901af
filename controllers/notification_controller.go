package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"jamaah_server/services"
	"jamaah_server/utils"
)

// NotificationController exposes the per-user notification ledger.
type NotificationController struct {
	Notifications *services.NotificationService
	Auth          *services.AuthService
}

// NewNotificationController creates a new instance of NotificationController.
func NewNotificationController(notifications *services.NotificationService, auth *services.AuthService) *NotificationController {
	return &NotificationController{Notifications: notifications, Auth: auth}
}

// HandleList returns the caller's notifications, newest first.
func (c *NotificationController) HandleList(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	notifications, err := c.Notifications.List(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, notifications)
}

// HandleMarkRead flips one notification to read. Idempotent.
func (c *NotificationController) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	id := mux.Vars(r)["id"]
	if err := c.Notifications.MarkRead(r.Context(), user.ID, id); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleMarkAllRead flips every unread notification. Idempotent.
func (c *NotificationController) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	if err := c.Notifications.MarkAllRead(r.Context(), user.ID); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
