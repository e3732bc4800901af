package routes

import (
	"jamaah_server/controllers"
	"jamaah_server/services"

	"github.com/gorilla/mux"
)

// RegisterNotificationRoutes sets up routes for the notification ledger
// under /api/notifications.
func RegisterNotificationRoutes(r *mux.Router, notifications *services.NotificationService, auth *services.AuthService) {
	controller := controllers.NewNotificationController(notifications, auth)

	notificationRouter := r.PathPrefix("/api/notifications").Subrouter()
	notificationRouter.HandleFunc("", controller.HandleList).Methods("GET")
	notificationRouter.HandleFunc("/read-all", controller.HandleMarkAllRead).Methods("POST")
	notificationRouter.HandleFunc("/{id}/read", controller.HandleMarkRead).Methods("POST")
}
