package routes

import (
	"jamaah_server/controllers"
	"jamaah_server/services"

	"github.com/gorilla/mux"
)

// RegisterEventRoutes sets up the event routes under /api/events.
func RegisterEventRoutes(r *mux.Router, events *services.EventService, auth *services.AuthService) {
	controller := controllers.NewEventController(events, auth)

	eventRouter := r.PathPrefix("/api/events").Subrouter()
	eventRouter.HandleFunc("", controller.HandleList).Methods("GET")
	eventRouter.HandleFunc("", controller.HandleCreate).Methods("POST")
	eventRouter.HandleFunc("/{id}/rsvp", controller.HandleRSVP).Methods("POST")
}
