package routes

import (
	"jamaah_server/controllers"
	"jamaah_server/services"

	"github.com/gorilla/mux"
)

// RegisterProfileRoutes sets up the profile routes under /api/profile.
func RegisterProfileRoutes(r *mux.Router, profiles *services.ProfileService, members *services.MemberService, auth *services.AuthService) {
	controller := controllers.NewProfileController(profiles, members, auth)

	profileRouter := r.PathPrefix("/api/profile").Subrouter()
	profileRouter.HandleFunc("", controller.HandleGetMe).Methods("GET")
	profileRouter.HandleFunc("", controller.HandleUpdateMe).Methods("PATCH")
}
