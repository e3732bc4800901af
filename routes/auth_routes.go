package routes

import (
	"jamaah_server/controllers"
	"jamaah_server/services"

	"github.com/gorilla/mux"
)

// RegisterAuthRoutes sets up signup, sign-in and the admin approval
// endpoints.
func RegisterAuthRoutes(r *mux.Router, members *services.MemberService, auth *services.AuthService, profiles *services.ProfileService) {
	controller := controllers.NewAuthController(members, auth, profiles)

	r.HandleFunc("/auth/signup", controller.HandleSignup).Methods("POST")
	r.HandleFunc("/auth/signin", controller.HandleSignIn).Methods("POST")

	r.HandleFunc("/admin/approve-user", controller.HandleApproveUser).Methods("POST")
	r.HandleFunc("/admin/invitations", controller.HandleCreateInvitation).Methods("POST")
}
