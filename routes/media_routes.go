package routes

import (
	"jamaah_server/controllers"
	"jamaah_server/services"

	"github.com/gorilla/mux"
)

// RegisterMediaRoutes sets up presigned-URL routes under /api/media.
func RegisterMediaRoutes(r *mux.Router, media *services.MediaService, auth *services.AuthService) {
	controller := controllers.NewMediaController(media, auth)

	mediaRouter := r.PathPrefix("/api/media").Subrouter()
	mediaRouter.HandleFunc("/upload-url", controller.HandleUploadURL).Methods("POST")
	mediaRouter.HandleFunc("/read-url", controller.HandleReadURL).Methods("GET")
}
