package routes

import (
	"jamaah_server/controllers"
	"jamaah_server/services"

	"github.com/gorilla/mux"
)

// RegisterTimelineRoutes sets up the social feed routes under /api/timeline.
func RegisterTimelineRoutes(r *mux.Router, timeline *services.TimelineService, auth *services.AuthService) {
	controller := controllers.NewTimelineController(timeline, auth)

	timelineRouter := r.PathPrefix("/api/timeline").Subrouter()
	timelineRouter.HandleFunc("", controller.HandleList).Methods("GET")
	timelineRouter.HandleFunc("", controller.HandleCreate).Methods("POST")
	timelineRouter.HandleFunc("/bookmarks/list", controller.HandleListBookmarks).Methods("GET")
	timelineRouter.HandleFunc("/{id}", controller.HandleUpdate).Methods("PUT")
	timelineRouter.HandleFunc("/{id}", controller.HandleDelete).Methods("DELETE")
	timelineRouter.HandleFunc("/{id}/like", controller.HandleLike).Methods("POST")
	timelineRouter.HandleFunc("/{id}/comment", controller.HandleComment).Methods("POST")
	timelineRouter.HandleFunc("/{postId}/comment/{commentId}", controller.HandleDeleteComment).Methods("DELETE")
	timelineRouter.HandleFunc("/{id}/bookmark", controller.HandleBookmark).Methods("POST")
}
