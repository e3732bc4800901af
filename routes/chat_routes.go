package routes

import (
	"jamaah_server/controllers"
	"jamaah_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up the chat routes under /api/chats.
func RegisterChatRoutes(r *mux.Router, chats *services.ChatService, auth *services.AuthService) {
	controller := controllers.NewChatController(chats, auth)

	chatRouter := r.PathPrefix("/api/chats").Subrouter()
	chatRouter.HandleFunc("", controller.HandleListChats).Methods("GET")
	chatRouter.HandleFunc("", controller.HandleOpenChat).Methods("POST")
	chatRouter.HandleFunc("/{id}", controller.HandleDeleteChat).Methods("DELETE")
	chatRouter.HandleFunc("/{id}/messages", controller.HandleGetMessages).Methods("GET")
	chatRouter.HandleFunc("/{id}/messages", controller.HandleSendMessage).Methods("POST")
}
