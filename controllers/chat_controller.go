package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"jamaah_server/services"
	"jamaah_server/utils"
)

// ChatController handles the poll-based chat endpoints.
type ChatController struct {
	Chats *services.ChatService
	Auth  *services.AuthService
}

// NewChatController creates a new instance of ChatController.
func NewChatController(chats *services.ChatService, auth *services.AuthService) *ChatController {
	return &ChatController{Chats: chats, Auth: auth}
}

// HandleListChats returns the caller's chats, most recently active first.
func (c *ChatController) HandleListChats(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	chats, err := c.Chats.ListChats(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, chats)
}

// HandleOpenChat returns (or creates) the chat with another user.
func (c *ChatController) HandleOpenChat(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	var req struct {
		ParticipantID string `json:"participantId"`
		ProductID     string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	chat, err := c.Chats.OpenChat(r.Context(), user, req.ParticipantID, req.ProductID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, chat)
}

// HandleGetMessages returns a chat's messages. Participant-only.
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	messages, err := c.Chats.GetMessages(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, messages)
}

// HandleSendMessage appends a message to a chat. Participant-only.
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	message, err := c.Chats.SendMessage(r.Context(), user.ID, mux.Vars(r)["id"], req.Text)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, message)
}

// HandleDeleteChat removes a conversation. Participant-only.
func (c *ChatController) HandleDeleteChat(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	if err := c.Chats.DeleteChat(r.Context(), user.ID, mux.Vars(r)["id"]); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
