package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"jamaah_server/models"
	"jamaah_server/services"
	"jamaah_server/utils"
)

// EventController handles community events and RSVPs.
type EventController struct {
	Events *services.EventService
	Auth   *services.AuthService
}

// NewEventController creates a new instance of EventController.
func NewEventController(events *services.EventService, auth *services.AuthService) *EventController {
	return &EventController{Events: events, Auth: auth}
}

// HandleList returns all events. Public.
func (c *EventController) HandleList(w http.ResponseWriter, r *http.Request) {
	events, err := c.Events.List(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, events)
}

// HandleCreate stores a new event.
func (c *EventController) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := c.Events.Create(r.Context(), event)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, created)
}

// HandleRSVP adds the caller to an event's attendance list.
func (c *EventController) HandleRSVP(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	event, err := c.Events.RSVP(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, event)
}
