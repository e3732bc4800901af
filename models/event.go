package models

// Event is a community event with an RSVP list. The RSVP list only grows;
// membership is checked before appending.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	RSVP        []string `json:"rsvp"`
	CreatedAt   string   `json:"created_at"`
}

func EventKey(eventID string) string {
	return EventPrefix + eventID
}
