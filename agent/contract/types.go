package contract

import "time"

// Intent is the classified purpose of one user turn.
type Intent string

const (
	IntentSearch      Intent = "restaurant_search"
	IntentReservation Intent = "reservation"
	IntentDetails     Intent = "details"
	IntentChitchat    Intent = "normal_conversation"
)

// SearchQuery holds the optional restaurant search constraints extracted from
// a user turn. An empty field means "no constraint".
type SearchQuery struct {
	Cuisine    string `json:"cuisine,omitempty"`
	Location   string `json:"location,omitempty"`
	PriceRange string `json:"price_range,omitempty"`
	Seating    string `json:"seating,omitempty"`
}

func (q SearchQuery) IsEmpty() bool {
	return q.Cuisine == "" && q.Location == "" && q.PriceRange == "" && q.Seating == ""
}

// DateTimeSlot is a resolved reservation date-time. Confirmation carries a
// corrected confirmation sentence when the oracle asserted a weekday that
// disagrees with the one computed from the date; the computed weekday wins.
type DateTimeSlot struct {
	When         time.Time
	Confirmation string
}

// InferRequest is one blocking call to the external inference service.
// Metadata, when set, is catalog grounding text appended to the system
// prompt.
type InferRequest struct {
	Prompt       string
	SystemPrompt string
	Metadata     string
}
