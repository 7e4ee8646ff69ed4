// Package session holds the mutable per-conversation context threaded
// through every orchestrator turn. Exactly one Session exists per active
// conversation; it is created at session start and discarded at session end.
package session

import (
	"strings"
	"time"

	"github.com/google/uuid"

	catalogx "github.com/alfredlabs/alfred/agent/catalog"
)

// State is the conversation machine's current position. The set is closed;
// the orchestrator owns the transition table.
type State string

const (
	StateIntentDetection      State = "intent_detection"
	StateFindRestaurant       State = "find_restaurant"
	StateRestaurantSuggestion State = "restaurant_suggestion"
	StateRestaurantDetails    State = "restaurant_details"
	StateMakeReservation      State = "make_reservation"
	StateNamePrompt           State = "name_prompt"
	StateDateTimePrompt       State = "datetime_prompt"
	StatePartyPrompt          State = "party_prompt"
	StateConfirmReservation   State = "confirm_reservation"
	StateReservationConfirmed State = "reservation_confirmed"
	StateReservationSuccess   State = "reservation_success"
	StateErrorHandling        State = "error_handling"
	StateReservationRetry     State = "reservation_retry"
	StateSupport              State = "support"
	StateThankYou             State = "thank_you"
	StateNormalConversation   State = "normal_conversation"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Exchange is one user/assistant pair, used to ground generated chitchat.
type Exchange struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// Draft accumulates the reservation slots across turns. It is fully
// populated only immediately before commit and reset right after.
type Draft struct {
	Name      string    `json:"name,omitempty"`
	When      time.Time `json:"when,omitempty"`
	PartySize int       `json:"party_size,omitempty"`
}

func (d Draft) Complete() bool {
	return d.Name != "" && !d.When.IsZero() && d.PartySize > 0
}

type Session struct {
	ID                  string                `json:"id"`
	State               State                 `json:"state"`
	History             []Message             `json:"history"`
	MatchedRestaurantID int64                 `json:"matched_restaurant_id,omitempty"`
	Results             []catalogx.Restaurant `json:"results,omitempty"`
	Draft               Draft                 `json:"draft"`
	LastInput           string                `json:"last_input,omitempty"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

func New(now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		State:     StateIntentDetection,
		UpdatedAt: now.UTC(),
	}
}

func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

func (s *Session) Append(role Role, content string) {
	s.History = append(s.History, Message{Role: role, Content: content})
}

// LastAssistant returns the most recent assistant message, or "".
func (s *Session) LastAssistant() string {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == RoleAssistant {
			return s.History[i].Content
		}
	}
	return ""
}

// SeenInput reports whether text is a re-delivery of the turn that was
// already processed. Used to make duplicate submissions a no-op.
func (s *Session) SeenInput(text string) bool {
	return s.LastInput != "" && s.LastInput == strings.TrimSpace(text)
}

func (s *Session) MarkInput(text string) {
	s.LastInput = strings.TrimSpace(text)
}

// RecentExchanges pairs up to n of the latest user/assistant exchanges,
// oldest first.
func (s *Session) RecentExchanges(n int) []Exchange {
	exchanges := make([]Exchange, 0, n)
	for i := len(s.History) - 1; i > 0 && len(exchanges) < n; i-- {
		if s.History[i].Role != RoleAssistant || s.History[i-1].Role != RoleUser {
			continue
		}
		exchanges = append(exchanges, Exchange{
			User:      s.History[i-1].Content,
			Assistant: s.History[i].Content,
		})
	}
	// reverse into chronological order
	for i, j := 0, len(exchanges)-1; i < j; i, j = i+1, j-1 {
		exchanges[i], exchanges[j] = exchanges[j], exchanges[i]
	}
	return exchanges
}

func (s *Session) ResetDraft() {
	s.Draft = Draft{}
}
