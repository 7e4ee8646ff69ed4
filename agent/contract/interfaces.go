package contract

import (
	"context"

	catalogx "github.com/alfredlabs/alfred/agent/catalog"
	sessionx "github.com/alfredlabs/alfred/agent/session"
)

// Oracle is the untrusted free-text inference boundary. Implementations must
// fail closed: transport and service errors surface as an error here and are
// degraded to an absent result by the callers; they never crash a turn.
type Oracle interface {
	Infer(ctx context.Context, req InferRequest) (string, error)
}

// The extraction ports below never return errors. A failure of the upstream
// oracle degrades to the zero value (or ok=false) plus a human-readable
// clarification where one is needed.

type IntentClassifier interface {
	Classify(ctx context.Context, text string) Intent
}

type QueryExtractor interface {
	ExtractQuery(ctx context.Context, text string) SearchQuery
}

type DateTimeExtractor interface {
	ExtractDateTime(ctx context.Context, text string) (DateTimeSlot, string, bool)
}

type PartySizeExtractor interface {
	ExtractPartySize(ctx context.Context, text string) (int, string, bool)
}

// ReferenceResolver maps a user turn onto one of the candidate restaurants.
// A deterministic name match is preferred; the oracle is only consulted when
// no candidate name occurs in the text.
type ReferenceResolver interface {
	ResolveReference(ctx context.Context, text string, candidates []catalogx.Restaurant, lastAssistant string) (int64, bool)
}

// Responder produces the generated user-facing replies. Every method returns
// usable text even when the oracle fails.
type Responder interface {
	Suggestions(ctx context.Context, matches []catalogx.Restaurant, all []catalogx.Restaurant) string
	Details(ctx context.Context, restaurant catalogx.Restaurant, all []catalogx.Restaurant) string
	Chitchat(ctx context.Context, text string, history []sessionx.Exchange, all []catalogx.Restaurant) string
}

// ReservationLedger commits a completed draft against a restaurant and
// persists the whole catalog.
type ReservationLedger interface {
	Commit(ctx context.Context, restaurants []catalogx.Restaurant, restaurantID int64, draft sessionx.Draft) (catalogx.Reservation, error)
}
