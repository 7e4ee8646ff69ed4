package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	catalogx "github.com/alfredlabs/alfred/agent/catalog"
	contractx "github.com/alfredlabs/alfred/agent/contract"
	searchx "github.com/alfredlabs/alfred/agent/search"
	sessionx "github.com/alfredlabs/alfred/agent/session"
)

const (
	askName        = "Under what name should I make the reservation?"
	supportContact = "I'll connect you with customer support. Please call +91 80 12345678 during business hours (9 AM - 6 PM) for assistance with your reservation."

	replyLayout = "Monday, January 02 at 03:04 PM"
)

func (o *Orchestrator) stepIntentDetection(ctx context.Context, sess *sessionx.Session, text string) step {
	intent := o.classifier.Classify(ctx, text)
	switch intent {
	case contractx.IntentSearch:
		return step{next: sessionx.StateFindRestaurant}

	case contractx.IntentReservation:
		if sess.MatchedRestaurantID != 0 {
			return step{
				next:  sessionx.StateMakeReservation,
				reply: "Great! Let's make a reservation. " + askName,
			}
		}
		return step{
			next:  sessionx.StateFindRestaurant,
			reply: "I'd be happy to help you make a reservation. First, let's find a restaurant. Do you have any preferences for cuisine, location, or price range?",
		}

	case contractx.IntentDetails:
		if sess.MatchedRestaurantID != 0 {
			return step{next: sessionx.StateRestaurantDetails}
		}
		return step{
			next:  sessionx.StateFindRestaurant,
			reply: "I'd be happy to provide details about a restaurant. Which restaurant are you interested in?",
		}

	default:
		return step{
			next:  sessionx.StateNormalConversation,
			reply: o.responder.Chitchat(ctx, text, sess.RecentExchanges(3), o.restaurants),
		}
	}
}

func (o *Orchestrator) stepFindRestaurant(ctx context.Context, sess *sessionx.Session, text string) step {
	query := o.queries.ExtractQuery(ctx, text)
	results := searchx.Find(query, o.restaurants)
	sess.Results = results
	return step{
		next:  sessionx.StateRestaurantSuggestion,
		reply: o.responder.Suggestions(ctx, results, o.restaurants),
	}
}

func (o *Orchestrator) stepRestaurantSuggestion(ctx context.Context, sess *sessionx.Session, text string) step {
	id, matched := o.resolver.ResolveReference(ctx, text, sess.Results, sess.LastAssistant())
	if matched {
		sess.MatchedRestaurantID = id
		restaurant, found := catalogx.FindByID(o.restaurants, id)
		if !found {
			// Matched against a stale result set; start over.
			sess.MatchedRestaurantID = 0
			return step{next: sessionx.StateIntentDetection}
		}
		if wantsBooking(text) {
			return step{
				next:  sessionx.StateMakeReservation,
				reply: fmt.Sprintf("Great! I'll make a reservation at %s for you. %s", restaurant.Name, askName),
			}
		}
		return step{
			next:  sessionx.StateRestaurantDetails,
			reply: o.responder.Details(ctx, *restaurant, o.restaurants),
		}
	}

	if wantsBooking(text) {
		return step{
			next:  sessionx.StateRestaurantSuggestion,
			reply: "Which of these restaurants would you like to make a reservation for? Please specify the restaurant name clearly.",
		}
	}
	return step{next: sessionx.StateIntentDetection}
}

func (o *Orchestrator) stepRestaurantDetails(ctx context.Context, sess *sessionx.Session, text string) step {
	if wantsBooking(text) || o.classifier.Classify(ctx, text) == contractx.IntentReservation {
		return step{
			next:  sessionx.StateMakeReservation,
			reply: "Great! I'd be happy to make a reservation for you. " + askName,
		}
	}
	return step{next: sessionx.StateIntentDetection}
}

func (o *Orchestrator) stepMakeReservation(_ context.Context, sess *sessionx.Session, _ string) step {
	// Every path into this state has already asked for the name, so the
	// current input is the answer. Start from a clean draft and fall through
	// to the name prompt handler within the same turn.
	sess.ResetDraft()
	return step{next: sessionx.StateNamePrompt}
}

func (o *Orchestrator) stepNamePrompt(_ context.Context, sess *sessionx.Session, text string) step {
	sess.Draft.Name = text
	return step{
		next:  sessionx.StateDateTimePrompt,
		reply: fmt.Sprintf("Thank you, %s. When would you like to make your reservation? Please specify the date and time.", text),
	}
}

func (o *Orchestrator) stepDateTimePrompt(ctx context.Context, sess *sessionx.Session, text string) step {
	slot, clarification, ok := o.datetimes.ExtractDateTime(ctx, text)
	if !ok {
		return step{next: sessionx.StateDateTimePrompt, reply: clarification}
	}

	sess.Draft.When = slot.When
	confirmed := slot.Confirmation
	if confirmed == "" {
		confirmed = fmt.Sprintf("Got it! Reservation for %s.", slot.When.Format(replyLayout))
	}
	return step{
		next:  sessionx.StatePartyPrompt,
		reply: confirmed + " How many people will be in your party?",
	}
}

func (o *Orchestrator) stepPartyPrompt(ctx context.Context, sess *sessionx.Session, text string) step {
	size, clarification, ok := o.parties.ExtractPartySize(ctx, text)
	if !ok {
		return step{next: sessionx.StatePartyPrompt, reply: clarification}
	}

	sess.Draft.PartySize = size
	return step{
		next: sessionx.StateConfirmReservation,
		reply: fmt.Sprintf(
			"Great! Let me confirm your reservation:\n\nName: %s\nRestaurant: %s\nDate & Time: %s\nParty Size: %d people\n\nIs this information correct? (yes/no)",
			sess.Draft.Name,
			o.restaurantName(sess.MatchedRestaurantID),
			sess.Draft.When.Format(replyLayout),
			size,
		),
	}
}

func (o *Orchestrator) stepConfirmReservation(_ context.Context, _ *sessionx.Session, text string) step {
	if isAffirmative(text) {
		// No reply here: the commit runs in the same turn so the user's
		// "yes" is answered with the transaction's actual outcome.
		return step{next: sessionx.StateReservationConfirmed}
	}
	return step{
		next:  sessionx.StateMakeReservation,
		reply: "Let's try again. " + askName,
	}
}

func (o *Orchestrator) stepReservationConfirmed(ctx context.Context, sess *sessionx.Session, _ string) step {
	_, err := o.ledger.Commit(ctx, o.restaurants, sess.MatchedRestaurantID, sess.Draft)
	if err != nil {
		if errors.Is(err, contractx.ErrRestaurantNotFound) {
			o.log.Warn().Int64("restaurant_id", sess.MatchedRestaurantID).Msg("matched restaurant vanished before commit")
		} else {
			o.log.Error().Err(err).Msg("reservation commit failed")
		}
		return step{
			next:  sessionx.StateErrorHandling,
			reply: "I'm sorry, there was an error processing your reservation. Would you like to try again or speak with customer support?",
		}
	}

	reply := fmt.Sprintf(
		"Your reservation at %s has been confirmed! We look forward to serving you on %s. Is there anything else you would like to know?",
		o.restaurantName(sess.MatchedRestaurantID),
		sess.Draft.When.Format(replyLayout),
	)
	sess.ResetDraft()
	return step{next: sessionx.StateReservationSuccess, reply: reply}
}

func (o *Orchestrator) stepReservationSuccess(_ context.Context, _ *sessionx.Session, _ string) step {
	return step{
		next:  sessionx.StateThankYou,
		reply: "Thank you for using Alfred! Your reservation has been confirmed. Is there anything else you would like assistance with?",
	}
}

func (o *Orchestrator) stepErrorHandling(_ context.Context, _ *sessionx.Session, text string) step {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "try") || strings.Contains(lower, "again") {
		return step{
			next:  sessionx.StateReservationRetry,
			reply: "Let's try making your reservation again. " + askName,
		}
	}
	return step{next: sessionx.StateSupport, reply: supportContact}
}

func (o *Orchestrator) stepReservationRetry(_ context.Context, _ *sessionx.Session, _ string) step {
	return step{next: sessionx.StateMakeReservation}
}

func (o *Orchestrator) stepSupport(_ context.Context, _ *sessionx.Session, _ string) step {
	return step{
		next:  sessionx.StateIntentDetection,
		reply: "Our customer support team is available to help you. Is there anything else I can assist you with?",
	}
}

func (o *Orchestrator) stepThankYou(_ context.Context, _ *sessionx.Session, _ string) step {
	return step{next: sessionx.StateIntentDetection}
}

func (o *Orchestrator) stepNormalConversation(_ context.Context, _ *sessionx.Session, _ string) step {
	return step{next: sessionx.StateIntentDetection}
}

func (o *Orchestrator) restaurantName(id int64) string {
	if r, ok := catalogx.FindByID(o.restaurants, id); ok {
		return r.Name
	}
	return "the restaurant"
}

func wantsBooking(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "reserv") || strings.Contains(lower, "book")
}

func isAffirmative(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "yes") ||
		strings.Contains(lower, "correct") ||
		strings.Contains(lower, "confirm")
}
