// Package orchestrator is the finite-state conversation manager. It consumes
// one user utterance per turn, drives the extraction services and search
// engine, mutates the session, and always yields exactly one reply.
package orchestrator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	catalogx "github.com/alfredlabs/alfred/agent/catalog"
	contractx "github.com/alfredlabs/alfred/agent/contract"
	sessionx "github.com/alfredlabs/alfred/agent/session"
)

// Greeting is emitted once at session start by the bootstrap, before the
// first turn enters the state machine.
const Greeting = "Hello! I'm Alfred, your Bengaluru restaurant assistant. I can help you find restaurants and make reservations. What are you looking for today?"

const fallbackReply = "I'm not sure what you're looking for. Would you like to search for restaurants or make a reservation?"

// maxHops bounds the trampoline: states that transition without replying
// re-process the same input against the new state, and a buggy transition
// table must not loop forever. The longest legitimate chain is three hops
// (e.g. thank-you -> intent-detection -> find-restaurant).
const maxHops = 5

type handler func(ctx context.Context, sess *sessionx.Session, text string) step

type step struct {
	next  sessionx.State
	reply string
}

type Orchestrator struct {
	restaurants []catalogx.Restaurant

	classifier contractx.IntentClassifier
	queries    contractx.QueryExtractor
	datetimes  contractx.DateTimeExtractor
	parties    contractx.PartySizeExtractor
	resolver   contractx.ReferenceResolver
	responder  contractx.Responder
	ledger     contractx.ReservationLedger

	handlers map[sessionx.State]handler
	now      func() time.Time
	log      zerolog.Logger
}

func New(
	restaurants []catalogx.Restaurant,
	classifier contractx.IntentClassifier,
	queries contractx.QueryExtractor,
	datetimes contractx.DateTimeExtractor,
	parties contractx.PartySizeExtractor,
	resolver contractx.ReferenceResolver,
	responder contractx.Responder,
	ledger contractx.ReservationLedger,
) (*Orchestrator, error) {
	if classifier == nil {
		return nil, errors.New("intent classifier is required")
	}
	if queries == nil {
		return nil, errors.New("query extractor is required")
	}
	if datetimes == nil {
		return nil, errors.New("datetime extractor is required")
	}
	if parties == nil {
		return nil, errors.New("party size extractor is required")
	}
	if resolver == nil {
		return nil, errors.New("reference resolver is required")
	}
	if responder == nil {
		return nil, errors.New("responder is required")
	}
	if ledger == nil {
		return nil, errors.New("reservation ledger is required")
	}

	o := &Orchestrator{
		restaurants: restaurants,
		classifier:  classifier,
		queries:     queries,
		datetimes:   datetimes,
		parties:     parties,
		resolver:    resolver,
		responder:   responder,
		ledger:      ledger,
		now:         time.Now,
		log:         log.With().Str("component", "orchestrator").Logger(),
	}
	o.handlers = map[sessionx.State]handler{
		sessionx.StateIntentDetection:      o.stepIntentDetection,
		sessionx.StateFindRestaurant:       o.stepFindRestaurant,
		sessionx.StateRestaurantSuggestion: o.stepRestaurantSuggestion,
		sessionx.StateRestaurantDetails:    o.stepRestaurantDetails,
		sessionx.StateMakeReservation:      o.stepMakeReservation,
		sessionx.StateNamePrompt:           o.stepNamePrompt,
		sessionx.StateDateTimePrompt:       o.stepDateTimePrompt,
		sessionx.StatePartyPrompt:          o.stepPartyPrompt,
		sessionx.StateConfirmReservation:   o.stepConfirmReservation,
		sessionx.StateReservationConfirmed: o.stepReservationConfirmed,
		sessionx.StateReservationSuccess:   o.stepReservationSuccess,
		sessionx.StateErrorHandling:        o.stepErrorHandling,
		sessionx.StateReservationRetry:     o.stepReservationRetry,
		sessionx.StateSupport:              o.stepSupport,
		sessionx.StateThankYou:             o.stepThankYou,
		sessionx.StateNormalConversation:   o.stepNormalConversation,
	}
	return o, nil
}

// HandleTurn resolves one user turn completely before returning: states that
// set a next-state without a reply are re-entered with the same input until
// one produces text. A turn never surfaces an empty reply.
//
// Re-delivery of the immediately preceding input is an idempotent no-op: no
// transition runs and the previous assistant message is returned, so a
// re-submitted "yes" cannot commit a second reservation.
func (o *Orchestrator) HandleTurn(ctx context.Context, sess *sessionx.Session, text string) (string, error) {
	if sess == nil {
		return "", contractx.ErrNilSession
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", contractx.ErrInvalidMessage
	}

	if sess.SeenInput(text) {
		o.log.Debug().Str("session", sess.ID).Msg("duplicate turn ignored")
		return sess.LastAssistant(), nil
	}
	sess.MarkInput(text)
	sess.Append(sessionx.RoleUser, text)

	reply := ""
	for hop := 0; hop < maxHops; hop++ {
		h, ok := o.handlers[sess.State]
		if !ok {
			o.log.Warn().Str("state", string(sess.State)).Msg("unknown state, resetting to intent detection")
			sess.State = sessionx.StateIntentDetection
			continue
		}
		res := h(ctx, sess, text)
		o.log.Debug().
			Str("session", sess.ID).
			Str("from", string(sess.State)).
			Str("to", string(res.next)).
			Bool("replied", res.reply != "").
			Msg("transition")
		sess.State = res.next
		if res.reply != "" {
			reply = res.reply
			break
		}
	}
	if reply == "" {
		reply = fallbackReply
	}

	sess.Append(sessionx.RoleAssistant, reply)
	sess.Touch(o.now())
	return reply, nil
}
