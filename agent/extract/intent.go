package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/alfredlabs/alfred/agent/contract"
)

type Classifier struct {
	oracle contractx.Oracle
	system string
	log    zerolog.Logger
}

func NewClassifier(oracle contractx.Oracle, systemPrompt string) *Classifier {
	return &Classifier{
		oracle: oracle,
		system: systemPrompt,
		log:    log.With().Str("component", "extract.classifier").Logger(),
	}
}

// Classify maps one user turn onto a closed intent set. Keyword matching on
// the raw reply hardens against an oracle that ignores the "return exactly
// one label" instruction; anything unrecognizable lands in chitchat.
func (c *Classifier) Classify(ctx context.Context, text string) contractx.Intent {
	raw, err := c.oracle.Infer(ctx, contractx.InferRequest{
		Prompt:       fmt.Sprintf("Determine the intent from this user input: '%s'", text),
		SystemPrompt: c.system,
	})
	if err != nil {
		c.log.Debug().Err(err).Msg("intent oracle call failed, defaulting to conversation")
		return contractx.IntentChitchat
	}

	reply := strings.ToLower(raw)
	switch {
	case strings.Contains(reply, "restaurant_search") || strings.Contains(reply, "search"):
		return contractx.IntentSearch
	case strings.Contains(reply, "reservation") || strings.Contains(reply, "book"):
		return contractx.IntentReservation
	case strings.Contains(reply, "details") || strings.Contains(reply, "information"):
		return contractx.IntentDetails
	default:
		return contractx.IntentChitchat
	}
}
