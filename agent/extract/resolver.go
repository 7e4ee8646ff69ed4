package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	catalogx "github.com/alfredlabs/alfred/agent/catalog"
	contractx "github.com/alfredlabs/alfred/agent/contract"
)

type Resolver struct {
	oracle contractx.Oracle
	system string
	log    zerolog.Logger
}

func NewResolver(oracle contractx.Oracle, systemPrompt string) *Resolver {
	return &Resolver{
		oracle: oracle,
		system: systemPrompt,
		log:    log.With().Str("component", "extract.resolver").Logger(),
	}
}

// ResolveReference identifies which candidate the user means. A
// case-insensitive substring match of a candidate name inside the text wins
// outright; only when no name occurs is the oracle asked to pick an id from
// the candidate list, with the previous assistant message as context.
func (r *Resolver) ResolveReference(ctx context.Context, text string, candidates []catalogx.Restaurant, lastAssistant string) (int64, bool) {
	if len(candidates) == 0 {
		return 0, false
	}

	lower := strings.ToLower(text)
	for _, c := range candidates {
		if c.Name != "" && strings.Contains(lower, strings.ToLower(c.Name)) {
			return c.ID, true
		}
	}

	type candidateRef struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	refs := make([]candidateRef, 0, len(candidates))
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		refs = append(refs, candidateRef{ID: c.ID, Name: c.Name})
		names = append(names, c.Name)
	}

	refsJSON, err := json.Marshal(refs)
	if err != nil {
		return 0, false
	}
	contextJSON, err := json.Marshal(map[string]any{
		"recent_suggestions": names,
		"last_message":       lastAssistant,
	})
	if err != nil {
		return 0, false
	}

	raw, err := r.oracle.Infer(ctx, contractx.InferRequest{
		Prompt: fmt.Sprintf(
			"Context: %s\n\nUser message: '%s'\nAvailable restaurants: %s\n\nWhich restaurant is the user referring to?",
			contextJSON, text, refsJSON,
		),
		SystemPrompt: r.system,
	})
	if err != nil {
		r.log.Debug().Err(err).Msg("reference oracle call failed")
		return 0, false
	}

	var out struct {
		RestaurantID any `json:"restaurant_id"`
	}
	if !decodeObject(raw, &out) {
		return 0, false
	}

	id, ok := coerceInt(out.RestaurantID)
	if !ok || id <= 0 {
		return 0, false
	}
	// Reject ids the oracle invented outside the candidate list.
	for _, c := range candidates {
		if c.ID == id {
			return id, true
		}
	}
	r.log.Debug().Int64("id", id).Msg("oracle picked an id outside the candidate list")
	return 0, false
}
