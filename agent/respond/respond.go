// Package respond generates the free-form user-facing replies. Generation is
// delegated to the oracle with catalog grounding; when the oracle fails, a
// deterministic canned reply is used so a turn always produces text.
package respond

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	catalogx "github.com/alfredlabs/alfred/agent/catalog"
	contractx "github.com/alfredlabs/alfred/agent/contract"
	promptx "github.com/alfredlabs/alfred/agent/prompt"
	sessionx "github.com/alfredlabs/alfred/agent/session"
)

type Generator struct {
	oracle  contractx.Oracle
	prompts promptx.Set
	log     zerolog.Logger
}

func NewGenerator(oracle contractx.Oracle, prompts promptx.Set) *Generator {
	return &Generator{
		oracle:  oracle,
		prompts: prompts,
		log:     log.With().Str("component", "respond").Logger(),
	}
}

// Suggestions describes the search result set. The restaurants are passed to
// the oracle as JSON so the generated text sticks to real attributes.
func (g *Generator) Suggestions(ctx context.Context, matches []catalogx.Restaurant, all []catalogx.Restaurant) string {
	payload, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fallbackSuggestions(matches)
	}

	raw, err := g.oracle.Infer(ctx, contractx.InferRequest{
		Prompt: fmt.Sprintf(
			"Based on the user's preferences, here are some restaurant options:\n%s\n\n"+
				"Generate a helpful response suggesting these restaurants. Include their name, cuisine, location, and one unique feature for each.\n"+
				"Keep it concise (max 200 words).",
			payload,
		),
		SystemPrompt: g.prompts.Suggestions,
		Metadata:     CatalogMetadata(all),
	})
	if err != nil || strings.TrimSpace(raw) == "" {
		g.log.Debug().Err(err).Msg("suggestion generation failed, using canned reply")
		return fallbackSuggestions(matches)
	}
	return strings.TrimSpace(raw)
}

// Details describes one restaurant.
func (g *Generator) Details(ctx context.Context, restaurant catalogx.Restaurant, all []catalogx.Restaurant) string {
	payload, err := json.MarshalIndent(restaurant, "", "  ")
	if err != nil {
		return fallbackDetails(restaurant)
	}

	raw, err := g.oracle.Infer(ctx, contractx.InferRequest{
		Prompt: fmt.Sprintf(
			"Please provide detailed information about this restaurant:\n%s\n\n"+
				"Generate a compelling description highlighting its key features, cuisine, location, seating arrangements, and any specialties.\n"+
				"Keep it informative and attractive but factual. (max 200 words)",
			payload,
		),
		SystemPrompt: g.prompts.Details,
		Metadata:     CatalogMetadata(all),
	})
	if err != nil || strings.TrimSpace(raw) == "" {
		g.log.Debug().Err(err).Msg("details generation failed, using canned reply")
		return fallbackDetails(restaurant)
	}
	return strings.TrimSpace(raw)
}

// Chitchat answers an off-task turn, grounded in the recent exchanges and
// the catalog metadata.
func (g *Generator) Chitchat(ctx context.Context, text string, history []sessionx.Exchange, all []catalogx.Restaurant) string {
	var b strings.Builder
	for _, ex := range history {
		fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", ex.User, ex.Assistant)
	}

	raw, err := g.oracle.Infer(ctx, contractx.InferRequest{
		Prompt: fmt.Sprintf(
			"Recent conversation:\n%s\nUser: %s\n\nPlease provide a helpful response as the restaurant booking assistant:",
			b.String(), text,
		),
		SystemPrompt: g.prompts.Chitchat,
		Metadata:     CatalogMetadata(all),
	})
	if err != nil || strings.TrimSpace(raw) == "" {
		g.log.Debug().Err(err).Msg("chitchat generation failed, using canned reply")
		return "I can help you find restaurants in Bengaluru and make reservations. What are you looking for today?"
	}
	return strings.TrimSpace(raw)
}

// CatalogMetadata grounds generated text in what the catalog actually holds,
// so the oracle cannot claim more restaurants than exist.
func CatalogMetadata(all []catalogx.Restaurant) string {
	return fmt.Sprintf(
		"IMPORTANT: You have access to exactly %d restaurants in the database. DO NOT claim or imply that you have more restaurants than this number.\n"+
			"Available cuisines: %s\n"+
			"Available locations: %s\n"+
			"Available price ranges: %s",
		len(all),
		strings.Join(distinct(all, func(r catalogx.Restaurant) string { return r.Cuisine }), ", "),
		strings.Join(distinct(all, func(r catalogx.Restaurant) string { return r.Location }), ", "),
		strings.Join(distinct(all, func(r catalogx.Restaurant) string { return r.PriceRange }), ", "),
	)
}

func distinct(all []catalogx.Restaurant, field func(catalogx.Restaurant) string) []string {
	seen := make(map[string]bool, len(all))
	out := make([]string, 0, len(all))
	for _, r := range all {
		v := field(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func fallbackSuggestions(matches []catalogx.Restaurant) string {
	if len(matches) == 0 {
		return "I couldn't find any restaurants right now. Would you like to try different preferences?"
	}
	var b strings.Builder
	b.WriteString("Here are some restaurants you might like:\n")
	for i, r := range matches {
		fmt.Fprintf(&b, "%d. %s - %s in %s, rated %.1f (%s)\n", i+1, r.Name, r.Cuisine, r.Location, r.Rating, r.PriceRange)
	}
	b.WriteString("Would you like details about any of these, or shall I make a reservation?")
	return b.String()
}

func fallbackDetails(r catalogx.Restaurant) string {
	return fmt.Sprintf(
		"%s serves %s cuisine in %s (%s). Rating %.1f, seating: %s. Address: %s. Contact: %s. Would you like to make a reservation?",
		r.Name, r.Cuisine, r.Location, r.PriceRange, r.Rating,
		strings.Join(r.Seating, ", "), r.Address, r.Contact,
	)
}
