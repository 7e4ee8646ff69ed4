package extract

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/alfredlabs/alfred/agent/contract"
)

const (
	clarifyPartyGeneric = "I'm having trouble understanding the party size. Please tell me how many people will be dining."
	clarifyPartyNoJSON  = "I couldn't parse that. Please specify how many people are in your party."
	clarifyPartyAbsent  = "I couldn't determine the party size. How many people will be dining?"
)

type PartyService struct {
	oracle contractx.Oracle
	system string
	log    zerolog.Logger
}

func NewPartyService(oracle contractx.Oracle, systemPrompt string) *PartyService {
	return &PartyService{
		oracle: oracle,
		system: systemPrompt,
		log:    log.With().Str("component", "extract.party").Logger(),
	}
}

// ExtractPartySize returns a positive head count or absent; zero and
// unparsable values are absent.
func (s *PartyService) ExtractPartySize(ctx context.Context, text string) (int, string, bool) {
	raw, err := s.oracle.Infer(ctx, contractx.InferRequest{
		Prompt:       fmt.Sprintf("Extract party size from: '%s'", text),
		SystemPrompt: s.system,
	})
	if err != nil {
		s.log.Debug().Err(err).Msg("party size oracle call failed")
		return 0, clarifyPartyGeneric, false
	}

	var out struct {
		PartySize  any    `json:"party_size"`
		Confidence string `json:"confidence"`
	}
	if !decodeObject(raw, &out) {
		return 0, clarifyPartyNoJSON, false
	}

	n, ok := coerceInt(out.PartySize)
	if !ok || n <= 0 {
		return 0, clarifyPartyAbsent, false
	}
	return int(n), "", true
}
