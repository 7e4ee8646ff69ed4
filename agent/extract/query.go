package extract

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/alfredlabs/alfred/agent/contract"
)

type QueryService struct {
	oracle contractx.Oracle
	system string
	log    zerolog.Logger
}

func NewQueryService(oracle contractx.Oracle, systemPrompt string) *QueryService {
	return &QueryService{
		oracle: oracle,
		system: systemPrompt,
		log:    log.With().Str("component", "extract.query").Logger(),
	}
}

// ExtractQuery pulls the optional search constraints out of a user turn. A
// failed oracle call or unparsable reply yields the empty query, which the
// search engine treats as "no constraints".
func (s *QueryService) ExtractQuery(ctx context.Context, text string) contractx.SearchQuery {
	raw, err := s.oracle.Infer(ctx, contractx.InferRequest{
		Prompt:       fmt.Sprintf("Extract search parameters from: '%s'", text),
		SystemPrompt: s.system,
	})
	if err != nil {
		s.log.Debug().Err(err).Msg("query oracle call failed, using empty query")
		return contractx.SearchQuery{}
	}

	var out struct {
		Cuisine    string `json:"cuisine"`
		Location   string `json:"location"`
		PriceRange string `json:"price_range"`
		Seating    string `json:"seating"`
	}
	if !decodeObject(raw, &out) {
		s.log.Debug().Str("reply", raw).Msg("query reply had no decodable JSON object")
		return contractx.SearchQuery{}
	}

	return contractx.SearchQuery{
		Cuisine:    cleanField(out.Cuisine),
		Location:   cleanField(out.Location),
		PriceRange: cleanField(out.PriceRange),
		Seating:    cleanField(out.Seating),
	}
}
