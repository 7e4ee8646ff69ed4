package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	catalogx "github.com/alfredlabs/alfred/agent/catalog"
	contractx "github.com/alfredlabs/alfred/agent/contract"
)

const (
	clarifyGeneric  = "I'm having trouble understanding the date and time. Please use a format like 'tomorrow at 7 PM'."
	clarifyNoJSON   = "I couldn't parse that. Please specify when you'd like to make your reservation."
	clarifyMissing  = "I couldn't determine the date or time. Please specify both."
	clarifyBadValue = "I couldn't understand that date format. Please specify a date and time."

	confirmLayout = "January 02 at 03:04 PM"
)

type DateTimeService struct {
	oracle contractx.Oracle
	system string
	log    zerolog.Logger
}

func NewDateTimeService(oracle contractx.Oracle, systemPrompt string) *DateTimeService {
	return &DateTimeService{
		oracle: oracle,
		system: systemPrompt,
		log:    log.With().Str("component", "extract.datetime").Logger(),
	}
}

// ExtractDateTime resolves natural-language date/time into a calendar
// timestamp. The weekday is always computed from the resolved date; the
// oracle's asserted weekday is advisory only, and a disagreement produces a
// corrected confirmation sentence instead of an error.
func (s *DateTimeService) ExtractDateTime(ctx context.Context, text string) (contractx.DateTimeSlot, string, bool) {
	raw, err := s.oracle.Infer(ctx, contractx.InferRequest{
		Prompt:       fmt.Sprintf("Extract date and time from: '%s'", text),
		SystemPrompt: s.system,
	})
	if err != nil {
		s.log.Debug().Err(err).Msg("datetime oracle call failed")
		return contractx.DateTimeSlot{}, clarifyGeneric, false
	}

	var out struct {
		Date       string `json:"date"`
		Time       string `json:"time"`
		Weekday    string `json:"weekday"`
		Confidence string `json:"confidence"`
	}
	if !decodeObject(raw, &out) {
		return contractx.DateTimeSlot{}, clarifyNoJSON, false
	}

	date := cleanField(out.Date)
	clock := cleanField(out.Time)
	if date == "" || clock == "" {
		return contractx.DateTimeSlot{}, clarifyMissing, false
	}

	when, err := time.ParseInLocation(catalogx.DateTimeLayout, date+" "+clock, time.Local)
	if err != nil {
		return contractx.DateTimeSlot{}, clarifyBadValue, false
	}

	slot := contractx.DateTimeSlot{When: when}
	if asserted := cleanField(out.Weekday); asserted != "" && !strings.EqualFold(asserted, when.Weekday().String()) {
		slot.Confirmation = fmt.Sprintf("Got it! Reservation for %s, %s.", when.Weekday(), when.Format(confirmLayout))
		s.log.Debug().
			Str("asserted", asserted).
			Str("computed", when.Weekday().String()).
			Msg("oracle weekday corrected from resolved date")
	}
	return slot, "", true
}
