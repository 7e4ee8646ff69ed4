package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/intent.txt
	intentRaw string

	//go:embed template/search_params.txt
	searchParamsRaw string

	//go:embed template/datetime.txt
	dateTimeRaw string

	//go:embed template/party_size.txt
	partySizeRaw string

	//go:embed template/resolve.txt
	resolveRaw string

	//go:embed template/suggestions.txt
	suggestionsRaw string

	//go:embed template/details.txt
	detailsRaw string

	//go:embed template/chitchat.txt
	chitchatRaw string
)

// Set holds the system prompts for every oracle-backed service.
type Set struct {
	Intent       string
	SearchParams string
	DateTime     string
	PartySize    string
	Resolve      string
	Suggestions  string
	Details      string
	Chitchat     string
}

// Load returns the embedded prompt set with surrounding whitespace trimmed.
func Load() Set {
	return Set{
		Intent:       strings.TrimSpace(intentRaw),
		SearchParams: strings.TrimSpace(searchParamsRaw),
		DateTime:     strings.TrimSpace(dateTimeRaw),
		PartySize:    strings.TrimSpace(partySizeRaw),
		Resolve:      strings.TrimSpace(resolveRaw),
		Suggestions:  strings.TrimSpace(suggestionsRaw),
		Details:      strings.TrimSpace(detailsRaw),
		Chitchat:     strings.TrimSpace(chitchatRaw),
	}
}
