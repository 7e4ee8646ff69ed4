package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	catalogx "github.com/alfredlabs/alfred/agent/catalog"
	contractx "github.com/alfredlabs/alfred/agent/contract"
)

type fakeOracle struct {
	reply   string
	err     error
	calls   int
	lastReq contractx.InferRequest
}

func (f *fakeOracle) Infer(_ context.Context, req contractx.InferRequest) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestClassifyParsesLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		reply string
		want  contractx.Intent
	}{
		{reply: "restaurant_search", want: contractx.IntentSearch},
		{reply: "The intent here is clearly a search for restaurants.", want: contractx.IntentSearch},
		{reply: "reservation", want: contractx.IntentReservation},
		{reply: "They want to book a table.", want: contractx.IntentReservation},
		{reply: "details", want: contractx.IntentDetails},
		{reply: "The user wants more information.", want: contractx.IntentDetails},
		{reply: "hello there!", want: contractx.IntentChitchat},
	}

	for _, tc := range cases {
		c := NewClassifier(&fakeOracle{reply: tc.reply}, "intent prompt")
		if got := c.Classify(context.Background(), "some input"); got != tc.want {
			t.Fatalf("reply %q: got %s want %s", tc.reply, got, tc.want)
		}
	}
}

func TestClassifyOracleFailureDefaultsToChitchat(t *testing.T) {
	t.Parallel()

	c := NewClassifier(&fakeOracle{err: errors.New("boom")}, "intent prompt")
	if got := c.Classify(context.Background(), "find me pasta"); got != contractx.IntentChitchat {
		t.Fatalf("expected chitchat on oracle failure, got %s", got)
	}
}

func TestExtractQueryFields(t *testing.T) {
	t.Parallel()

	s := NewQueryService(&fakeOracle{
		reply: `Here you go: {"cuisine":"Italian","location":"null","price_range":null,"seating":"rooftop"}`,
	}, "query prompt")

	q := s.ExtractQuery(context.Background(), "italian with a rooftop")
	if q.Cuisine != "Italian" {
		t.Fatalf("unexpected cuisine: %q", q.Cuisine)
	}
	if q.Location != "" {
		t.Fatalf("literal null location should be absent, got %q", q.Location)
	}
	if q.PriceRange != "" {
		t.Fatalf("JSON null price range should be absent, got %q", q.PriceRange)
	}
	if q.Seating != "rooftop" {
		t.Fatalf("unexpected seating: %q", q.Seating)
	}
}

func TestExtractQueryDegradesToEmpty(t *testing.T) {
	t.Parallel()

	broken := NewQueryService(&fakeOracle{reply: "no json here"}, "query prompt")
	if q := broken.ExtractQuery(context.Background(), "anything"); !q.IsEmpty() {
		t.Fatalf("expected empty query, got %+v", q)
	}

	failing := NewQueryService(&fakeOracle{err: errors.New("down")}, "query prompt")
	if q := failing.ExtractQuery(context.Background(), "anything"); !q.IsEmpty() {
		t.Fatalf("expected empty query on oracle failure, got %+v", q)
	}
}

func TestExtractDateTimeComputesWeekdayFromDate(t *testing.T) {
	t.Parallel()

	// 2025-06-14 is a Saturday regardless of what the oracle asserts.
	s := NewDateTimeService(&fakeOracle{
		reply: `{"date":"2025-06-14","time":"19:30","weekday":"Friday","confidence":"high"}`,
	}, "datetime prompt")

	slot, clarification, ok := s.ExtractDateTime(context.Background(), "the 14th of June at 7:30pm")
	if !ok {
		t.Fatalf("expected success, got clarification %q", clarification)
	}
	if slot.When.Weekday() != time.Saturday {
		t.Fatalf("expected Saturday, got %s", slot.When.Weekday())
	}
	if slot.Confirmation == "" {
		t.Fatal("expected corrected confirmation for mismatched weekday")
	}
	if want := "Saturday"; !strings.Contains(slot.Confirmation, want) {
		t.Fatalf("confirmation %q should name %s", slot.Confirmation, want)
	}
}

func TestExtractDateTimeAgreementHasNoCorrection(t *testing.T) {
	t.Parallel()

	s := NewDateTimeService(&fakeOracle{
		reply: `{"date":"2025-06-14","time":"19:30","weekday":"Saturday","confidence":"high"}`,
	}, "datetime prompt")

	slot, _, ok := s.ExtractDateTime(context.Background(), "june 14 at 7:30pm")
	if !ok {
		t.Fatal("expected success")
	}
	if slot.Confirmation != "" {
		t.Fatalf("no correction expected, got %q", slot.Confirmation)
	}
}

func TestExtractDateTimeAbsentCases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		oracle *fakeOracle
	}{
		{name: "oracle failure", oracle: &fakeOracle{err: errors.New("down")}},
		{name: "no json", oracle: &fakeOracle{reply: "sometime soon"}},
		{name: "null fields", oracle: &fakeOracle{reply: `{"date":"null","time":null}`}},
		{name: "bad format", oracle: &fakeOracle{reply: `{"date":"June 14th","time":"7pm"}`}},
	}

	for _, tc := range cases {
		s := NewDateTimeService(tc.oracle, "datetime prompt")
		_, clarification, ok := s.ExtractDateTime(context.Background(), "whenever")
		if ok {
			t.Fatalf("%s: expected absent result", tc.name)
		}
		if clarification == "" {
			t.Fatalf("%s: expected a clarification message", tc.name)
		}
	}
}

func TestExtractPartySize(t *testing.T) {
	t.Parallel()

	s := NewPartyService(&fakeOracle{reply: `{"party_size":4,"confidence":"high"}`}, "party prompt")
	n, _, ok := s.ExtractPartySize(context.Background(), "four of us")
	if !ok || n != 4 {
		t.Fatalf("expected 4, got %d ok=%v", n, ok)
	}

	numericString := NewPartyService(&fakeOracle{reply: `{"party_size":"6"}`}, "party prompt")
	n, _, ok = numericString.ExtractPartySize(context.Background(), "six people")
	if !ok || n != 6 {
		t.Fatalf("expected 6 from numeric string, got %d ok=%v", n, ok)
	}
}

func TestExtractPartySizeAbsentCases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		oracle *fakeOracle
	}{
		{name: "oracle failure", oracle: &fakeOracle{err: errors.New("down")}},
		{name: "no json", oracle: &fakeOracle{reply: "a few"}},
		{name: "null", oracle: &fakeOracle{reply: `{"party_size":null}`}},
		{name: "zero", oracle: &fakeOracle{reply: `{"party_size":0}`}},
		{name: "negative", oracle: &fakeOracle{reply: `{"party_size":-2}`}},
	}

	for _, tc := range cases {
		s := NewPartyService(tc.oracle, "party prompt")
		_, clarification, ok := s.ExtractPartySize(context.Background(), "whatever")
		if ok {
			t.Fatalf("%s: expected absent result", tc.name)
		}
		if clarification == "" {
			t.Fatalf("%s: expected a clarification message", tc.name)
		}
	}
}

func TestResolveReferencePrefersSubstringMatch(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{reply: `{"restaurant_id":2}`}
	r := NewResolver(oracle, "resolve prompt")

	candidates := []catalogx.Restaurant{
		{ID: 1, Name: "Spice Garden"},
		{ID: 2, Name: "Brigade Bistro"},
	}

	id, ok := r.ResolveReference(context.Background(), "book spice garden please", candidates, "")
	if !ok || id != 1 {
		t.Fatalf("expected deterministic match on id 1, got %d ok=%v", id, ok)
	}
	if oracle.calls != 0 {
		t.Fatalf("oracle should not be consulted on substring match, calls=%d", oracle.calls)
	}
}

func TestResolveReferenceOracleFallback(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{reply: `{"restaurant_id":2}`}
	r := NewResolver(oracle, "resolve prompt")

	candidates := []catalogx.Restaurant{
		{ID: 1, Name: "Spice Garden"},
		{ID: 2, Name: "Brigade Bistro"},
	}

	id, ok := r.ResolveReference(context.Background(), "the second one", candidates, "previous suggestion text")
	if !ok || id != 2 {
		t.Fatalf("expected oracle fallback to pick id 2, got %d ok=%v", id, ok)
	}
	if oracle.calls != 1 {
		t.Fatalf("expected one oracle call, got %d", oracle.calls)
	}
}

func TestResolveReferenceAbsentCases(t *testing.T) {
	t.Parallel()

	candidates := []catalogx.Restaurant{{ID: 1, Name: "Spice Garden"}}

	cases := []struct {
		name   string
		oracle *fakeOracle
	}{
		{name: "oracle null", oracle: &fakeOracle{reply: `{"restaurant_id":null}`}},
		{name: "oracle failure", oracle: &fakeOracle{err: errors.New("down")}},
		{name: "no json", oracle: &fakeOracle{reply: "beats me"}},
		{name: "invented id", oracle: &fakeOracle{reply: `{"restaurant_id":42}`}},
	}

	for _, tc := range cases {
		r := NewResolver(tc.oracle, "resolve prompt")
		if id, ok := r.ResolveReference(context.Background(), "that nice place", candidates, ""); ok {
			t.Fatalf("%s: expected no match, got id %d", tc.name, id)
		}
	}

	r := NewResolver(&fakeOracle{}, "resolve prompt")
	if _, ok := r.ResolveReference(context.Background(), "anything", nil, ""); ok {
		t.Fatal("empty candidate list should never match")
	}
}
