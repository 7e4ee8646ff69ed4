package session

import (
	"testing"
	"time"
)

func TestNewStartsAtIntentDetection(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s := New(now)
	if s.State != StateIntentDetection {
		t.Fatalf("unexpected initial state %s", s.State)
	}
	if s.ID == "" {
		t.Fatal("session id should be assigned")
	}
	if !s.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected UpdatedAt %s", s.UpdatedAt)
	}
	if New(now).ID == s.ID {
		t.Fatal("session ids should be unique")
	}
}

func TestSeenInputComparesTrimmed(t *testing.T) {
	t.Parallel()

	s := New(time.Now())
	if s.SeenInput("hello") {
		t.Fatal("fresh session has no prior input")
	}

	s.MarkInput("  hello  ")
	if !s.SeenInput("hello") {
		t.Fatal("identical input should be seen")
	}
	if !s.SeenInput("  hello ") {
		t.Fatal("whitespace variants should be seen")
	}
	if s.SeenInput("hello!") {
		t.Fatal("different input should not be seen")
	}

	s.MarkInput("next")
	if s.SeenInput("hello") {
		t.Fatal("only the immediately preceding input counts")
	}
}

func TestLastAssistant(t *testing.T) {
	t.Parallel()

	s := New(time.Now())
	if s.LastAssistant() != "" {
		t.Fatal("empty history should yield empty string")
	}

	s.Append(RoleAssistant, "first")
	s.Append(RoleUser, "question")
	s.Append(RoleAssistant, "second")
	s.Append(RoleUser, "trailing user turn")

	if got := s.LastAssistant(); got != "second" {
		t.Fatalf("got %q", got)
	}
}

func TestRecentExchanges(t *testing.T) {
	t.Parallel()

	s := New(time.Now())
	s.Append(RoleAssistant, "greeting")
	s.Append(RoleUser, "u1")
	s.Append(RoleAssistant, "a1")
	s.Append(RoleUser, "u2")
	s.Append(RoleAssistant, "a2")
	s.Append(RoleUser, "u3")
	s.Append(RoleAssistant, "a3")

	got := s.RecentExchanges(2)
	if len(got) != 2 {
		t.Fatalf("expected 2 exchanges, got %d", len(got))
	}
	if got[0].User != "u2" || got[0].Assistant != "a2" {
		t.Fatalf("exchanges not chronological: %+v", got)
	}
	if got[1].User != "u3" || got[1].Assistant != "a3" {
		t.Fatalf("latest exchange missing: %+v", got)
	}

	if all := s.RecentExchanges(10); len(all) != 3 {
		t.Fatalf("expected 3 complete exchanges, got %d", len(all))
	}
}

func TestDraftComplete(t *testing.T) {
	t.Parallel()

	when := time.Date(2025, 6, 14, 19, 30, 0, 0, time.Local)

	if (Draft{}).Complete() {
		t.Fatal("empty draft is not complete")
	}
	if (Draft{Name: "Asha", When: when}).Complete() {
		t.Fatal("draft without party size is not complete")
	}
	if (Draft{Name: "Asha", PartySize: 4}).Complete() {
		t.Fatal("draft without time is not complete")
	}
	if !(Draft{Name: "Asha", When: when, PartySize: 4}).Complete() {
		t.Fatal("full draft should be complete")
	}
}

func TestResetDraft(t *testing.T) {
	t.Parallel()

	s := New(time.Now())
	s.Draft = Draft{Name: "Asha", When: time.Now(), PartySize: 4}
	s.ResetDraft()
	if s.Draft != (Draft{}) {
		t.Fatalf("draft not cleared: %+v", s.Draft)
	}
}
