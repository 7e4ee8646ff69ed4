package extract

import "testing"

func TestFirstJSONObject(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "bare object", in: `{"a":1}`, want: `{"a":1}`, ok: true},
		{name: "wrapped in prose", in: "Sure! Here you go: {\"a\":1} hope that helps", want: `{"a":1}`, ok: true},
		{name: "nested objects", in: `prefix {"a":{"b":2}} suffix`, want: `{"a":{"b":2}}`, ok: true},
		{name: "braces inside strings", in: `{"a":"{not a} brace"}`, want: `{"a":"{not a} brace"}`, ok: true},
		{name: "escaped quote in string", in: `{"a":"quote \" and }"}`, want: `{"a":"quote \" and }"}`, ok: true},
		{name: "no object", in: "just text", ok: false},
		{name: "unbalanced", in: `{"a":1`, ok: false},
		{name: "empty", in: "", ok: false},
	}

	for _, tc := range cases {
		got, ok := firstJSONObject(tc.in)
		if ok != tc.ok {
			t.Fatalf("%s: ok = %v, want %v", tc.name, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestCleanField(t *testing.T) {
	t.Parallel()

	if got := cleanField("  Italian "); got != "Italian" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := cleanField("null"); got != "" {
		t.Fatalf("literal null should be absent, got %q", got)
	}
	if got := cleanField("NULL"); got != "" {
		t.Fatalf("literal NULL should be absent, got %q", got)
	}
	if got := cleanField("   "); got != "" {
		t.Fatalf("whitespace should be absent, got %q", got)
	}
}

func TestCoerceInt(t *testing.T) {
	t.Parallel()

	if n, ok := coerceInt(float64(4)); !ok || n != 4 {
		t.Fatalf("float64: got %d ok=%v", n, ok)
	}
	if n, ok := coerceInt("6"); !ok || n != 6 {
		t.Fatalf("numeric string: got %d ok=%v", n, ok)
	}
	if _, ok := coerceInt("null"); ok {
		t.Fatal("string null should not coerce")
	}
	if _, ok := coerceInt(nil); ok {
		t.Fatal("nil should not coerce")
	}
	if _, ok := coerceInt("a few"); ok {
		t.Fatal("prose should not coerce")
	}
}
