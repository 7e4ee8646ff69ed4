// Package extract turns free user text into typed, possibly-absent values by
// way of the inference oracle. Every service in this package degrades a
// malformed oracle reply to an absent result plus a clarification message;
// nothing here ever fails a turn.
package extract

import (
	"encoding/json"
	"strconv"
	"strings"
)

// firstJSONObject returns the first balanced JSON object embedded in s. The
// oracle routinely wraps its JSON in prose despite being told not to.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// decodeObject unmarshals the first balanced JSON object in raw into out.
func decodeObject(raw string, out any) bool {
	obj, ok := firstJSONObject(raw)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(obj), out) == nil
}

// cleanField normalizes an optional string field: JSON null decodes to "",
// and the literal string "null" counts as absent too.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "null") {
		return ""
	}
	return s
}

// coerceInt extracts an integer from the loosely-typed values the oracle
// emits for numeric fields: a JSON number, a numeric string, or null.
func coerceInt(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		cleaned := cleanField(n)
		if cleaned == "" {
			return 0, false
		}
		i, err := strconv.ParseInt(cleaned, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
