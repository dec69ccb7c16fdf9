package deepsearch

import (
	"encoding/json"
	"testing"
)

func parseJSON(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return v
}

func TestExtractTextPriorityOrder(t *testing.T) {
	got := ExtractText(parseJSON(t, `{"content": "A", "text": "B"}`))
	if got != "A" {
		t.Fatalf("content must win over text, got %q", got)
	}
}

func TestExtractTextPlainString(t *testing.T) {
	if got := ExtractText("hello"); got != "hello" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestExtractTextDeltaConcatenation(t *testing.T) {
	got := ExtractText(parseJSON(t, `{"choices": [{"delta": {"content": "Hel"}}, {"delta": {"content": "lo"}}]}`))
	if got != "Hello" {
		t.Fatalf("deltas must concatenate without separator, got %q", got)
	}
}

func TestExtractTextMessageContentShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"string_content", `{"choices": [{"message": {"content": "plain"}}]}`, "plain"},
		{"nested_text", `{"choices": [{"message": {"content": {"text": "nested"}}}]}`, "nested"},
		{"bare_text", `{"choices": [{"text": "bare"}]}`, "bare"},
		{"mixed", `{"choices": [{"delta": {"content": "a"}}, {"message": {"content": "b"}}, {"text": "c"}]}`, "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractText(parseJSON(t, tc.raw)); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractTextStringValuesFallback(t *testing.T) {
	// No priority key and no choices: up to three direct string values,
	// sorted by key for stable output.
	got := ExtractText(parseJSON(t, `{"d": "four", "b": "two", "a": "one", "c": "three", "n": 7}`))
	if got != "one two three" {
		t.Fatalf("got %q, want %q", got, "one two three")
	}
}

func TestExtractTextNoText(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"numbers_only", `{"count": 3, "ok": true}`},
		{"array", `[1, 2, 3]`},
		{"number", `42`},
		{"null", `null`},
		{"empty_choices", `{"choices": []}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractText(parseJSON(t, tc.raw)); got != "" {
				t.Fatalf("expected no text, got %q", got)
			}
		})
	}
}
