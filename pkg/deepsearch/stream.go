package deepsearch

import (
	"encoding/json"
	"strings"
)

// normalizer reconstructs a best-effort transcript from the raw stream.
// The upstream feed is loosely specified: a chunk may hold several
// newline-delimited JSON events, SSE "data:" prefixed lines, bare text, or
// partial fragments. Every non-blank line contributes exactly one transcript
// entry and one stream event.
type normalizer struct {
	parts   []string
	onEvent func(parsed any)

	// carry holds a trailing partial line between chunks when line
	// buffering is enabled. Without it a line split across two chunks is
	// processed as two separate raw fragments.
	buffering bool
	carry     string
}

func newNormalizer(buffering bool, onEvent func(parsed any)) *normalizer {
	return &normalizer{buffering: buffering, onEvent: onEvent}
}

// feed processes one chunk of bytes from the transport, in arrival order.
func (n *normalizer) feed(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	// Drop malformed byte sequences instead of failing the call; a broken
	// fragment still degrades to a raw transcript entry below.
	text := strings.ToValidUTF8(string(chunk), "")

	if n.buffering {
		text = n.carry + text
		n.carry = ""
		if idx := strings.LastIndexByte(text, '\n'); idx >= 0 {
			n.carry = text[idx+1:]
			text = text[:idx]
		} else {
			n.carry = text
			return
		}
	}

	for _, rawLine := range strings.Split(text, "\n") {
		n.line(rawLine)
	}
}

// finish flushes any buffered partial line and returns the aggregated
// transcript, joined with single spaces.
func (n *normalizer) finish() string {
	if n.buffering && strings.TrimSpace(n.carry) != "" {
		n.line(n.carry)
		n.carry = ""
	}
	kept := make([]string, 0, len(n.parts))
	for _, part := range n.parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}

func (n *normalizer) line(rawLine string) {
	line := strings.TrimSpace(rawLine)
	if line == "" {
		return
	}
	if rest, ok := strings.CutPrefix(line, "data:"); ok {
		line = strings.TrimSpace(rest)
	}
	// Stream-end sentinels carry no content.
	if line == "[DONE]" || line == "DONE" {
		return
	}

	var parsed any
	if err := json.Unmarshal([]byte(line), &parsed); err != nil {
		parsed = map[string]any{"raw": line}
	}

	if human := ExtractText(parsed); human != "" {
		n.parts = append(n.parts, human)
	} else {
		n.parts = append(n.parts, fallbackEntry(parsed))
	}

	if n.onEvent != nil {
		n.onEvent(parsed)
	}
}

func fallbackEntry(parsed any) string {
	if obj, ok := parsed.(map[string]any); ok {
		if raw, ok := obj["raw"].(string); ok {
			return raw
		}
	}
	serialized, err := json.Marshal(parsed)
	if err != nil {
		return ""
	}
	return string(serialized)
}
