package deepsearch

import "strconv"

// systemPrompt frames the upstream model as a research agent. The wording
// biases DeepSearch away from terse direct answers; changing it changes the
// shape of the results.
const systemPrompt = "You are a research agent. Investigate the request thoroughly, " +
	"consult multiple sources, and respond with a detailed, well-sourced report. " +
	"Do not reply with a short direct answer."

// queryPrefix wraps the caller's text inside the user message.
const queryPrefix = "Research request: "

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the wire payload for /v1/chat/completions. BudgetTokens is
// a pointer so an unconfigured budget omits the field entirely.
// MaxReturnedURLs is string-encoded on the wire; the upstream rejects the
// numeric form.
type chatRequest struct {
	Model           string        `json:"model"`
	Messages        []chatMessage `json:"messages"`
	Stream          bool          `json:"stream"`
	ReasoningEffort string        `json:"reasoning_effort"`
	BudgetTokens    *int64        `json:"budget_tokens,omitempty"`
	MaxReturnedURLs string        `json:"max_returned_urls"`
	NoDirectAnswer  bool          `json:"no_direct_answer"`
	TeamSize        int           `json:"team_size"`
}

// buildRequest assembles the outbound payload from the resolved config and
// the caller's query. streamOverride beats the config default when non-nil.
func buildRequest(cfg *Config, query string, streamOverride *bool) chatRequest {
	useStream := isEnabled(cfg.StreamByDefault, true)
	if streamOverride != nil {
		useStream = *streamOverride
	}
	return chatRequest{
		Model: DefaultModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: queryPrefix + query},
		},
		Stream:          useStream,
		ReasoningEffort: cfg.ReasoningEffort,
		BudgetTokens:    cfg.BudgetTokens,
		MaxReturnedURLs: strconv.Itoa(cfg.MaxReturnedURLs),
		NoDirectAnswer:  isEnabled(cfg.NoDirectAnswer, true),
		TeamSize:        cfg.TeamSize,
	}
}
