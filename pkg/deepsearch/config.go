package deepsearch

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL         = "https://deepsearch.jina.ai"
	DefaultModel           = "jina-deepsearch-v1"
	DefaultTimeoutSecs     = 60
	DefaultReasoningEffort = "low"
	DefaultMaxReturnedURLs = 50
	DefaultTeamSize        = 4
)

// Config controls the DeepSearch client. Zero values are filled in by
// WithDefaults; the API key has no default and must come from the caller,
// a config file, or the environment.
type Config struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`

	TimeoutSecs     int    `yaml:"timeout_seconds"`
	ReasoningEffort string `yaml:"reasoning_effort"`
	// BudgetTokens is omitted from the request entirely when nil. Do not
	// substitute a default number here: the upstream treats an explicit
	// budget differently from no budget.
	BudgetTokens    *int64 `yaml:"budget_tokens"`
	MaxReturnedURLs int    `yaml:"max_returned_urls"`
	NoDirectAnswer  *bool  `yaml:"no_direct_answer"`
	TeamSize        int    `yaml:"team_size"`
	StreamByDefault *bool  `yaml:"stream_by_default"`

	// LineBuffering reassembles stream lines that were split across chunk
	// boundaries before parsing them. Off by default: the upstream feed is
	// processed chunk by chunk and a split line degrades to two raw
	// fragments, which keeps the transcript best-effort instead of stalling
	// on a fragment that never completes.
	LineBuffering bool `yaml:"line_buffering"`
}

func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	switch c.ReasoningEffort {
	case "low", "medium", "high":
	default:
		c.ReasoningEffort = DefaultReasoningEffort
	}
	if c.MaxReturnedURLs <= 0 {
		c.MaxReturnedURLs = DefaultMaxReturnedURLs
	}
	if c.TeamSize <= 0 {
		c.TeamSize = DefaultTeamSize
	}
	return c
}

// LoadFile reads a YAML config file and applies defaults and environment
// overrides on top of it.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return ApplyEnvDefaults(&cfg), nil
}

func isEnabled(flag *bool, fallback bool) bool {
	if flag == nil {
		return fallback
	}
	return *flag
}
