package deepsearch

import (
	"os"
	"strconv"
	"strings"

	"go.mau.fi/util/ptr"
)

// ConfigFromEnv builds a config using environment variables only.
func ConfigFromEnv() *Config {
	return ApplyEnvDefaults(&Config{})
}

// ApplyEnvDefaults fills empty config fields from environment variables.
func ApplyEnvDefaults(cfg *Config) *Config {
	if cfg == nil {
		cfg = &Config{}
	}

	cfg.APIKey = envOr(cfg.APIKey, os.Getenv("JINA_API_KEY"))
	cfg.BaseURL = envOr(cfg.BaseURL, os.Getenv("DEEPSEARCH_BASE_URL"))
	cfg.ReasoningEffort = envOr(cfg.ReasoningEffort, os.Getenv("DEEPSEARCH_REASONING_EFFORT"))

	if cfg.TimeoutSecs <= 0 {
		if secs, ok := envInt(os.Getenv("DEEPSEARCH_TIMEOUT")); ok {
			cfg.TimeoutSecs = secs
		}
	}
	if cfg.MaxReturnedURLs <= 0 {
		if count, ok := envInt(os.Getenv("DEEPSEARCH_MAX_URLS")); ok {
			cfg.MaxReturnedURLs = count
		}
	}
	if cfg.TeamSize <= 0 {
		if size, ok := envInt(os.Getenv("DEEPSEARCH_TEAM_SIZE")); ok {
			cfg.TeamSize = size
		}
	}
	if cfg.BudgetTokens == nil {
		if budget, ok := envInt(os.Getenv("DEEPSEARCH_BUDGET_TOKENS")); ok {
			cfg.BudgetTokens = ptr.Ptr(int64(budget))
		}
	}
	if cfg.NoDirectAnswer == nil {
		if flag, ok := envBool(os.Getenv("DEEPSEARCH_NO_DIRECT_ANSWER")); ok {
			cfg.NoDirectAnswer = ptr.Ptr(flag)
		}
	}
	if cfg.StreamByDefault == nil {
		if flag, ok := envBool(os.Getenv("DEEPSEARCH_STREAM")); ok {
			cfg.StreamByDefault = ptr.Ptr(flag)
		}
	}

	return cfg.WithDefaults()
}

func envOr(existing, value string) string {
	if strings.TrimSpace(existing) != "" {
		return existing
	}
	return strings.TrimSpace(value)
}

func envInt(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func envBool(value string) (bool, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, false
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}
	return parsed, true
}
