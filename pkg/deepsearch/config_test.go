package deepsearch

import (
	"os"
	"path/filepath"
	"testing"

	"go.mau.fi/util/ptr"
)

func TestConfigWithDefaults(t *testing.T) {
	cfg := (&Config{}).WithDefaults()
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("base url default missing: %q", cfg.BaseURL)
	}
	if cfg.TimeoutSecs != DefaultTimeoutSecs {
		t.Fatalf("timeout default missing: %d", cfg.TimeoutSecs)
	}
	if cfg.ReasoningEffort != DefaultReasoningEffort {
		t.Fatalf("reasoning effort default missing: %q", cfg.ReasoningEffort)
	}
	if cfg.BudgetTokens != nil {
		t.Fatalf("budget must default to absent, got %d", *cfg.BudgetTokens)
	}
	if cfg.MaxReturnedURLs != DefaultMaxReturnedURLs || cfg.TeamSize != DefaultTeamSize {
		t.Fatalf("numeric defaults missing: %+v", cfg)
	}
}

func TestConfigRejectsUnknownReasoningEffort(t *testing.T) {
	cfg := (&Config{ReasoningEffort: "extreme"}).WithDefaults()
	if cfg.ReasoningEffort != DefaultReasoningEffort {
		t.Fatalf("unknown effort must fall back to default, got %q", cfg.ReasoningEffort)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deepsearch.yaml")
	content := "api_key: file-key\nreasoning_effort: high\nbudget_tokens: 123\nline_buffering: true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIKey != "file-key" || cfg.ReasoningEffort != "high" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.BudgetTokens == nil || *cfg.BudgetTokens != 123 {
		t.Fatalf("budget not loaded: %+v", cfg.BudgetTokens)
	}
	if !cfg.LineBuffering {
		t.Fatal("line_buffering not loaded")
	}
}

func TestApplyEnvDefaults(t *testing.T) {
	t.Setenv("JINA_API_KEY", "env-key")
	t.Setenv("DEEPSEARCH_BUDGET_TOKENS", "9000")
	t.Setenv("DEEPSEARCH_STREAM", "false")

	cfg := ApplyEnvDefaults(&Config{})
	if cfg.APIKey != "env-key" {
		t.Fatalf("api key not read from env: %q", cfg.APIKey)
	}
	if cfg.BudgetTokens == nil || *cfg.BudgetTokens != 9000 {
		t.Fatalf("budget not read from env: %+v", cfg.BudgetTokens)
	}
	if isEnabled(cfg.StreamByDefault, true) {
		t.Fatal("stream default not read from env")
	}
}

func TestApplyEnvDefaultsDoesNotOverrideExisting(t *testing.T) {
	t.Setenv("JINA_API_KEY", "env-key")
	t.Setenv("DEEPSEARCH_BUDGET_TOKENS", "9000")

	cfg := ApplyEnvDefaults(&Config{APIKey: "explicit", BudgetTokens: ptr.Ptr(int64(1))})
	if cfg.APIKey != "explicit" {
		t.Fatalf("explicit key lost: %q", cfg.APIKey)
	}
	if cfg.BudgetTokens == nil || *cfg.BudgetTokens != 1 {
		t.Fatalf("explicit budget lost: %+v", cfg.BudgetTokens)
	}
}
