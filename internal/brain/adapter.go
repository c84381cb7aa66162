package brain

import (
	"context"
	"fmt"
	"strings"

	"github.com/ent0n29/iris/internal/convo"
)

// Adapter generates one reply from the conversation so far. No retry policy
// lives here; the orchestrator substitutes a fallback reply on any error.
type Adapter interface {
	Generate(ctx context.Context, turns []convo.Turn) (string, error)
}

// Config controls adapter construction.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

func NewAdapter(cfg Config) (Adapter, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gemini":
		return NewGeminiAdapter(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case "mock":
		return NewMockAdapter(), nil
	default:
		return nil, fmt.Errorf("unsupported brain provider %q", cfg.Provider)
	}
}

// CleanReply strips markdown emphasis markers the model tends to emit; they
// read as noise when spoken aloud.
func CleanReply(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "*", ""))
}
