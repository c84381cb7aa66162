package brain

import (
	"context"
	"fmt"
	"strings"

	"github.com/ent0n29/iris/internal/convo"
)

// MockAdapter provides deterministic local replies when no model is reachable.
type MockAdapter struct{}

func NewMockAdapter() *MockAdapter { return &MockAdapter{} }

func (a *MockAdapter) Generate(ctx context.Context, turns []convo.Turn) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	last := ""
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == convo.RoleUser {
			last = strings.TrimSpace(turns[i].Content)
			break
		}
	}
	if last == "" {
		return "I am listening.", nil
	}
	return fmt.Sprintf("I heard you: %s", last), nil
}
