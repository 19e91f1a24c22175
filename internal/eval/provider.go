package eval

import "context"

// Provider sends a system instruction plus user payload to an LLM and
// returns the raw text response. Used only by the Evaluator.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
