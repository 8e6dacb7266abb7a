package llm

import "context"

// Options tunes a single generation call.
type Options struct {
	Temperature float64
	MaxTokens   int
	// JSONOnly asks the model to answer with a bare JSON object. Callers
	// must still parse defensively; the hint is not schema enforcement.
	JSONOnly bool
}

// Generator produces text from a prompt. Implementations wrap a concrete
// model vendor; agents depend only on this interface.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}
