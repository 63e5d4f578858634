package interfaces

import "context"

// Gateway sends a text prompt to a language-model backend and returns the
// raw response text. Implementations do not retry and do not stream.
type Gateway interface {
	Query(ctx context.Context, prompt string) (string, error)
}
