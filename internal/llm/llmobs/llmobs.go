package llmobs

import (
	"context"

	"stock-research-agent/internal/interfaces"
	"stock-research-agent/internal/logger"
	"stock-research-agent/internal/trace"
)

// observableGateway wraps a Gateway with logging and tracing
type observableGateway struct {
	gateway interfaces.Gateway
}

// Compile-time interface check
var _ interfaces.Gateway = (*observableGateway)(nil)

// Wrap wraps a gateway with observability middleware
func Wrap(gateway interfaces.Gateway) interfaces.Gateway {
	return &observableGateway{gateway: gateway}
}

// Query sends a prompt through the underlying gateway with observability
func (og *observableGateway) Query(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Query")
	defer span.End()

	// Skip(1) so the log line reports the actual caller, not this wrapper
	logger.DebugSkip(ctx, 1, "Querying language model", "prompt_bytes", len(prompt))

	response, err := og.gateway.Query(ctx, prompt)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Language model query failed", err)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Language model responded", "response_bytes", len(response))
	return response, nil
}
