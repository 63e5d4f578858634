// Package agent implements the bounded iteration loop that drives a
// language model through structured analysis function calls until it
// produces a final answer or exhausts its iteration budget.
package agent

import (
	"context"
	"fmt"
	"strings"

	"stock-research-agent/internal/interfaces"
	"stock-research-agent/internal/logger"
	"stock-research-agent/internal/trace"
)

// ExhaustionSentinel is returned when the iteration ceiling is reached
// without the model emitting the completion marker. It is a defined
// terminal outcome, not an error.
const ExhaustionSentinel = "Maximum iterations reached without completion"

// ConfigurationError indicates the loop was started before both the
// system prompt and the initial query were set
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "agent configuration error: " + e.Reason
}

// Outcome is the terminal state of a run
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeExhausted Outcome = "exhausted"
)

// Result is the terminal state of one agent run together with its transcript
type Result struct {
	FinalText  string
	Outcome    Outcome
	Iterations int
	Transcript []Step
}

// Config holds the immutable inputs of one agent run
type Config struct {
	SystemPrompt       string
	InitialQuery       string
	MaxIterations      int
	FunctionCallMarker string
	CompletionMarker   string
}

// Loop is a single-use agent loop instance. Each research request gets
// its own Loop; nothing is shared between instances, so independent
// loops may run concurrently against the same read-only registry.
type Loop struct {
	cfg        Config
	gateway    interfaces.Gateway
	registry   *Registry
	parser     *Parser
	transcript Transcript
}

// New creates a loop for one run. The registry must already be constructed
// and is only read during execution.
func New(cfg Config, gateway interfaces.Gateway, registry *Registry) *Loop {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 5
	}
	if cfg.FunctionCallMarker == "" {
		cfg.FunctionCallMarker = "FUNCTION_CALL:"
	}
	if cfg.CompletionMarker == "" {
		cfg.CompletionMarker = "FINAL_ANALYSIS"
	}
	return &Loop{
		cfg:      cfg,
		gateway:  gateway,
		registry: registry,
		parser:   NewParser(cfg.FunctionCallMarker),
	}
}

// Run executes iterations until the model emits the completion marker or
// the iteration budget is spent. At most MaxIterations gateway calls are
// made, strictly one at a time. Every recoverable failure (gateway error,
// malformed call, unknown function, bad payload) becomes a transcript
// entry and the loop keeps going; only a missing system prompt or initial
// query fails the run outright.
func (l *Loop) Run(ctx context.Context) (Result, error) {
	if l.cfg.SystemPrompt == "" {
		return Result{}, &ConfigurationError{Reason: "system prompt is not set"}
	}
	if l.cfg.InitialQuery == "" {
		return Result{}, &ConfigurationError{Reason: "initial query is not set"}
	}

	ctx, span := trace.StartSpan(ctx, "agent.Run")
	defer span.End()

	for iteration := 1; iteration <= l.cfg.MaxIterations; iteration++ {
		response := l.queryModel(ctx, iteration)

		parsed, err := l.parser.Parse(response)
		if err != nil {
			// Marker without separator: record and keep looping
			logger.Warn(ctx, "Malformed function call in model response", "iteration", iteration)
			l.transcript.Append(Step{
				Iteration: iteration,
				Kind:      StepText,
				Text:      fmt.Sprintf("Error: %v", err),
			})
			continue
		}

		if parsed.Kind == ResponseFunctionCall {
			l.dispatch(ctx, iteration, parsed)
			continue
		}

		l.transcript.Append(Step{Iteration: iteration, Kind: StepText, Text: parsed.Text})

		if strings.Contains(parsed.Text, l.cfg.CompletionMarker) {
			logger.Info(ctx, "Agent run completed", "iterations", iteration)
			return Result{
				FinalText:  parsed.Text,
				Outcome:    OutcomeCompleted,
				Iterations: iteration,
				Transcript: l.transcript.Steps(),
			}, nil
		}
	}

	logger.Warn(ctx, "Agent exhausted iteration budget", "max_iterations", l.cfg.MaxIterations)
	return Result{
		FinalText:  ExhaustionSentinel,
		Outcome:    OutcomeExhausted,
		Iterations: l.cfg.MaxIterations,
		Transcript: l.transcript.Steps(),
	}, nil
}

// queryModel builds the prompt for this iteration and sends it to the
// gateway. A gateway failure is flattened into error text and treated as
// the model's answer; it is not distinguished from a real response.
func (l *Loop) queryModel(ctx context.Context, iteration int) string {
	ctx, span := trace.StartSpan(ctx, "agent.iteration")
	defer span.End()

	prompt := l.buildPrompt()
	logger.Debug(ctx, "Agent iteration", "iteration", iteration, "prompt_bytes", len(prompt))

	response, err := l.gateway.Query(ctx, prompt)
	if err != nil {
		logger.ErrorWithErr(ctx, "Model gateway call failed", err, "iteration", iteration)
		return fmt.Sprintf("Error: %v", err)
	}
	return response
}

// buildPrompt renders the conversation so far. The history string grows
// with every iteration and is never truncated; callers extending the
// iteration ceiling should be aware the prompt grows without bound.
func (l *Loop) buildPrompt() string {
	query := l.cfg.InitialQuery
	if l.transcript.Len() > 0 {
		query = query + "\n\n" + l.transcript.Render() + "\nWhat should I do next?"
	}
	return fmt.Sprintf("%s\n\nQuery: %s", l.cfg.SystemPrompt, query)
}

// dispatch resolves and invokes a parsed function call, recording the
// result. Unknown names and failing functions produce transcript entries,
// never run-ending errors; a broken registry entry therefore surfaces only
// in the transcript.
func (l *Loop) dispatch(ctx context.Context, iteration int, parsed ParsedResponse) {
	if !l.registry.Lookup(parsed.Function) {
		logger.Warn(ctx, "Model called unknown function", "function", parsed.Function, "iteration", iteration)
		l.transcript.Append(Step{
			Iteration: iteration,
			Kind:      StepText,
			Text:      fmt.Sprintf("Function %s not found", parsed.Function),
		})
		return
	}

	result := l.registry.Invoke(parsed.Function, parsed.Params)
	logger.Debug(ctx, "Function dispatched", "function", parsed.Function, "iteration", iteration, "result_bytes", len(result))

	l.transcript.Append(Step{
		Iteration: iteration,
		Kind:      StepFunctionCall,
		Function:  parsed.Function,
		Params:    parsed.Params,
		Result:    result,
	})
}
