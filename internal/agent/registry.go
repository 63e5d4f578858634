package agent

import (
	"encoding/json"
	"fmt"
)

// The closed set of operations a registry may carry. Arbitrary runtime
// registration is rejected at construction time.
const (
	OpAnalyzePriceData          = "analyze_price_data"
	OpAnalyzeNewsSentiment      = "analyze_news_sentiment"
	OpCorrelateNewsAndPrice     = "correlate_news_and_price"
	OpGenerateInvestmentInsight = "generate_investment_insight"
)

var allowedOperations = map[string]bool{
	OpAnalyzePriceData:          true,
	OpAnalyzeNewsSentiment:      true,
	OpCorrelateNewsAndPrice:     true,
	OpGenerateInvestmentInsight: true,
}

// Func is a single analysis operation: raw JSON payload in, JSON-serializable
// result out. Implementations return an error-shaped value rather than
// failing on bad payloads.
type Func func(payload string) any

// Registry is a fixed mapping from operation name to analysis function.
// It is read-only after construction and safe for concurrent use by
// independent agent loops.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry builds a registry from the given entries, rejecting any name
// outside the closed operation set
func NewRegistry(entries map[string]Func) (*Registry, error) {
	funcs := make(map[string]Func, len(entries))
	for name, fn := range entries {
		if !allowedOperations[name] {
			return nil, fmt.Errorf("unknown operation %q: not in the closed operation set", name)
		}
		if fn == nil {
			return nil, fmt.Errorf("operation %q has a nil function", name)
		}
		funcs[name] = fn
	}
	return &Registry{funcs: funcs}, nil
}

// Lookup reports whether the named operation is registered
func (r *Registry) Lookup(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

// Invoke runs the named operation with the raw payload and returns the
// JSON-serialized result. A panicking function is recovered into an
// error-shaped result; invocation failures never escape the registry.
func (r *Registry) Invoke(name, payload string) (result string) {
	fn, ok := r.funcs[name]
	if !ok {
		return fmt.Sprintf(`{"status":"error","message":"Function %s not found"}`, name)
	}

	defer func() {
		if rec := recover(); rec != nil {
			b, _ := json.Marshal(fmt.Sprintf("function %s failed: %v", name, rec))
			result = fmt.Sprintf(`{"status":"error","message":%s}`, b)
		}
	}()

	out := fn(payload)
	b, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"status":"error","message":"function %s returned an unserializable result"}`, name)
	}
	return string(b)
}
