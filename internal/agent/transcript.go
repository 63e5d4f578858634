package agent

import (
	"fmt"
	"strings"
)

// StepKind tags a transcript entry as either a dispatched function call
// or a plain model response
type StepKind int

const (
	StepFunctionCall StepKind = iota
	StepText
)

// Step is one completed iteration of the agent loop. Function-call steps
// carry the dispatched name, raw parameter payload and the serialized
// result; text steps carry the model's raw response.
type Step struct {
	Iteration int
	Kind      StepKind
	Function  string
	Params    string
	Result    string
	Text      string
}

// Transcript is the append-only ordered record of all iterations in one
// agent run. It is owned by a single loop instance and never shared.
type Transcript struct {
	steps []Step
}

// Append adds a completed step. Entries are never mutated afterwards.
func (t *Transcript) Append(s Step) {
	t.steps = append(t.steps, s)
}

// Len returns the number of recorded steps
func (t *Transcript) Len() int {
	return len(t.steps)
}

// Steps returns a copy of the recorded steps
func (t *Transcript) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// Render produces the conversation history as prompt text, one line per
// step. Function calls render as a fixed sentence; text steps render as
// the raw response. The output grows without bound as iterations
// accumulate.
func (t *Transcript) Render() string {
	lines := make([]string, 0, len(t.steps))
	for _, s := range t.steps {
		switch s.Kind {
		case StepFunctionCall:
			lines = append(lines, fmt.Sprintf(
				"In iteration %d you called %s with %s parameters, and the function returned %s.",
				s.Iteration, s.Function, s.Params, s.Result))
		default:
			lines = append(lines, s.Text)
		}
	}
	return strings.Join(lines, "\n")
}
