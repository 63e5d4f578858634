// Package analysis implements the four pure statistics operations the
// research agent can dispatch to. Every operation takes a raw JSON payload
// (untrusted text produced by a language model) and returns a structured
// result; malformed payloads yield an error-shaped result instead of an
// error so the agent loop stays resilient to bad model output.
package analysis

// Fixed thresholds shared by the correlation and insight operations.
const (
	// CorrelationThreshold is the mean-difference (in percentage points)
	// above which news days are considered correlated with price moves.
	CorrelationThreshold = 0.5
	// SignificantMoveThreshold marks a day as significant when the
	// absolute percent change meets or exceeds it.
	SignificantMoveThreshold = 2.0
	// StrongCorrelation and ModerateCorrelation bound the strength labels.
	StrongCorrelation   = 0.7
	ModerateCorrelation = 0.4
)

const (
	maxTopSources   = 5
	maxTitlesPerDay = 3
	maxKeyEvents    = 3
)

// ErrorResult is the uniform failure shape returned by every operation
// when its payload cannot be used.
type ErrorResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResult(msg string) ErrorResult {
	return ErrorResult{Status: "error", Message: msg}
}
