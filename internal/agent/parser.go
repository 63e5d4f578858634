package agent

import (
	"errors"
	"strings"
)

// ErrMalformedFunctionCall indicates the function-call marker was present
// but the payload had no name|params separator
var ErrMalformedFunctionCall = errors.New("malformed function call: missing '|' separator")

// ResponseKind classifies a raw model response
type ResponseKind int

const (
	// ResponseText covers both terminal answers and plain conversation
	// turns; the loop decides which via the completion-marker substring.
	ResponseText ResponseKind = iota
	ResponseFunctionCall
)

// ParsedResponse is the result of classifying one model response
type ParsedResponse struct {
	Kind     ResponseKind
	Function string
	Params   string
	Text     string
}

// Parser deterministically classifies model responses. The marker token
// is configuration, not a constant of the grammar.
type Parser struct {
	functionCallMarker string
}

// NewParser creates a parser for the given function-call marker token
func NewParser(functionCallMarker string) *Parser {
	return &Parser{functionCallMarker: functionCallMarker}
}

// Parse classifies raw response text. When the function-call marker is
// present, everything after it splits on the first '|' into the function
// name and raw parameter payload, both trimmed. A marker without a
// separator is a malformed call. Any other text is returned whole; no
// JSON parsing happens at this layer.
func (p *Parser) Parse(raw string) (ParsedResponse, error) {
	if idx := strings.Index(raw, p.functionCallMarker); idx >= 0 {
		rest := strings.TrimSpace(raw[idx+len(p.functionCallMarker):])
		name, params, found := strings.Cut(rest, "|")
		if !found {
			return ParsedResponse{}, ErrMalformedFunctionCall
		}
		return ParsedResponse{
			Kind:     ResponseFunctionCall,
			Function: strings.TrimSpace(name),
			Params:   strings.TrimSpace(params),
		}, nil
	}

	return ParsedResponse{Kind: ResponseText, Text: raw}, nil
}
