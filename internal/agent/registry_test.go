package agent

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewRegistryRejectsUnknownOperation(t *testing.T) {
	_, err := NewRegistry(map[string]Func{
		"delete_all_positions": func(string) any { return nil },
	})
	if err == nil {
		t.Fatal("Expected construction to fail for an operation outside the closed set")
	}
}

func TestNewRegistryRejectsNilFunc(t *testing.T) {
	_, err := NewRegistry(map[string]Func{
		OpAnalyzePriceData: nil,
	})
	if err == nil {
		t.Fatal("Expected construction to fail for a nil function")
	}
}

func TestRegistryLookup(t *testing.T) {
	r, err := NewRegistry(map[string]Func{
		OpAnalyzePriceData: func(string) any { return map[string]int{"ok": 1} },
	})
	if err != nil {
		t.Fatalf("Expected registry to build, got %v", err)
	}

	if !r.Lookup(OpAnalyzePriceData) {
		t.Error("Expected registered operation to be found")
	}
	if r.Lookup(OpAnalyzeNewsSentiment) {
		t.Error("Expected unregistered operation to be absent even though its name is allowed")
	}
}

func TestInvokeSerializesResult(t *testing.T) {
	r, err := NewRegistry(map[string]Func{
		OpAnalyzeNewsSentiment: func(payload string) any {
			return map[string]any{"total_articles": 4, "echo": payload}
		},
	})
	if err != nil {
		t.Fatalf("Expected registry to build, got %v", err)
	}

	out := r.Invoke(OpAnalyzeNewsSentiment, "[]")
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Invoke must return valid JSON, got %q: %v", out, err)
	}
	if decoded["total_articles"].(float64) != 4 {
		t.Errorf("Unexpected result payload: %q", out)
	}
	if decoded["echo"] != "[]" {
		t.Errorf("Expected the raw payload to reach the function, got %v", decoded["echo"])
	}
}

func TestInvokeRecoversPanic(t *testing.T) {
	r, err := NewRegistry(map[string]Func{
		OpGenerateInvestmentInsight: func(string) any {
			panic("boom")
		},
	})
	if err != nil {
		t.Fatalf("Expected registry to build, got %v", err)
	}

	out := r.Invoke(OpGenerateInvestmentInsight, "{}")
	var decoded struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Recovered panic must serialize as JSON, got %q: %v", out, err)
	}
	if decoded.Status != "error" {
		t.Errorf("Expected error status, got %q", decoded.Status)
	}
	if !strings.Contains(decoded.Message, "boom") {
		t.Errorf("Expected panic value in message, got %q", decoded.Message)
	}
}

func TestInvokeUnknownName(t *testing.T) {
	r, err := NewRegistry(map[string]Func{})
	if err != nil {
		t.Fatalf("Expected empty registry to build, got %v", err)
	}

	out := r.Invoke(OpCorrelateNewsAndPrice, "{}")
	if !strings.Contains(out, "error") || !strings.Contains(out, "not found") {
		t.Errorf("Expected an error-shaped result, got %q", out)
	}
}
