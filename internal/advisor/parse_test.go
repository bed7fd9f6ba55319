package advisor

import (
	"strings"
	"testing"

	"solvency-engine/internal/metrics"
	"solvency-engine/internal/model"
)

func TestDecodeModelJSON(t *testing.T) {
	var report model.DiagnosisReport
	in := `{"diagnosis":"Necrosis por deuda.","scenarios":{"inertia":"i","cut":"c","expansion":"e"},"plan":"p"}`
	if err := decodeModelJSON(in, &report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Scenarios.Expansion != "e" {
		t.Fatalf("expected expansion e, got %q", report.Scenarios.Expansion)
	}
}

func TestDecodeModelJSONRepairsTrailingComma(t *testing.T) {
	var patch model.InputPatch
	if err := decodeModelJSON(`{"income": 5000, "debt": 120,}`, &patch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patch.Income == nil || *patch.Income != 5000 {
		t.Fatalf("expected income 5000, got %+v", patch)
	}
	if patch.Debt == nil || *patch.Debt != 120 {
		t.Fatalf("expected debt 120, got %+v", patch)
	}
	if patch.Cash != nil || patch.Expenses != nil {
		t.Fatalf("expected missing fields to stay nil, got %+v", patch)
	}
}

func TestDecodeModelJSONEmpty(t *testing.T) {
	var patch model.InputPatch
	if err := decodeModelJSON("   ", &patch); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestDiagnosisPromptCarriesFigures(t *testing.T) {
	res := metrics.Calculate(model.FinancialData{Income: 3000, Expenses: 5000, Debt: 10000, Cash: 6000})
	p := diagnosisPrompt(res)

	for _, want := range []string{"$-2000", "Runway): 90", "CRITICAL", "$2000", "$6000"} {
		if !strings.Contains(p, want) {
			t.Fatalf("expected prompt to contain %q", want)
		}
	}
}
