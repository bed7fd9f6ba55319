package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"solvency-engine/internal/alerts"
	"solvency-engine/internal/dossier"
	"solvency-engine/internal/metrics"
	"solvency-engine/internal/model"
)

// Diagnoser produces the narrative for a result. It must not fail;
// advisor.Service satisfies it with its fallbacks.
type Diagnoser interface {
	Diagnose(ctx context.Context, data model.FinancialData, res model.AnalysisResult) *model.DiagnosisReport
}

type Engine struct {
	Diagnoser Diagnoser
	Now       func() time.Time
}

func New(d Diagnoser) *Engine {
	return &Engine{Diagnoser: d, Now: time.Now}
}

// Process runs one submission end to end. The metrics come from the pure
// calculator; everything else decorates them.
func (e *Engine) Process(ctx context.Context, req *model.AnalysisRequest) *model.AnalysisResponse {
	start := e.Now()

	data := req.FinancialData
	result := metrics.Calculate(data)
	notes := alerts.Evaluate(data, result, start)

	outcome := model.OutcomeSuccess
	var diagnosis *model.DiagnosisReport
	if req.Diagnose && e.Diagnoser != nil {
		diagnosis = e.Diagnoser.Diagnose(ctx, data, result)
		if diagnosis == nil || diagnosis.Source != model.SourceGemini {
			outcome = model.OutcomeDegraded
		}
	}

	notes = append(notes, alerts.SealNotice(start))
	seal := dossier.Seal(data, start)
	text := dossier.PlainText(dossier.Report{
		Data:      data,
		Result:    result,
		Diagnosis: diagnosis,
		Architect: req.Architect,
		Seal:      seal,
	})

	end := e.Now()
	return &model.AnalysisResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			CalculationStartedAt:   start.UTC().Format(time.RFC3339),
			CalculationCompletedAt: end.UTC().Format(time.RFC3339),
			CalculationDurationMs:  end.Sub(start).Milliseconds(),
			CalculationOutcome:     outcome,
		},
		Input:         data,
		Result:        result,
		Notifications: notes,
		Diagnosis:     diagnosis,
		Dossier: model.Dossier{
			Seal:      seal,
			PlainText: text,
		},
	}
}
