package advisor

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"solvency-engine/internal/model"
)

// Service fronts the providers and owns the fallbacks. Nil providers are
// treated as unavailable.
type Service struct {
	Keys      KeySource
	Describer Describer
	Extractor Extractor
	Speaker   Speaker
	log       *logrus.Entry
}

// NewService wires all three capabilities to g.
func NewService(g *Gemini, log *logrus.Entry) *Service {
	return &Service{
		Keys:      g.Keys,
		Describer: g,
		Extractor: g,
		Speaker:   g,
		log:       log,
	}
}

// Available reports whether a credential is configured.
func (s *Service) Available() bool {
	return s != nil && s.Keys != nil && s.Keys.APIKey() != ""
}

// Diagnose never fails: without a credential it returns the offline report
// and on provider failure the fixed failure report.
func (s *Service) Diagnose(ctx context.Context, data model.FinancialData, res model.AnalysisResult) *model.DiagnosisReport {
	if !s.Available() || s.Describer == nil {
		return OfflineReport(res)
	}
	report, err := s.Describer.Describe(ctx, data, res)
	if err != nil || report == nil {
		if errors.Is(err, ErrUnavailable) {
			return OfflineReport(res)
		}
		s.log.WithError(err).Warn("diagnosis failed, using fallback report")
		return FailureReport()
	}
	if report.Source == "" {
		report.Source = model.SourceGemini
	}
	return report
}

// Extract proposes values for the input record. The patch is advisory: on
// any error it is empty.
func (s *Service) Extract(ctx context.Context, doc Document) (model.InputPatch, error) {
	if !s.Available() || s.Extractor == nil {
		return model.InputPatch{}, ErrUnavailable
	}
	if len(doc.Data) == 0 {
		return model.InputPatch{}, fmt.Errorf("empty document")
	}
	patch, err := s.Extractor.Extract(ctx, doc)
	if err != nil {
		s.log.WithError(err).WithField("mime", doc.MIMEType).Warn("extraction failed")
		return model.InputPatch{}, fmt.Errorf("extract: %w", err)
	}
	return patch, nil
}

// Speak synthesizes text. Callers treat any error as "stay silent".
func (s *Service) Speak(ctx context.Context, text string) ([]byte, error) {
	if !s.Available() || s.Speaker == nil {
		return nil, ErrUnavailable
	}
	audio, err := s.Speaker.Speak(ctx, text)
	if err != nil {
		s.log.WithError(err).Warn("speech synthesis failed")
		return nil, fmt.Errorf("speak: %w", err)
	}
	if len(audio) == 0 {
		return nil, ErrNoAudio
	}
	return audio, nil
}
