// Package advisor wraps the optional generative-AI collaborator: narrative
// diagnosis, document extraction and speech synthesis. Every capability is
// fallible and optional; Service supplies deterministic fallbacks.
package advisor

import (
	"context"
	"errors"

	"solvency-engine/internal/model"
)

var (
	// ErrUnavailable means no credential or provider is configured.
	ErrUnavailable = errors.New("advisor unavailable")
	// ErrNoAudio means the provider answered without audio data.
	ErrNoAudio = errors.New("no audio returned")
)

// KeySource yields the current API key, or "" when none is configured.
type KeySource interface {
	APIKey() string
}

// StaticKey is a KeySource with a fixed value.
type StaticKey string

func (k StaticKey) APIKey() string { return string(k) }

// Document is an uploaded file to extract figures from.
type Document struct {
	MIMEType string
	Data     []byte
}

type Describer interface {
	Describe(ctx context.Context, data model.FinancialData, res model.AnalysisResult) (*model.DiagnosisReport, error)
}

type Extractor interface {
	Extract(ctx context.Context, doc Document) (model.InputPatch, error)
}

// Speaker returns raw 16-bit little-endian mono PCM sampled at SampleRate.
type Speaker interface {
	Speak(ctx context.Context, text string) ([]byte, error)
}

// SampleRate of the audio returned by Speaker implementations.
const SampleRate = 24000
