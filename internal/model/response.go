package model

type AnalysisResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	Input               FinancialData       `json:"input"`
	Result              AnalysisResult      `json:"result"`
	Notifications       []Notification      `json:"notifications"`
	Diagnosis           *DiagnosisReport    `json:"diagnosis,omitempty"`
	Dossier             Dossier             `json:"dossier"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

// Dossier is the printable rendition of one analysis.
type Dossier struct {
	Seal      string `json:"seal"`
	PlainText string `json:"plain_text"`
}

type ExtractResponse struct {
	Patch     InputPatch `json:"patch"`
	Available bool       `json:"available"`
	Message   string     `json:"message,omitempty"`
}

type CredentialResponse struct {
	Configured bool   `json:"configured"`
	Source     string `json:"source"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess  = "SUCCESS"
	OutcomeDegraded = "DEGRADED"
)
