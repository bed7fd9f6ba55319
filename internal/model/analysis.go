package model

// Status is the solvency verdict of an analysis.
type Status string

const (
	StatusCritical Status = "CRITICAL"
	// StatusPrecaution is part of the status domain but the current rule
	// never produces it.
	StatusPrecaution Status = "PRECAUTION"
	StatusOptimal    Status = "OPTIMAL"
)

// RunwayInfinite marks a runway that never reaches zero.
const RunwayInfinite = 9999

// ProjectionLabels names the seven projection points, current month first.
var ProjectionLabels = [7]string{"HOY", "M1", "M2", "M3", "M4", "M5", "M6"}

type AnalysisResult struct {
	NetFlow          float64           `json:"netFlow"`
	BurnRate         float64           `json:"burnRate"`
	RunwayDays       int               `json:"runwayDays"`
	SolvencyRatio    float64           `json:"solvencyRatio"`
	Status           Status            `json:"status"`
	ProjectionPoints []ProjectionPoint `json:"projectionPoints"`
	CutNeeded        float64           `json:"cutNeeded"`
	InjectionNeeded  float64           `json:"injectionNeeded"`
}

type ProjectionPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// DiagnosisReport is the narrative produced for a result.
type DiagnosisReport struct {
	Diagnosis string    `json:"diagnosis"`
	Scenarios Scenarios `json:"scenarios"`
	Plan      string    `json:"plan"`
	Source    string    `json:"source,omitempty"`
}

type Scenarios struct {
	Inertia   string `json:"inertia"`
	Cut       string `json:"cut"`
	Expansion string `json:"expansion"`
}

const (
	SourceGemini   = "gemini"
	SourceOffline  = "offline"
	SourceFallback = "fallback"
)
