package advisor

import (
	"fmt"

	"solvency-engine/internal/model"
)

// OfflineReport is returned when no credential is configured. It only
// restates figures already in res.
func OfflineReport(res model.AnalysisResult) *model.DiagnosisReport {
	return &model.DiagnosisReport{
		Diagnosis: "ENLACE NEURONAL OFF-LINE. API KEY NO DETECTADA. OPERANDO EN MODO DETERMINISTA.",
		Scenarios: model.Scenarios{
			Inertia:   "Proyección matemática basada estrictamente en flujo actual (Ver Gráfica).",
			Cut:       fmt.Sprintf("Reducción de gastos mandataria de $%s para evitar insolvencia.", number(res.CutNeeded)),
			Expansion: "Cálculo de expansión no disponible sin enlace neuronal.",
		},
		Plan:   "INTRODUZCA LLAVE MAESTRA EN LA PUERTA DE ACCESO.",
		Source: model.SourceOffline,
	}
}

// FailureReport is returned when the provider fails or answers garbage.
func FailureReport() *model.DiagnosisReport {
	return &model.DiagnosisReport{
		Diagnosis: "FALLO DE PROCESAMIENTO NEURONAL. DATOS CORRUPTOS O MODELO OCUPADO.",
		Scenarios: model.Scenarios{Inertia: "N/A", Cut: "N/A", Expansion: "N/A"},
		Plan:      "DETENER HEMORRAGIA INMEDIATAMENTE.",
		Source:    model.SourceFallback,
	}
}
