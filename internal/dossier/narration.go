package dossier

import "solvency-engine/internal/model"

// Narration is the spoken line for a computed result.
func Narration(res model.AnalysisResult) string {
	if res.NetFlow >= 0 {
		return "Proyección determinista calculada. La trayectoria es óptima. El capital muestra crecimiento estructural. Mantenga el rumbo."
	}
	return "Alerta de integridad financiera. Detecto una hemorragia de capital crítica en la proyección a seis meses. Se requieren medidas correctivas inmediatas."
}
