package advisor

import (
	"fmt"
	"strconv"

	"solvency-engine/internal/model"
)

const extractionPrompt = `Extract financial totals from this document.
Return JSON with keys: income, expenses, cash, debt. Values should be numbers.
Omit any key you cannot find.`

// diagnosisPrompt feeds the already computed figures to the model. The model
// writes narrative only and must not recompute numbers.
func diagnosisPrompt(res model.AnalysisResult) string {
	return fmt.Sprintf(`IDENTIDAD: Motor Forense Financiero.
MODO: Auditoría Quirúrgica.

DATOS YA CALCULADOS (NO LOS RECALCULES, ÚSALOS COMO VERDAD ABSOLUTA):
- Flujo Neto Mensual: $%[1]s
- Días de Vida (Runway): %[2]d
- Estado: %[3]s
- Corte Necesario (Breakeven): $%[4]s
- Inyección Necesaria (6 meses): $%[5]s

TAREA: Generar SOLO texto para la "AUTOPSIA" y "ESCENARIOS".
NO simules números nuevos. Basa tu narrativa en los datos proporcionados.

REQUISITOS:
1. AUTOPSIA: Usa términos médicos/forenses. Sé duro pero justo.
2. ESCENARIOS (Texto breve):
   - INERCIA: ¿Qué pasa si no hace nada? (Basado en Flujo Neto y Días de Vida).
   - CORTE: ¿Qué pasa si corta los $%[4]s indicados?
   - EXPANSIÓN: ¿Qué actitud se requiere para crecer?

FORMATO JSON EXACTO:
{
  "diagnosis": "Texto de la autopsia (2 oraciones).",
  "scenarios": {
    "inertia": "Texto escenario inercia.",
    "cut": "Texto escenario corte.",
    "expansion": "Texto escenario expansión."
  },
  "plan": "Una frase final de mando estilo militar."
}`,
		number(res.NetFlow), res.RunwayDays, res.Status, number(res.CutNeeded), number(res.InjectionNeeded))
}

// number prints v with the shortest exact representation, no grouping.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
