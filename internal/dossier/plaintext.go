// Package dossier renders an analysis for people: currency strings, the
// plain-text report used for clipboard export, the integrity seal and the
// narration line.
package dossier

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"solvency-engine/internal/model"
)

// Report is everything the plain-text dossier shows.
type Report struct {
	Data      model.FinancialData
	Result    model.AnalysisResult
	Diagnosis *model.DiagnosisReport
	Architect string
	Seal      string
}

const (
	pending      = "PENDIENTE"
	analyzing    = "ANALIZANDO..."
	unknownOwner = "DESCONOCIDO"
)

// PlainText renders r in the fixed report layout. Missing narrative fields
// show placeholders.
func PlainText(r Report) string {
	res := r.Result
	status := "🟢 ÓPTIMO"
	if res.Status == model.StatusCritical {
		status = "🔴 CRÍTICO"
	}
	architect := r.Architect
	if architect == "" {
		architect = unknownOwner
	}

	diagnosis, inertia, cut, expansion := analyzing, pending, pending, pending
	if d := r.Diagnosis; d != nil {
		diagnosis = orDefault(d.Diagnosis, analyzing)
		inertia = orDefault(d.Scenarios.Inertia, pending)
		cut = orDefault(d.Scenarios.Cut, pending)
		expansion = orDefault(d.Scenarios.Expansion, pending)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏛️ REPORTE DE AUDITORÍA\n")
	fmt.Fprintf(&b, "ESTADO: [ %s ]\n", status)
	fmt.Fprintf(&b, "ARQUITECTO: %s\n\n", architect)

	fmt.Fprintf(&b, "1. 📉 EVIDENCIA GRÁFICA\n")
	for _, p := range res.ProjectionPoints {
		fmt.Fprintf(&b, "   %-4s %s\n", p.Month, FormatCurrency(p.Value))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "2. 🩻 LA AUTOPSIA (Análisis Causal)\n\"%s\"\n\n", diagnosis)

	fmt.Fprintf(&b, "3. 📊 LA VERDAD DE LOS DATOS\n\n")
	b.WriteString(metricsTable(res))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "ESCENARIOS PROYECTADOS (SIN SIMULACIÓN):\n")
	fmt.Fprintf(&b, "> INERCIA: %s\n> CORTE: %s\n> EXPANSIÓN: %s\n\n", inertia, cut, expansion)

	fmt.Fprintf(&b, "4. 🔪 PLAN QUIRÚRGICO (Acción Inmediata)\n")
	fmt.Fprintf(&b, "CORTAR: %s (Para equilibrio)\n", FormatCurrency(res.CutNeeded))
	fmt.Fprintf(&b, "INYECTAR: %s (Para 6 meses de vida)\n", FormatCurrency(res.InjectionNeeded))
	if r.Diagnosis != nil && r.Diagnosis.Plan != "" {
		fmt.Fprintf(&b, "ORDEN: %s\n", r.Diagnosis.Plan)
	}

	fmt.Fprintf(&b, "\n🔐 SELLO DE INTEGRIDAD:\n%s\n", r.Seal)
	return strings.TrimSpace(b.String())
}

func metricsTable(res model.AnalysisResult) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Métrica", "Valor", "Estado"})

	flow := "Negativo"
	if res.NetFlow >= 0 {
		flow = "Positivo"
	}
	solvency := "Riesgo"
	if res.SolvencyRatio > 50 {
		solvency = "Seguro"
	}
	urgency := "Nivel de Urgencia Alto"
	if res.RunwayDays > 90 {
		urgency = "Sin Urgencia"
	}

	t.AppendRow(table.Row{"Flujo Neto", FormatCurrency(res.NetFlow), flow})
	t.AppendRow(table.Row{"Solvencia", fmt.Sprintf("%.2f%%", res.SolvencyRatio), solvency})
	t.AppendRow(table.Row{"Días Rest", runwayLabel(res.RunwayDays), urgency})
	return t.Render()
}

// runwayLabel collapses anything over a thousand days into the infinite mark.
func runwayLabel(days int) string {
	if days > 1000 {
		return "9999+"
	}
	return fmt.Sprintf("%d", days)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
