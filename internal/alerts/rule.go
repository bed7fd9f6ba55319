package alerts

import "solvency-engine/internal/model"

// Rule defines the contract for all surveillance rules.
// Each rule inspects a computed result and raises zero or more notifications.
// ID and Timestamp are filled in by Evaluate.
type Rule interface {
	Evaluate(data model.FinancialData, res model.AnalysisResult) []model.Notification
}

// shortRunwayDays is the runway below which the impact-zone alert fires.
const shortRunwayDays = 90

type NegativeFlowRule struct{}

func (r *NegativeFlowRule) Evaluate(_ model.FinancialData, res model.AnalysisResult) []model.Notification {
	if res.NetFlow >= 0 {
		return nil
	}
	return []model.Notification{{
		Type:    model.LevelWarning,
		Title:   "FLUIDO NEGATIVO",
		Message: "Detectada hemorragia de capital mensual.",
	}}
}

type ShortRunwayRule struct{}

func (r *ShortRunwayRule) Evaluate(_ model.FinancialData, res model.AnalysisResult) []model.Notification {
	if res.RunwayDays >= shortRunwayDays {
		return nil
	}
	return []model.Notification{{
		Type:    model.LevelCritical,
		Title:   "ZONA DE IMPACTO",
		Message: formatRunway(res.RunwayDays),
	}}
}
