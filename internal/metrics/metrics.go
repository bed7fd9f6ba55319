// Package metrics derives solvency metrics from the four financial inputs.
// Calculate is pure: no I/O, no clock, no shared state.
package metrics

import (
	"math"

	"solvency-engine/internal/model"
)

// daysPerMonth converts a monthly burn into a day count.
const daysPerMonth = 30

// injectionMonths is the horizon the injection figure funds.
const injectionMonths = 6

// Calculate computes the analysis for one submission. It is total over finite
// inputs: zero burn and zero debt fall back to sentinel values, and negative
// inputs are passed through the arithmetic unchanged. Results that overflow
// float64 saturate at ±math.MaxFloat64, so every figure stays finite.
func Calculate(data model.FinancialData) model.AnalysisResult {
	netFlow := saturate(data.Income - data.Expenses)

	points := make([]model.ProjectionPoint, len(model.ProjectionLabels))
	for i, label := range model.ProjectionLabels {
		points[i] = model.ProjectionPoint{
			Month: label,
			Value: saturate(data.Cash + netFlow*float64(i)),
		}
	}

	res := model.AnalysisResult{
		NetFlow:          netFlow,
		RunwayDays:       model.RunwayInfinite,
		Status:           model.StatusOptimal,
		ProjectionPoints: points,
	}

	if netFlow < 0 {
		burn := -netFlow
		res.BurnRate = burn
		res.RunwayDays = runway(data.Cash, burn)
		res.CutNeeded = burn
		res.InjectionNeeded = saturate(math.Max(0, burn*injectionMonths-data.Cash))
		res.Status = model.StatusCritical
	}

	res.SolvencyRatio = solvency(data.Cash, data.Debt)
	return res
}

// runway is not clamped at zero: negative cash yields a negative day count.
// Day counts beyond the int range pin to math.MaxInt or math.MinInt.
func runway(cash, burn float64) int {
	if burn <= 0 {
		return 0
	}
	days := math.Floor(cash / burn * daysPerMonth)
	switch {
	case math.IsNaN(days):
		return 0
	case days >= float64(math.MaxInt):
		return math.MaxInt
	case days <= float64(math.MinInt):
		return math.MinInt
	}
	return int(days)
}

func solvency(cash, debt float64) float64 {
	if debt > 0 {
		return saturate(cash / debt * 100)
	}
	return 100.0
}

// saturate maps ±Inf to ±math.MaxFloat64. NaN cannot arise from finite
// inputs once netFlow is saturated, and is mapped to 0 regardless.
func saturate(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}
