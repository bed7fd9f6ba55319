package model

// FinancialData holds the four inputs of one submission. Values are monetary
// units per period except Debt and Cash, which are balances.
type FinancialData struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Debt     float64 `json:"debt"`
	Cash     float64 `json:"cash"`
}

// InputPatch is a best-effort, partial proposal for FinancialData, usually
// produced by document extraction. Nil fields were not found.
type InputPatch struct {
	Income   *float64 `json:"income,omitempty"`
	Expenses *float64 `json:"expenses,omitempty"`
	Debt     *float64 `json:"debt,omitempty"`
	Cash     *float64 `json:"cash,omitempty"`
}

// Empty reports whether the patch proposes no value at all.
func (p InputPatch) Empty() bool {
	return p.Income == nil && p.Expenses == nil && p.Debt == nil && p.Cash == nil
}

// Apply returns base with every present field of p overwritten.
func (p InputPatch) Apply(base FinancialData) FinancialData {
	if p.Income != nil {
		base.Income = *p.Income
	}
	if p.Expenses != nil {
		base.Expenses = *p.Expenses
	}
	if p.Debt != nil {
		base.Debt = *p.Debt
	}
	if p.Cash != nil {
		base.Cash = *p.Cash
	}
	return base
}

type AnalysisRequest struct {
	FinancialData
	Diagnose  bool   `json:"diagnose,omitempty"`
	Architect string `json:"architect,omitempty"`
}

type SpeakRequest struct {
	Text   string          `json:"text"`
	Result *AnalysisResult `json:"result,omitempty"`
}

type CredentialRequest struct {
	Key string `json:"key"`
}
