package dossier

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"solvency-engine/internal/model"
)

// Seal fingerprints the inputs of one analysis at a given instant. The seal
// is an integrity marker for the printed report, not a signature.
func Seal(data model.FinancialData, at time.Time) string {
	raw := "SOLVENCY|" + num(data.Income) + "|" + num(data.Expenses) + "|" +
		num(data.Debt) + "|" + num(data.Cash) + "|" + at.UTC().Format(time.RFC3339Nano)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
