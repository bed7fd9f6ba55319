package alerts

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"solvency-engine/internal/model"
)

var registry = map[string]Rule{
	"negative_flow": &NegativeFlowRule{},
	"short_runway":  &ShortRunwayRule{},
}

func Get(name string) (Rule, bool) {
	r, ok := registry[name]
	return r, ok
}

// Names returns the registered rule names in evaluation order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate runs every registered rule in order and stamps the notifications.
// The result is never nil.
func Evaluate(data model.FinancialData, res model.AnalysisResult, now time.Time) []model.Notification {
	out := []model.Notification{}
	stamp := now.UTC().Format(time.RFC3339)
	for _, name := range Names() {
		for _, n := range registry[name].Evaluate(data, res) {
			n.ID = uuid.New().String()
			n.Timestamp = stamp
			out = append(out, n)
		}
	}
	return out
}

// SealNotice announces that a dossier seal is being computed.
func SealNotice(now time.Time) model.Notification {
	return model.Notification{
		ID:        uuid.New().String(),
		Type:      model.LevelInfo,
		Title:     "GENERANDO HUELLA",
		Message:   "Calculando Hash SHA-256...",
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

func formatRunway(days int) string {
	return fmt.Sprintf("Pista de aterrizaje crítica: %d días restantes.", days)
}
