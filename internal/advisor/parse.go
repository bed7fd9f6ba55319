package advisor

import (
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	json "github.com/goccy/go-json"
)

// decodeModelJSON unmarshals a model response into v, repairing common
// defects (code fences, trailing commas, single quotes) on a second attempt.
func decodeModelJSON(text string, v interface{}) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("empty model response")
	}
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}
	repaired, err := jsonrepair.RepairJSON(text)
	if err != nil {
		return fmt.Errorf("repair model json: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("decode model json: %w", err)
	}
	return nil
}
