package output

import (
	"encoding/json"

	"github.com/rpgo/goalsim/internal/domain"
)

// JSONFormatter serializes the simulation output as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.SimulationOutput) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
