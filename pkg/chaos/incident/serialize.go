package incident

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mockforge/mockforge-chaos/pkg/chaos/scenario"
)

// ImportTimelineJSON decodes an IncidentTimeline from canonical JSON.
func ImportTimelineJSON(data []byte) (IncidentTimeline, error) {
	var t IncidentTimeline
	if err := json.Unmarshal(data, &t); err != nil {
		return IncidentTimeline{}, fmt.Errorf("import incident timeline (json): %w", err)
	}
	return t, nil
}

// ImportTimelineYAML decodes an IncidentTimeline from its YAML
// equivalent.
func ImportTimelineYAML(data []byte) (IncidentTimeline, error) {
	var t IncidentTimeline
	if err := yaml.Unmarshal(data, &t); err != nil {
		return IncidentTimeline{}, fmt.Errorf("import incident timeline (yaml): %w", err)
	}
	return t, nil
}

// ExportScenarioJSON encodes an OrchestratedScenario as canonical
// JSON.
func ExportScenarioJSON(s scenario.OrchestratedScenario) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export orchestrated scenario (json): %w", err)
	}
	return data, nil
}

// ExportScenarioYAML encodes an OrchestratedScenario as YAML.
func ExportScenarioYAML(s scenario.OrchestratedScenario) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("export orchestrated scenario (yaml): %w", err)
	}
	return data, nil
}
