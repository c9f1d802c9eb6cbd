package output

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// JSONFormatter serializes the report result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	v, err := report.payload()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(v, "", "  ")
}

// YAMLFormatter serializes the report result as YAML. Decimal values are
// emitted as strings, the same way they appear in JSON output.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string      { return "yaml" }
func (y YAMLFormatter) Extension() string { return "yaml" }

func (y YAMLFormatter) Format(report *Report) ([]byte, error) {
	v, err := report.payload()
	if err != nil {
		return nil, err
	}
	// Round-trip through JSON so the json tags and decimal marshalers drive the field layout.
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(generic)
}

// payload returns the single result a serializing formatter should emit, or
// both when a report carries a projection and a simulation.
func (r *Report) payload() (any, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	switch {
	case r.Projection != nil && r.Simulation != nil:
		return map[string]any{"projection": r.Projection, "simulation": r.Simulation}, nil
	case r.Projection != nil:
		return r.Projection, nil
	default:
		return r.Simulation, nil
	}
}
