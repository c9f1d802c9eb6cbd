package output

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/rpgo/fers-projector/internal/domain"
)

// ErrUnsupportedFormat is returned when no formatter matches a requested name.
var ErrUnsupportedFormat = eris.New("unsupported output format")

// ErrEmptyReport is returned when a report carries neither a projection nor a simulation result.
var ErrEmptyReport = eris.New("report has no results")

// Report is the payload handed to formatters. Exactly one of Projection or
// Simulation is expected to be set.
type Report struct {
	Projection *domain.ProjectionResult
	Simulation *domain.AggregateResult
}

// ProjectionReport wraps a deterministic projection.
func ProjectionReport(p *domain.ProjectionResult) *Report { return &Report{Projection: p} }

// SimulationReport wraps an aggregated Monte Carlo result.
func SimulationReport(a *domain.AggregateResult) *Report { return &Report{Simulation: a} }

func (r *Report) validate() error {
	if r == nil || (r.Projection == nil && r.Simulation == nil) {
		return ErrEmptyReport
	}
	return nil
}

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
	// Extension is the file extension used when the output is written to disk.
	Extension() string
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	JSONFormatter{},
	YAMLFormatter{},
}

// GetFormatterByName fetches a registered formatter, resolving aliases.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":        "console",
	"table":       "console",
	"txt":         "console",
	"json-pretty": "json",
	"yml":         "yaml",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
