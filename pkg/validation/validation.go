// Package validation collects findings about a project file across its three
// checking stages and renders them as a single report.
package validation

import (
	"errors"
	"fmt"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/check"
)

// Level is the stage that produced a finding.
type Level string

const (
	LevelSchema       Level = "schema"
	LevelConstruction Level = "construction"
	LevelAnalytical   Level = "analytical"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Result is one finding. SpecPath locates the offending value in the
// project file, e.g. district.building_typologies[2].glz_ratio.
type Result struct {
	Level        Level    `json:"level"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	SpecPath     string   `json:"spec_path"`
	ActualValue  any      `json:"actual_value,omitempty"`
	Expected     string   `json:"expected,omitempty"`
	ConflictWith string   `json:"conflict_with,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

// Report groups findings by severity. Only errors make it invalid.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
	Summary  string   `json:"summary"`
}

func NewReport() *Report {
	r := &Report{Valid: true, Errors: []Result{}, Warnings: []Result{}, Info: []Result{}}
	r.summarize()
	return r
}

func (r *Report) AddError(result Result)   { r.add(SeverityError, result) }
func (r *Report) AddWarning(result Result) { r.add(SeverityWarning, result) }
func (r *Report) AddInfo(result Result)    { r.add(SeverityInfo, result) }

func (r *Report) add(sev Severity, res Result) {
	res.Severity = sev
	switch sev {
	case SeverityError:
		r.Errors = append(r.Errors, res)
		r.Valid = false
	case SeverityWarning:
		r.Warnings = append(r.Warnings, res)
	default:
		r.Info = append(r.Info, res)
	}
	r.summarize()
}

// Merge appends every finding of other, keeping their severities.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	for _, group := range [][]Result{other.Errors, other.Warnings, other.Info} {
		for _, res := range group {
			r.add(res.Severity, res)
		}
	}
}

// Paths returns the SpecPath of every finding with the given severity, in
// insertion order.
func (r *Report) Paths(sev Severity) []string {
	var group []Result
	switch sev {
	case SeverityError:
		group = r.Errors
	case SeverityWarning:
		group = r.Warnings
	default:
		group = r.Info
	}
	paths := make([]string, len(group))
	for i, res := range group {
		paths[i] = res.SpecPath
	}
	return paths
}

func (r *Report) summarize() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
}

// FromError converts a domain error into a finding at specPath. A wrapped
// check.FieldError extends the path with its field and carries the rejected
// value; a check.LookupError suggests setting the value explicitly.
func FromError(level Level, specPath string, err error) Result {
	res := Result{Level: level, Message: err.Error(), SpecPath: specPath}

	var fe *check.FieldError
	if errors.As(err, &fe) {
		res.ActualValue, res.Expected = fe.Actual, fe.Expected
		res.SpecPath = joinPath(specPath, fe.Field)
	}
	var le *check.LookupError
	if errors.As(err, &le) {
		res.ActualValue = le.Key
		res.Suggestions = append(res.Suggestions,
			"Set the value explicitly; the "+le.Table+" table has no default for it")
	}
	return res
}

func joinPath(base, field string) string {
	switch {
	case base == "":
		return field
	case field == "":
		return base
	}
	return base + "." + field
}
