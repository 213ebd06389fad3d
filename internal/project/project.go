// Package project runs a project file through the full pipeline: schema
// validation, district construction, analytics and UWG input assembly.
package project

import (
	"fmt"

	"github.com/ladybug-tools/dragonfly-uwg/pkg/analytics"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/district"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/spec"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/uwg"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/validation"
)

// Result holds every stage of a processed project. Stages after the first
// failing one are nil; Report always holds the findings so far.
type Result struct {
	Path     string
	Project  *spec.Project
	District *district.District
	Summary  *analytics.Summary
	Input    *uwg.Input
	Report   *validation.Report
}

// OK reports whether every stage completed without validation errors.
func (r *Result) OK() bool {
	return r.Report.Valid && r.Input != nil
}

// Load reads the project at path (a file or a project directory) and runs it
// through the pipeline. The error is non-nil only when the file cannot be
// read or parsed; validation failures are recorded in the report.
func Load(path string) (*Result, error) {
	p, err := spec.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("loading spec: %w", err)
	}
	return Process(path, p), nil
}

// Process runs an already parsed project through the pipeline.
func Process(path string, p *spec.Project) *Result {
	res := &Result{Path: path, Project: p}

	// 1. Schema
	res.Report = validation.ValidateSchema(p)
	if !res.Report.Valid {
		return res
	}

	// 2. District
	d, err := p.BuildDistrict()
	if err != nil {
		res.Report.AddError(validation.FromError(validation.LevelConstruction, "district", err))
		return res
	}
	res.District = d

	// 3. Analytics
	summary, report := analytics.Resolve(d)
	res.Report.Merge(report)
	if summary == nil {
		return res
	}
	res.Summary = summary

	// 4. UWG input
	in, err := uwg.NewInput(d, p.Simulation)
	if err != nil {
		res.Report.AddError(validation.FromError(validation.LevelConstruction, "", err))
		return res
	}
	res.Input = in
	return res
}
