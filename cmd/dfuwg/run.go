package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ladybug-tools/dragonfly-uwg/internal/project"
)

// loadAndValidate runs the pipeline and prints the report when any stage
// failed.
func (a *app) loadAndValidate(projectPath string) (*project.Result, error) {
	res, err := project.Load(projectPath)
	if err != nil {
		return nil, err
	}
	a.log.WithFields(logrus.Fields{
		"project": projectPath,
		"summary": res.Report.Summary,
	}).Debug("project processed")
	if !res.OK() {
		printValidationReport(os.Stderr, res.Report)
		return nil, errInvalid
	}
	return res, nil
}

func (a *app) runValidate(projectPath string) error {
	res, err := project.Load(projectPath)
	if err != nil {
		return err
	}
	printValidationReport(os.Stdout, res.Report)
	if !res.OK() {
		return errInvalid
	}
	return nil
}

func (a *app) runSummarize(projectPath string, asJSON bool) error {
	res, err := a.loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if asJSON {
		return project.WriteJSON(os.Stdout, res.Summary, false)
	}

	fmt.Println(res.District.String())
	fmt.Println()
	printSummary(os.Stdout, res.Summary)

	if len(res.Report.Warnings)+len(res.Report.Info) > 0 {
		fmt.Println()
		printValidationReport(os.Stdout, res.Report)
	}
	return nil
}

func (a *app) runMatrix(projectPath string) error {
	res, err := a.loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	printMatrix(os.Stdout, res.Summary.Matrix)
	return nil
}

func (a *app) runExport(projectPath, output string) error {
	res, err := a.loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if output == "" {
		return project.WriteJSON(os.Stdout, res.Input, false)
	}
	if err := project.Export(output, res.Input); err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"project": projectPath,
		"output":  output,
	}).Info("UWG input written")
	return nil
}

func (a *app) runBatch(ctx context.Context, paths []string, concurrency int, outDir string, compress bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	items, err := project.LoadAll(ctx, paths, concurrency)
	if err != nil {
		return err
	}

	failed := 0
	for _, item := range items {
		status, detail := batchStatus(item)
		if status != "ok" {
			failed++
		}
		fmt.Printf("%-8s %-40s %s\n", status, item.Path, detail)

		if outDir == "" || status != "ok" {
			continue
		}
		out := filepath.Join(outDir, exportName(item.Path, compress))
		if err := project.Export(out, item.Result.Input); err != nil {
			return err
		}
		a.log.WithFields(logrus.Fields{
			"project": item.Path,
			"output":  out,
		}).Info("UWG input written")
	}

	fmt.Printf("\n%d projects, %d failed\n", len(items), failed)
	if failed > 0 {
		return errInvalid
	}
	return nil
}

func batchStatus(item project.BatchItem) (string, string) {
	switch {
	case item.Err != nil:
		return "error", item.Err.Error()
	case !item.Result.OK():
		return "invalid", item.Result.Report.Summary
	default:
		return "ok", item.Result.Report.Summary
	}
}

// exportName derives an output file name from a project file or directory.
func exportName(projectPath string, compress bool) string {
	base := filepath.Base(filepath.Clean(projectPath))
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
		if base == "district" {
			base = filepath.Base(filepath.Dir(filepath.Clean(projectPath)))
		}
	}
	name := base + ".uwg.json"
	if compress {
		name += project.CompressedExt
	}
	return name
}
