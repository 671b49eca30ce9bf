package doctor

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"nvm-manager/internal/catalog"
)

// Probe is the subset of the nvm client needed for a health check.
type Probe interface {
	Binary() string
	Version(ctx context.Context) (string, error)
}

type Catalog interface {
	Fetch(ctx context.Context) ([]catalog.Entry, error)
}

type Result struct {
	Name   string `json:"name" yaml:"name"`
	OK     bool   `json:"ok" yaml:"ok"`
	Detail string `json:"detail" yaml:"detail"`
}

type Report struct {
	Results []Result `json:"results" yaml:"results"`
}

func (r Report) OK() bool {
	for _, res := range r.Results {
		if !res.OK {
			return false
		}
	}
	return true
}

// Err summarizes the failed checks, or returns nil when all passed.
func (r Report) Err() error {
	var failed []string
	for _, res := range r.Results {
		if !res.OK {
			failed = append(failed, res.Name+": "+res.Detail)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("doctor found %d problem(s): %s", len(failed), strings.Join(failed, "; "))
}

var lookPath = exec.LookPath

func Check(ctx context.Context, tool Probe, cat Catalog) Report {
	var report Report

	bin := tool.Binary()
	path, err := lookPath(bin)
	if err != nil {
		report.Results = append(report.Results, Result{
			Name:   "tool",
			Detail: fmt.Sprintf("missing dependency %q in PATH", bin),
		})
	} else {
		report.Results = append(report.Results, Result{Name: "tool", OK: true, Detail: path})
		version, err := tool.Version(ctx)
		if err != nil {
			report.Results = append(report.Results, Result{
				Name:   "tool version",
				Detail: fmt.Sprintf("%s version failed: %v", bin, err),
			})
		} else {
			report.Results = append(report.Results, Result{Name: "tool version", OK: true, Detail: version})
		}
	}

	if cat != nil {
		entries, err := cat.Fetch(ctx)
		if err != nil {
			report.Results = append(report.Results, Result{Name: "catalog", Detail: err.Error()})
		} else {
			report.Results = append(report.Results, Result{
				Name:   "catalog",
				OK:     true,
				Detail: fmt.Sprintf("%d releases", len(entries)),
			})
		}
	}
	return report
}
