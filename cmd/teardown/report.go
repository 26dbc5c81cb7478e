package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Faultbox/teardown/internal/plan"
)

var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
	warn   = color.New(color.FgYellow)
	part   = color.New(color.FgCyan)
)

func banner(w io.Writer, subtitle string) {
	fmt.Fprintf(w, "%s %s\n\n", brand.Sprint("teardown"), subtle.Sprint("- "+subtitle))
}

func statusIcon(ok bool) string {
	if ok {
		return good.Sprint("✓")
	}
	return bad.Sprint("✗")
}

// printMetrics writes the plan's optimization summary.
func printMetrics(w io.Writer, p *plan.Plan) {
	if p == nil {
		return
	}
	m := p.Metrics
	fmt.Fprintln(w)
	brand.Fprintln(w, "Results")
	rows := [][2]string{
		{"algorithm", m.Algorithm},
		{"steps", fmt.Sprint(m.NumberOfSteps)},
		{"total time", fmt.Sprintf("%.2f", m.TotalTime)},
		{"total cost", fmt.Sprintf("%.2f", m.TotalCost)},
		{"avg difficulty", fmt.Sprintf("%.2f", m.AverageDifficulty)},
		{"efficiency", fmt.Sprintf("%.4f", m.EfficiencyScore)},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", subtle.Sprintf("%-15s", r[0]), r[1])
	}

	if len(p.OptimalPath) > 0 {
		fmt.Fprintln(w)
		brand.Fprintln(w, "Optimal path")
		for _, e := range p.OptimalPath {
			name := e.PartName
			if name == "" {
				name = e.PartID
			}
			fmt.Fprintf(w, "  %2d. %s %s\n", e.Step, part.Sprint(name), subtle.Sprint(e.Action))
		}
	}
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
