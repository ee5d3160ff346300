package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/rankguard/pkg/domain/dblp"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
)

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

// printReport writes a terminal report of every verdict
func printReport(w io.Writer, report *model.Report) {
	if len(report.Entries) == 0 {
		fmt.Fprintln(w, "No faculty entries to validate")
	}

	if report.Change != nil {
		if report.Change.Valid {
			passColor.Fprint(w, "PASS ")
		} else {
			failColor.Fprint(w, "FAIL ")
		}
		fmt.Fprintln(w, "commit checks")
		printDiagnostics(w, report.Change.Diagnostics)
	}

	for _, ev := range report.Entries {
		label := ev.Entry.Name
		if ev.Entry.Path != "" {
			label += " (" + ev.Entry.Path + ")"
		}

		if ev.Verdict.Valid {
			passColor.Fprint(w, "PASS ")
		} else {
			failColor.Fprint(w, "FAIL ")
		}
		fmt.Fprintln(w, label)
		dimColor.Fprintf(w, "     %s\n", dblp.Translate(ev.Entry.Name).URL)

		printDiagnostics(w, ev.Verdict.Diagnostics)
	}

	if report.Valid() {
		passColor.Fprintln(w, "All sanity checks passed.")
	} else {
		failColor.Fprintln(w, "Sanity checks failed.")
	}
}

func printDiagnostics(w io.Writer, diags []model.Diagnostic) {
	for _, d := range diags {
		failColor.Fprintf(w, "  - [%s] ", d.Check)
		fmt.Fprintln(w, d.Message)
	}
}
