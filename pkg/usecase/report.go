package usecase

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/rankguard/pkg/domain/dblp"
	"github.com/m-mizutani/rankguard/pkg/domain/model"
	"github.com/m-mizutani/rankguard/pkg/domain/types"
)

// FormatReport formats a report as a markdown pull request comment
func FormatReport(report *model.Report) string {
	var sb strings.Builder

	sb.WriteString("## Faculty entry validation\n\n")
	if report.Valid() {
		sb.WriteString("All sanity checks passed.\n\n")
	} else {
		sb.WriteString("Some entries need attention before this change can be merged.\n\n")
	}

	if report.Change != nil {
		mark := "✅"
		if !report.Change.Valid {
			mark = "❌"
		}
		sb.WriteString(fmt.Sprintf("### %s No faculty entry added\n\n", mark))
		writeDiagnostics(&sb, report.Change.Diagnostics)
		sb.WriteString("\n")
	}

	for _, ev := range report.Entries {
		mark := "✅"
		if !ev.Verdict.Valid {
			mark = "❌"
		}
		key := dblp.Translate(ev.Entry.Name)
		sb.WriteString(fmt.Sprintf("### %s %s (`%s`)\n\n", mark, ev.Entry.Name, ev.Entry.Path))
		sb.WriteString(fmt.Sprintf("- Affiliation: %s\n", ev.Entry.Affiliation))
		sb.WriteString(fmt.Sprintf("- Homepage: %s\n", ev.Entry.Homepage))
		sb.WriteString(fmt.Sprintf("- DBLP: %s\n", key.URL))

		if len(ev.Verdict.Diagnostics) > 0 {
			sb.WriteString("\n")
			writeDiagnostics(&sb, ev.Verdict.Diagnostics)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("Checked by %s %s\n", types.ServiceName, types.Version))

	return sb.String()
}

func writeDiagnostics(sb *strings.Builder, diags []model.Diagnostic) {
	for _, d := range diags {
		sb.WriteString(fmt.Sprintf("- **%s**: %s\n", d.Check, d.Message))
	}
}
