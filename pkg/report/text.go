package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/valley/pkg/alg/stats"
	"github.com/Sumatoshi-tech/valley/pkg/harness"
)

const durationDigits = 2

// TextOptions controls the human-readable report.
type TextOptions struct {
	// ShowCase prints each case before its verdict.
	ShowCase bool
	// Diff prints an expected/got diff for failed cases.
	Diff bool
}

// WriteText writes one block per outcome followed by a summary line.
// Colouring follows color.NoColor.
func WriteText(w io.Writer, outcomes []*harness.Outcome, opts TextOptions) error {
	var sb strings.Builder

	passed := 0

	for _, o := range outcomes {
		if o.Passed() {
			passed++
		}

		writeOutcome(&sb, o, opts)
	}

	fmt.Fprintf(&sb, "%s cases: %s passed, %s failed\n",
		humanize.Comma(int64(len(outcomes))),
		humanize.Comma(int64(passed)),
		humanize.Comma(int64(len(outcomes)-passed)))

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	return nil
}

func writeOutcome(sb *strings.Builder, o *harness.Outcome, opts TextOptions) {
	if opts.ShowCase {
		sb.WriteString(o.Case.String())
		sb.WriteByte('\n')
	}

	verdict := color.New(color.FgGreen, color.Bold).Sprint("PASS")
	if !o.Passed() {
		verdict = color.New(color.FgRed, color.Bold).Sprint("FAIL")
	}

	fmt.Fprintf(sb, "%s %s: %s ops, %s results in %s\n",
		verdict, o.Name,
		humanize.Comma(int64(len(o.Case.Operations))),
		humanize.Comma(int64(len(o.Steps))),
		humanize.SIWithDigits(o.Duration.Seconds(), durationDigits, "s"))

	if o.CountMismatch {
		color.New(color.FgYellow).Fprintf(sb, "  expected %d results, got %d\n", len(o.Case.Expected), len(o.Steps))
	} else if len(o.Steps) > 0 {
		devs := stats.AbsDeviations(o.Case.Expected, o.Results())
		fmt.Fprintf(sb, "  deviation: max %g, mean %g\n", stats.Max(devs), stats.Mean(devs))
	}

	if len(o.Mismatches) > 0 {
		sb.WriteString(mismatchTable(o.Mismatches))
		sb.WriteByte('\n')
	}

	if opts.Diff && !o.Passed() {
		if d := Diff(o.Case.Expected, o.Results()); d != "" {
			sb.WriteString(d)
		}
	}
}

func mismatchTable(mismatches []harness.Mismatch) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false

	tbl.AppendHeader(table.Row{"Result", "Operation", "Expected", "Got", "Error"})

	for _, m := range mismatches {
		errText := ""
		if m.Err != nil {
			errText = m.Err.Error()
		}

		tbl.AppendRow(table.Row{
			m.Result,
			m.Op.String(),
			strconv.FormatFloat(m.Expected, 'g', -1, 64),
			strconv.FormatFloat(m.Got, 'g', -1, 64),
			errText,
		})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("%d mismatches", len(mismatches))})

	return tbl.Render()
}
