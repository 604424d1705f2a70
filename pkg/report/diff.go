package report

import (
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a line diff between the expected and produced result series,
// one value per line. Removed lines carry "-", added lines "+".
// Returns "" when both series render identically.
func Diff(expected, got []float64) string {
	from := lines(expected)
	to := lines(got)

	if from == to {
		return ""
	}

	dmp := diffmatchpatch.New()
	src, dst, lineArray := dmp.DiffLinesToRunes(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(src, dst, false), lineArray)

	var sb strings.Builder

	for _, d := range diffs {
		prefix := "  "

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffEqual:
		}

		for line := range strings.SplitSeq(strings.TrimSuffix(d.Text, "\n"), "\n") {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func lines(values []float64) string {
	var sb strings.Builder

	for _, v := range values {
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		sb.WriteByte('\n')
	}

	return sb.String()
}
