package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/valley/pkg/harness"
	"github.com/Sumatoshi-tech/valley/pkg/report"
	"github.com/Sumatoshi-tech/valley/pkg/testcase"
)

const (
	passingCase = "5\n5 3 4 1 2\n5\n1\n2\n4\n3 0\n1\n4\n4 4 4 3\n"
	failingCase = "5\n5 3 4 1 2\n2\n1\n4\n2\n4 1\n"
	shortCase   = "1\n7\n2\n1\n1\n1\n7\n"
	emptyCase   = "0\n1\n2\n1\n5\n"
	nanCase     = "1\n7\n1\n1\n1\nNaN\n"
)

func run(t *testing.T, name, text string) *harness.Outcome {
	t.Helper()

	c, err := testcase.Parse(strings.NewReader(text))
	require.NoError(t, err)

	return harness.NewRunner().Run(context.Background(), name, c)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	s := report.Build([]*harness.Outcome{
		run(t, "pass", passingCase),
		run(t, "fail", failingCase),
		run(t, "short", shortCase),
	})

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Passed)
	assert.Equal(t, 2, s.Failed)

	pass := s.Cases[0]
	assert.True(t, pass.Passed)
	require.NotNil(t, pass.MaxDeviation)
	assert.InDelta(t, 0.0, *pass.MaxDeviation, 0)
	assert.Equal(t, 5, pass.Operations)

	fail := s.Cases[1]
	require.Len(t, fail.Mismatches, 1)
	assert.Equal(t, "Op:[getTotalTreasure]", fail.Mismatches[0].Operation)
	require.NotNil(t, fail.MaxDeviation)
	assert.InDelta(t, 1.0, *fail.MaxDeviation, 0)

	short := s.Cases[2]
	assert.True(t, short.CountMismatch)
	assert.Nil(t, short.MaxDeviation)
}

func TestBuild_NonFiniteBecomesNull(t *testing.T) {
	t.Parallel()

	s := report.Build([]*harness.Outcome{run(t, "empty", emptyCase)})

	cr := s.Cases[0]
	require.Len(t, cr.Got, 1)
	assert.Nil(t, cr.Got[0])
	assert.Nil(t, cr.MaxDeviation)
	require.Len(t, cr.Mismatches, 1)
	assert.Nil(t, cr.Mismatches[0].Got)
	assert.Contains(t, cr.Mismatches[0].Error, "empty")
}

func TestWrite_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	outcomes := []*harness.Outcome{run(t, "pass", passingCase), run(t, "empty", emptyCase)}
	require.NoError(t, report.Write(&buf, report.FormatJSON, outcomes, report.TextOptions{}))

	var decoded map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.InDelta(t, 2.0, decoded["total"], 0)
	assert.InDelta(t, 1.0, decoded["failed"], 0)
	assert.Contains(t, buf.String(), `"got": [`+"\n"+`        null`)
}

func TestWrite_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, report.Write(&buf, report.FormatYAML, []*harness.Outcome{run(t, "fail", failingCase)}, report.TextOptions{}))

	var decoded report.Summary

	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.Failed)
	require.Len(t, decoded.Cases, 1)
	assert.Equal(t, "fail", decoded.Cases[0].Name)
	assert.Len(t, decoded.Cases[0].Mismatches, 1)
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := report.Write(&bytes.Buffer{}, "xml", nil, report.TextOptions{})
	require.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	outcomes := []*harness.Outcome{
		run(t, "pass", passingCase),
		run(t, "fail", failingCase),
		run(t, "short", shortCase),
	}

	require.NoError(t, report.WriteText(&buf, outcomes, report.TextOptions{ShowCase: true, Diff: true}))

	out := buf.String()
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "pass: 5 ops, 4 results")
	assert.Contains(t, out, "Landscape[5]")
	assert.Contains(t, out, "Op:[getTotalTreasure]")
	assert.Contains(t, out, "expected 1 results, got 2")
	assert.Contains(t, out, "- 1\n+ 0\n")
	assert.Contains(t, out, "3 cases: 1 passed, 2 failed")
}

func TestWriteText_NoDiffWhenDisabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, report.WriteText(&buf, []*harness.Outcome{run(t, "fail", failingCase)}, report.TextOptions{}))
	assert.NotContains(t, buf.String(), "+ 0")
	assert.NotContains(t, buf.String(), "Landscape[")
}

func TestDiff(t *testing.T) {
	t.Parallel()

	assert.Empty(t, report.Diff([]float64{1, 2}, []float64{1, 2}))
	assert.Equal(t, "  1\n- 2\n+ 2.5\n  3\n", report.Diff([]float64{1, 2, 3}, []float64{1, 2.5, 3}))
	assert.Equal(t, "  1\n+ 2\n", report.Diff([]float64{1}, []float64{1, 2}))
}

func TestWriteChart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, report.WriteChart(&buf, []*harness.Outcome{
		run(t, "pass-case", passingCase),
		run(t, "empty-case", emptyCase),
	}))

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "pass-case")
	assert.Contains(t, html, "empty-case")
	assert.Contains(t, html, "Expected")
}

func TestWrite_NonFiniteExpected(t *testing.T) {
	t.Parallel()

	outcomes := []*harness.Outcome{run(t, "nan", nanCase)}

	s := report.Build(outcomes)
	require.Len(t, s.Cases[0].Mismatches, 1)
	assert.Nil(t, s.Cases[0].Mismatches[0].Expected)
	require.NotNil(t, s.Cases[0].Mismatches[0].Got)
	assert.InDelta(t, 7.0, *s.Cases[0].Mismatches[0].Got, 0)

	for _, format := range []string{report.FormatJSON, report.FormatYAML, report.FormatText} {
		var buf bytes.Buffer

		require.NoError(t, report.Write(&buf, format, outcomes, report.TextOptions{Diff: true}), format)
	}

	var buf bytes.Buffer

	require.NoError(t, report.Write(&buf, report.FormatJSON, outcomes, report.TextOptions{}))
	assert.Contains(t, buf.String(), `"expected": null`)
}
