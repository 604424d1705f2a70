package report

import (
	"math"

	"github.com/Sumatoshi-tech/valley/pkg/alg/stats"
	"github.com/Sumatoshi-tech/valley/pkg/harness"
)

// Summary is the machine-readable form of a run.
type Summary struct {
	Cases  []CaseReport `json:"cases"  yaml:"cases"`
	Total  int          `json:"total"  yaml:"total"`
	Passed int          `json:"passed" yaml:"passed"`
	Failed int          `json:"failed" yaml:"failed"`
}

// CaseReport describes one replayed case. Values that are not finite,
// such as the result of an operation that failed, are encoded as null.
type CaseReport struct {
	Name            string           `json:"name"                    yaml:"name"`
	Expected        []*float64       `json:"expected"                yaml:"expected"`
	Got             []*float64       `json:"got"                     yaml:"got"`
	Mismatches      []MismatchReport `json:"mismatches,omitempty"    yaml:"mismatches,omitempty"`
	MaxDeviation    *float64         `json:"max_deviation,omitempty" yaml:"max_deviation,omitempty"`
	Operations      int              `json:"operations"              yaml:"operations"`
	DurationSeconds float64          `json:"duration_seconds"        yaml:"duration_seconds"`
	Passed          bool             `json:"passed"                  yaml:"passed"`
	CountMismatch   bool             `json:"count_mismatch"          yaml:"count_mismatch"`
}

// MismatchReport describes one differing result.
type MismatchReport struct {
	Expected  *float64 `json:"expected"        yaml:"expected"`
	Got       *float64 `json:"got"             yaml:"got"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
	Operation string   `json:"operation"       yaml:"operation"`
	Result    int      `json:"result"          yaml:"result"`
}

// Build converts outcomes into a Summary.
func Build(outcomes []*harness.Outcome) *Summary {
	s := &Summary{
		Cases: make([]CaseReport, 0, len(outcomes)),
		Total: len(outcomes),
	}

	for _, o := range outcomes {
		if o.Passed() {
			s.Passed++
		} else {
			s.Failed++
		}

		s.Cases = append(s.Cases, buildCase(o))
	}

	return s
}

func buildCase(o *harness.Outcome) CaseReport {
	got := o.Results()

	cr := CaseReport{
		Name:            o.Name,
		Expected:        finiteAll(o.Case.Expected),
		Got:             finiteAll(got),
		Operations:      len(o.Case.Operations),
		DurationSeconds: o.Duration.Seconds(),
		Passed:          o.Passed(),
		CountMismatch:   o.CountMismatch,
	}

	if !o.CountMismatch && len(got) > 0 {
		cr.MaxDeviation = finite(stats.Max(stats.AbsDeviations(o.Case.Expected, got)))
	}

	for _, m := range o.Mismatches {
		mr := MismatchReport{
			Got:       finite(m.Got),
			Operation: m.Op.String(),
			Result:    m.Result,
			Expected:  finite(m.Expected),
		}

		if m.Err != nil {
			mr.Error = m.Err.Error()
		}

		cr.Mismatches = append(cr.Mismatches, mr)
	}

	return cr
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}

func finiteAll(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		out[i] = finite(v)
	}

	return out
}
