package testcase

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchema is returned when a JSON case does not match the case schema.
var ErrSchema = errors.New("case does not match schema")

//go:embed case-schema.json
var caseSchema []byte

// Schema returns the JSON schema JSON cases are validated against.
func Schema() []byte {
	return caseSchema
}

type jsonOperation struct {
	Op     string `json:"op"`
	Height *int   `json:"height,omitempty"`
}

type jsonCase struct {
	Landscape  []int           `json:"landscape"`
	Operations []jsonOperation `json:"operations"`
	Expected   []float64       `json:"expected"`
}

// ParseJSON validates data against the case schema and decodes it.
func ParseJSON(data []byte) (*Case, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(caseSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate case: %w", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))

		for _, verr := range result.Errors() {
			details = append(details, verr.Field()+": "+verr.Description())
		}

		return nil, fmt.Errorf("%w: %s", ErrSchema, strings.Join(details, "; "))
	}

	var raw jsonCase

	err = json.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("decode case: %w", err)
	}

	c := &Case{
		Landscape:  raw.Landscape,
		Operations: make([]Operation, 0, len(raw.Operations)),
		Expected:   raw.Expected,
	}

	for _, op := range raw.Operations {
		o := Operation{Code: opCodeByName[op.Op]}
		if op.Height != nil {
			o.Height = *op.Height
		}

		c.Operations = append(c.Operations, o)
	}

	return c, nil
}

// EncodeJSON writes c in the JSON case format.
func EncodeJSON(w io.Writer, c *Case) error {
	raw := jsonCase{
		Landscape:  c.Landscape,
		Operations: make([]jsonOperation, 0, len(c.Operations)),
		Expected:   c.Expected,
	}

	if raw.Landscape == nil {
		raw.Landscape = []int{}
	}

	if raw.Expected == nil {
		raw.Expected = []float64{}
	}

	for _, op := range c.Operations {
		jo := jsonOperation{Op: op.Code.Name()}
		if op.Code == OpInsert {
			jo.Height = &op.Height
		}

		raw.Operations = append(raw.Operations, jo)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(raw)
	if err != nil {
		return fmt.Errorf("encode case: %w", err)
	}

	return nil
}
