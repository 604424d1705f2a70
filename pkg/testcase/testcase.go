// Package testcase reads, writes and generates replay cases for a valley
// Traveler. A case is an initial landscape, an ordered list of operations
// and the results expected from every operation that is not an insert.
package testcase

import (
	"fmt"
	"strconv"
	"strings"
)

// OpCode identifies an operation in a case file.
type OpCode int

// Operation codes as they appear in the text format.
const (
	OpFirst  OpCode = 1
	OpRemove OpCode = 2
	OpInsert OpCode = 3
	OpTotal  OpCode = 4
)

// Name returns the JSON name of the code.
func (c OpCode) Name() string {
	switch c {
	case OpFirst:
		return "first"
	case OpRemove:
		return "remove"
	case OpInsert:
		return "insert"
	case OpTotal:
		return "total"
	default:
		return "invalid"
	}
}

// opCodeByName maps JSON names back to codes.
var opCodeByName = map[string]OpCode{
	"first":  OpFirst,
	"remove": OpRemove,
	"insert": OpInsert,
	"total":  OpTotal,
}

// Operation is one step of a case. Height is only meaningful for OpInsert.
type Operation struct {
	Code   OpCode
	Height int
}

// Produces reports whether the operation yields a result.
func (o Operation) Produces() bool {
	return o.Code != OpInsert
}

// String renders the operation as Op:[name] or Op:[insert h].
func (o Operation) String() string {
	switch o.Code {
	case OpFirst:
		return "Op:[getFirst]"
	case OpRemove:
		return "Op:[remove]"
	case OpInsert:
		return "Op:[insert " + strconv.Itoa(o.Height) + "]"
	case OpTotal:
		return "Op:[getTotalTreasure]"
	default:
		return "Op:[Invalid]"
	}
}

// Case is a complete replay scenario.
type Case struct {
	Landscape  []int
	Operations []Operation
	Expected   []float64
}

// ResultCount returns how many results replaying the case produces.
func (c *Case) ResultCount() int {
	n := 0

	for _, op := range c.Operations {
		if op.Produces() {
			n++
		}
	}

	return n
}

// String renders the case the way the evaluator prints it before a run.
func (c *Case) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Landscape[%d]:{%v}\n", len(c.Landscape), c.Landscape)
	fmt.Fprintf(&sb, "Operations[%d]:{\n", len(c.Operations))

	for _, op := range c.Operations {
		sb.WriteString("  " + op.String() + "\n")
	}

	sb.WriteString("}\n")
	fmt.Fprintf(&sb, "Expected[%d]:{%v}\n", len(c.Expected), c.Expected)

	return sb.String()
}
