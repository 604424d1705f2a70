package testcase

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Encode writes c in the text format. Expected values use the shortest
// representation that parses back to the same float64.
func Encode(w io.Writer, c *Case) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, len(c.Landscape))
	fmt.Fprintln(bw, joinInts(c.Landscape))
	fmt.Fprintln(bw, len(c.Operations))

	for _, op := range c.Operations {
		if op.Code == OpInsert {
			fmt.Fprintf(bw, "%d %d\n", op.Code, op.Height)
		} else {
			fmt.Fprintln(bw, int(op.Code))
		}
	}

	fmt.Fprintln(bw, len(c.Expected))

	parts := make([]string, len(c.Expected))
	for i, e := range c.Expected {
		parts[i] = strconv.FormatFloat(e, 'g', -1, 64)
	}

	fmt.Fprintln(bw, strings.Join(parts, " "))

	err := bw.Flush()
	if err != nil {
		return fmt.Errorf("write case: %w", err)
	}

	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}

	return strings.Join(parts, " ")
}
