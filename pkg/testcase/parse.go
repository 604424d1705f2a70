package testcase

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Parse errors.
var (
	ErrTruncated     = errors.New("truncated test case")
	ErrBadToken      = errors.New("malformed token")
	ErrNegativeCount = errors.New("negative count")
	ErrUnknownOpCode = errors.New("unknown operation code")
)

// maxPrealloc bounds up-front allocation so a bogus count in a short file
// fails with ErrTruncated instead of exhausting memory.
const maxPrealloc = 1 << 16

// tokenReader yields whitespace separated tokens and remembers their index.
type tokenReader struct {
	scanner *bufio.Scanner
	pos     int
}

func newTokenReader(r io.Reader) *tokenReader {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	return &tokenReader{scanner: scanner}
}

func (tr *tokenReader) next(field string) (string, error) {
	if !tr.scanner.Scan() {
		if err := tr.scanner.Err(); err != nil {
			return "", fmt.Errorf("read %s: %w", field, err)
		}

		return "", fmt.Errorf("%w: missing %s after token %d", ErrTruncated, field, tr.pos)
	}

	tr.pos++

	return tr.scanner.Text(), nil
}

func (tr *tokenReader) readInt(field string) (int, error) {
	tok, err := tr.next(field)
	if err != nil {
		return 0, err
	}

	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q at token %d", ErrBadToken, field, tok, tr.pos)
	}

	return v, nil
}

func (tr *tokenReader) readFloat(field string) (float64, error) {
	tok, err := tr.next(field)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q at token %d", ErrBadToken, field, tok, tr.pos)
	}

	return v, nil
}

func (tr *tokenReader) readCount(field string) (int, error) {
	n, err := tr.readInt(field)
	if err != nil {
		return 0, err
	}

	if n < 0 {
		return 0, fmt.Errorf("%w: %s %d at token %d", ErrNegativeCount, field, n, tr.pos)
	}

	return n, nil
}

// Parse reads a case in the text format:
//
//	N h1 .. hN
//	M op1 .. opM   (1 first, 2 remove, "3 h" insert, 4 total)
//	K e1 .. eK
//
// Tokens may be separated by any whitespace. Trailing tokens are ignored.
func Parse(r io.Reader) (*Case, error) {
	tr := newTokenReader(r)

	n, err := tr.readCount("landscape size")
	if err != nil {
		return nil, err
	}

	c := &Case{Landscape: make([]int, 0, min(n, maxPrealloc))}

	for range n {
		height, err := tr.readInt("height")
		if err != nil {
			return nil, err
		}

		c.Landscape = append(c.Landscape, height)
	}

	m, err := tr.readCount("operation count")
	if err != nil {
		return nil, err
	}

	c.Operations = make([]Operation, 0, min(m, maxPrealloc))

	for range m {
		op, err := parseOperation(tr)
		if err != nil {
			return nil, err
		}

		c.Operations = append(c.Operations, op)
	}

	k, err := tr.readCount("expected count")
	if err != nil {
		return nil, err
	}

	c.Expected = make([]float64, 0, min(k, maxPrealloc))

	for range k {
		want, err := tr.readFloat("expected result")
		if err != nil {
			return nil, err
		}

		c.Expected = append(c.Expected, want)
	}

	return c, nil
}

func parseOperation(tr *tokenReader) (Operation, error) {
	code, err := tr.readInt("operation code")
	if err != nil {
		return Operation{}, err
	}

	switch OpCode(code) {
	case OpFirst, OpRemove, OpTotal:
		return Operation{Code: OpCode(code)}, nil
	case OpInsert:
		height, err := tr.readInt("insert height")
		if err != nil {
			return Operation{}, err
		}

		return Operation{Code: OpInsert, Height: height}, nil
	default:
		return Operation{}, fmt.Errorf("%w: %d at token %d", ErrUnknownOpCode, code, tr.pos)
	}
}
