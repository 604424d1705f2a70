package testcase

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"
)

const (
	extLZ4  = ".lz4"
	extJSON = ".json"
)

// LoadFile reads a case from path. A ".lz4" suffix is decompressed first;
// the remaining name picks the format: ".json" for JSON, anything else for
// the text format.
func LoadFile(path string) (*Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open case: %w", err)
	}
	defer f.Close()

	c, err := Load(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Load reads a case from r, using name to select decompression and format.
func Load(r io.Reader, name string) (*Case, error) {
	if strings.HasSuffix(name, extLZ4) {
		r = lz4.NewReader(r)
		name = strings.TrimSuffix(name, extLZ4)
	}

	if filepath.Ext(name) != extJSON {
		return Parse(r)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read case: %w", err)
	}

	return ParseJSON(data)
}

// SaveFile writes c to path, choosing format and compression from the name
// the same way LoadFile does.
func SaveFile(path string, c *Case) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create case: %w", err)
	}

	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return Save(f, filepath.Base(path), c)
}

// Save writes c to w, using name to select compression and format.
func Save(w io.Writer, name string, c *Case) error {
	if !strings.HasSuffix(name, extLZ4) {
		return encodeByName(w, name, c)
	}

	zw := lz4.NewWriter(w)

	err := encodeByName(zw, strings.TrimSuffix(name, extLZ4), c)
	if err != nil {
		return err
	}

	err = zw.Close()
	if err != nil {
		return fmt.Errorf("close lz4 writer: %w", err)
	}

	return nil
}

func encodeByName(w io.Writer, name string, c *Case) error {
	if filepath.Ext(name) == extJSON {
		return EncodeJSON(w, c)
	}

	return Encode(w, c)
}
