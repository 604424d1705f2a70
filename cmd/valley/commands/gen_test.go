package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/valley/pkg/config"
	"github.com/Sumatoshi-tech/valley/pkg/testcase"
)

func executeGen(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewGenCommand()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestGenCommand_Text(t *testing.T) {
	t.Parallel()

	out, err := executeGen(t, "--size", "8", "--ops", "20", "--seed", "42")
	require.NoError(t, err)

	c, err := testcase.Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, c.Landscape, 8)
	assert.Len(t, c.Operations, 20)
	assert.Len(t, c.Expected, c.ResultCount())
}

func TestGenCommand_SeedIsDeterministic(t *testing.T) {
	t.Parallel()

	first, err := executeGen(t, "--seed", "7")
	require.NoError(t, err)

	second, err := executeGen(t, "--seed", "7")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenCommand_JSON(t *testing.T) {
	t.Parallel()

	out, err := executeGen(t, "--json", "--seed", "3", "--size", "4", "--ops", "6")
	require.NoError(t, err)

	c, err := testcase.ParseJSON([]byte(out))
	require.NoError(t, err)
	assert.Len(t, c.Landscape, 4)
}

func TestGenCommand_OutputThenRun(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "generated.json.lz4")

	_, err := executeGen(t, "--seed", "9", "--ops", "100", "--output", path)
	require.NoError(t, err)

	var f runFixture

	out, err := executeRun(t, &f, path)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS")
}

func TestGenCommand_InvalidParams(t *testing.T) {
	t.Parallel()

	_, err := executeGen(t, "--max-height", "0")
	require.ErrorIs(t, err, config.ErrInvalidGenerate)
}
