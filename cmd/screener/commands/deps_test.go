package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSymbolsInput_Flag(t *testing.T) {
	got, err := readSymbolsInput(" TCS, ,INFY ", "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"TCS", "INFY"}, got)
}

func TestReadSymbolsInput_Empty(t *testing.T) {
	got, err := readSymbolsInput("", "", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadSymbolsInput_Stdin(t *testing.T) {
	got, err := readSymbolsInput("ITC", "-", strings.NewReader("Symbol,Qty\nTCS,10\nINFY,5\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ITC", "TCS", "INFY"}, got)
}

func TestReadSymbolsInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("RELIANCE\nHDFCBANK; SBIN\n"), 0o644))

	got, err := readSymbolsInput("", path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"RELIANCE", "HDFCBANK", "SBIN"}, got)
}

func TestReadSymbolsInput_MissingFile(t *testing.T) {
	_, err := readSymbolsInput("", filepath.Join(t.TempDir(), "nope.csv"), nil)
	assert.Error(t, err)
}
