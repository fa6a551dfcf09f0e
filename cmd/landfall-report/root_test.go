package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hurricane-landfall-service/internal/domain"
)

const feed = `AL042001,              BRAVO,      2,
20010910, 1200,  , TS, 25.0N,  84.0W,  60,  995,
20010911, 0600, L, HU, 26.0N,  81.5W, 120,  945,
AL052001,            CHANTAL,      1,
20010915, 0000, L, HU, 29.5N,  90.0W, 100,  950,
`

func writeFeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hurdat2.txt")
	require.NoError(t, os.WriteFile(path, []byte(feed), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRowsCommand(t *testing.T) {
	out, err := execute(t, "rows", "--source", writeFeed(t), "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "BRAVO"`)
	assert.NotContains(t, out, "CHANTAL")
}

func TestRowsCommand_Region(t *testing.T) {
	out, err := execute(t, "rows", "--source", writeFeed(t), "--region", "24,31,-95,-80", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "BRAVO")
	assert.Contains(t, out, "CHANTAL")
}

func TestRowsCommand_BadFlags(t *testing.T) {
	_, err := execute(t, "rows", "--source", writeFeed(t), "--format", "csv")
	require.Error(t, err)

	_, err = execute(t, "rows", "--source", writeFeed(t), "--region", "1,2")
	require.Error(t, err)

	_, err = execute(t, "rows", "--source", writeFeed(t), "--min-year", "1700")
	require.Error(t, err)
}

func TestRowsCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "rows", "--source", filepath.Join(t.TempDir(), "missing.txt"))

	var ferr *domain.FetchError
	require.ErrorAs(t, err, &ferr)
}

func TestPDFCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.pdf")

	stdout, err := execute(t, "pdf", "--source", writeFeed(t), "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote 1 storms")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
