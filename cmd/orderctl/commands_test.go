package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { importDryRun = false })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestImportRejectsNonCSV(t *testing.T) {
	_, err := execute(t, "import", "orders.xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only .csv files")
}

func TestImportRequiresFile(t *testing.T) {
	_, err := execute(t, "import")
	require.Error(t, err)
}

func TestImportDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte("orderId\n1001\n"), 0o600))

	out, err := execute(t, "import", "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ready to import")
}

func TestTrackRequiresOrderID(t *testing.T) {
	_, err := execute(t, "track")
	require.Error(t, err)
}
