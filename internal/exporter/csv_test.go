package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "protclean/internal/errors"
	"protclean/internal/matrix"
)

func testTable() *matrix.Table {
	return &matrix.Table{
		Columns: []string{"protein", "S1", "S2"},
		Rows: []matrix.Row{
			{Protein: "P1", Intensities: []matrix.Value{matrix.Num(4), matrix.Num(2)}},
			{Protein: "Q1", Intensities: []matrix.Value{matrix.Num(0.0001), matrix.Null()}},
		},
	}
}

func TestWriteTable(t *testing.T) {
	w := NewCSVWriter(nil)
	path := filepath.Join(t.TempDir(), "out", "cleaned.csv")

	require.NoError(t, w.WriteTable(path, testTable(), WriteOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "protein,S1,S2\nP1,4,2\nQ1,0.0001,\n", string(data))
}

func TestWriteTable_BOMPrefix(t *testing.T) {
	w := NewCSVWriter(nil)
	path := filepath.Join(t.TempDir(), "cleaned.csv")

	require.NoError(t, w.WriteTable(path, testTable(), WriteOptions{BOMPrefix: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Equal(t, "protein,S1,S2", string(data[3:16]))
}

func TestWriteTable_NullIdentifier(t *testing.T) {
	w := NewCSVWriter(nil)
	path := filepath.Join(t.TempDir(), "cleaned.csv")

	table := &matrix.Table{
		Columns: []string{"protein", "S1"},
		Rows: []matrix.Row{
			{ProteinNull: true, Intensities: []matrix.Value{matrix.Num(3)}},
		},
	}
	require.NoError(t, w.WriteTable(path, table, WriteOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "protein,S1\n,3\n", string(data))
}

func TestWriteTable_DirectoryCreationFails(t *testing.T) {
	w := NewCSVWriter(nil)

	// A file where a directory is needed forces MkdirAll to fail.
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := w.WriteTable(filepath.Join(blocker, "sub", "cleaned.csv"), testTable(), WriteOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeWrite))
}
