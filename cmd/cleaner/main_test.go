package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"protclean/internal/config"
	apperrors "protclean/internal/errors"
)

// writeFixture builds the reference raw export from the cleaning
// acceptance scenario.
func writeFixture(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Protein IDs", "S1", "S2"},
		{"", 5, 0},
		{"CONTAM_A", 10, 10},
		{"P1|RepID=unknown", 0, 0},
		{"k77x|RepID=Q1|y", 2, 0},
		{"Q1", 3, 5},
		{"W1WC08_9ZZZZ", 9, 9},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "raw.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRun_EndToEnd(t *testing.T) {
	inPath := writeFixture(t)
	outPath := filepath.Join(t.TempDir(), "cleaned.csv")

	err := run(context.Background(), config.Default(), quietLogger(), inPath, outPath, "", false)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	content := strings.TrimPrefix(string(data), "\ufeff")
	assert.Equal(t, "protein,S1,S2\nQ1,5,5\n", content)
}

func TestRun_NoOutputPath(t *testing.T) {
	inPath := writeFixture(t)

	// Writing is optional; the run succeeds without an output path.
	err := run(context.Background(), config.Default(), quietLogger(), inPath, "", "", false)
	require.NoError(t, err)
}

func TestRun_MissingInput(t *testing.T) {
	err := run(context.Background(), config.Default(), quietLogger(),
		filepath.Join(t.TempDir(), "absent.xlsx"), "", "", false)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
}
