package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "protclean/internal/errors"
	"protclean/internal/matrix"
)

// writeWorkbook builds a small xlsx fixture. Each row is written
// verbatim; nil cells stay blank.
func writeWorkbook(t *testing.T, rows ...[]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "raw.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadExcel(t *testing.T) {
	path := writeWorkbook(t,
		[]interface{}{"Protein IDs", "Patient_A", "Patient_B"},
		[]interface{}{"P1", 1.5, 2},
		[]interface{}{"P2", 0, nil},
	)

	table, err := Load(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"protein", "Patient_A", "Patient_B"}, table.Columns)
	require.Equal(t, 2, table.Height())

	assert.Equal(t, "P1", table.Rows[0].Protein)
	assert.Equal(t, []matrix.Value{matrix.Num(1.5), matrix.Num(2)}, table.Rows[0].Intensities)

	// A blank cell loads as null, distinct from the explicit zero.
	assert.Equal(t, "P2", table.Rows[1].Protein)
	assert.Equal(t, []matrix.Value{matrix.Num(0), matrix.Null()}, table.Rows[1].Intensities)
}

func TestLoadExcel_NamedSheet(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet("intensities")
	require.NoError(t, err)
	row := []interface{}{"id", "S1"}
	require.NoError(t, f.SetSheetRow("intensities", "A1", &row))
	data := []interface{}{"P1", 3}
	require.NoError(t, f.SetSheetRow("intensities", "A2", &data))

	path := filepath.Join(t.TempDir(), "multi.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Load(path, Options{Sheet: "intensities"})
	require.NoError(t, err)
	require.Equal(t, 1, table.Height())
	assert.Equal(t, "P1", table.Rows[0].Protein)
}

func TestLoadExcel_SkipsBlankRows(t *testing.T) {
	path := writeWorkbook(t,
		[]interface{}{"id", "S1"},
		[]interface{}{"P1", 1},
		[]interface{}{nil, nil},
		[]interface{}{"P2", 2},
	)

	table, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, table.Height())
}

func TestLoadExcel_NonNumericIntensity(t *testing.T) {
	path := writeWorkbook(t,
		[]interface{}{"id", "S1"},
		[]interface{}{"P1", "not-a-number"},
	)

	_, err := Load(path, Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
}

func TestLoadExcel_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.xlsx"), Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.csv")
	content := "\ufeffProtein IDs,S1,S2\nP1,4,\nP2,0,0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := Load(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"protein", "S1", "S2"}, table.Columns)
	require.Equal(t, 2, table.Height())
	assert.Equal(t, []matrix.Value{matrix.Num(4), matrix.Null()}, table.Rows[0].Intensities)
	assert.Equal(t, []matrix.Value{matrix.Num(0), matrix.Num(0)}, table.Rows[1].Intensities)
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := Load(path, Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load("matrix.parquet", Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
}

func TestTableFromRows_IdentifierOnlyHeader(t *testing.T) {
	table, err := tableFromRows([][]string{{"id"}, {"P1"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"protein"}, table.Columns)
	require.Equal(t, 1, table.Height())
	assert.Empty(t, table.Rows[0].Intensities)
}
