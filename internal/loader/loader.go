package loader

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "protclean/internal/errors"
	"protclean/internal/matrix"
)

// Options controls how a source file is read.
type Options struct {
	// Sheet names the worksheet to read from an Excel workbook. Empty
	// means the first sheet.
	Sheet string
}

// Load reads an intensity matrix from path, dispatching on the file
// extension. Supported: .xlsx/.xlsm (Excel) and .csv.
func Load(path string, opts Options) (*matrix.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadExcel(path, opts.Sheet)
	case ".csv":
		return LoadCSV(path)
	default:
		return nil, apperrors.NewLoadError(
			fmt.Sprintf("unsupported input format %q", filepath.Ext(path)), nil)
	}
}

// tableFromRows builds a Table from a header row plus data rows. The
// first header cell is renamed to the identifier column; remaining
// headers are taken verbatim as intensity column names. Fully blank
// rows are skipped; blank intensity cells become null.
func tableFromRows(rows [][]string) (*matrix.Table, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, apperrors.NewSchemaError("input has no header row")
	}

	header := rows[0]
	columns := make([]string, len(header))
	columns[0] = matrix.IdentifierColumn
	copy(columns[1:], header[1:])

	t := matrix.New(columns)
	width := len(columns) - 1

	for i, cells := range rows[1:] {
		if blankRow(cells) {
			continue
		}

		var protein string
		if len(cells) > 0 {
			protein = cells[0]
		}

		intensities := make([]matrix.Value, width)
		for j := 0; j < width; j++ {
			var cell string
			if j+1 < len(cells) {
				cell = cells[j+1]
			}
			v, err := parseIntensity(cell)
			if err != nil {
				return nil, apperrors.NewLoadError(
					fmt.Sprintf("non-numeric intensity %q", cell), err).
					WithContext("row", i+2).
					WithContext("column", columns[j+1])
			}
			intensities[j] = v
		}

		t.Append(matrix.Row{Protein: protein, Intensities: intensities})
	}

	return t, nil
}

// parseIntensity converts one cell to a Value. A blank cell is null;
// anything else must parse as a float.
func parseIntensity(cell string) (matrix.Value, error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return matrix.Null(), nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return matrix.Value{}, err
	}
	return matrix.Num(f), nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
