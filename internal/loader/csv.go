package loader

import (
	"encoding/csv"
	"os"
	"strings"

	apperrors "protclean/internal/errors"
	"protclean/internal/matrix"
)

// LoadCSV reads the intensity matrix from a comma-separated file. A
// UTF-8 BOM on the first header cell is stripped, so the cleaner's own
// Excel-friendly output loads back unchanged.
func LoadCSV(path string) (*matrix.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewLoadError("failed to open file", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewLoadError("failed to parse csv", err).
			WithContext("path", path)
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}

	return tableFromRows(rows)
}
