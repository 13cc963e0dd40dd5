package exporter

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	apperrors "protclean/internal/errors"
	"protclean/internal/matrix"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteTable writes the table to a CSV file at path, creating parent
// directories as needed. The identifier column is serialized first,
// then the intensity columns in table order; null intensities and null
// identifiers become empty cells.
func (w *CSVWriter) WriteTable(path string, t *matrix.Table, options WriteOptions) error {
	w.logger.Info("writing csv file",
		slog.String("path", path),
		slog.Int("rows", t.Height()),
		slog.Int("columns", t.Width()))

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewWriteError("failed to create directory", err).
			WithContext("path", dir)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewWriteError("failed to create file", err).
			WithContext("path", path)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewWriteError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(t.Columns); err != nil {
		return apperrors.NewWriteError("failed to write header", err)
	}

	record := make([]string, t.Width())
	for i, row := range t.Rows {
		record[0] = ""
		if !row.ProteinNull {
			record[0] = row.Protein
		}
		for j, v := range row.Intensities {
			record[j+1] = formatValue(v)
		}
		if err := writer.Write(record); err != nil {
			return apperrors.NewWriteError("failed to write record", err).
				WithContext("row", i)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewWriteError("failed to flush csv", err)
	}
	if err := file.Close(); err != nil {
		return apperrors.NewWriteError("failed to close file", err)
	}
	return nil
}

// formatValue serializes one intensity: nulls as empty cells, numbers
// in their shortest exact decimal form.
func formatValue(v matrix.Value) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float, 'f', -1, 64)
}
