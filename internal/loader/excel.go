package loader

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	apperrors "protclean/internal/errors"
	"protclean/internal/matrix"
)

// LoadExcel reads the intensity matrix from an Excel workbook. If sheet
// is empty the first sheet in the workbook is used.
func LoadExcel(path, sheet string) (*matrix.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewLoadError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewLoadError("workbook has no sheets", nil).
				WithContext("path", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewLoadError(
			fmt.Sprintf("failed to read sheet %q", sheet), err).
			WithContext("path", path)
	}

	t, err := tableFromRows(rows)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded workbook",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("rows", t.Height()),
		slog.Int("columns", t.Width()))

	return t, nil
}
