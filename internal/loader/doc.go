// Package loader reads a raw protein intensity export into a
// matrix.Table. It accepts Excel workbooks (the instrument software's
// native export) and CSV files (round-tripping the cleaner's own
// output), renames the first column to the canonical identifier column,
// and validates the numeric-or-blank shape of the intensity cells at
// this boundary so the pipeline never sees malformed data.
package loader
