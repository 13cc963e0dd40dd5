package matrix

// IdentifierColumn is the canonical name of the identifier column. The
// loader renames whatever the first column of the source file was called
// to this name before the pipeline runs.
const IdentifierColumn = "protein"

// Value represents a single intensity measurement that may be null.
// A null value means "not measured"; a zero value means "measured as
// absent". The distinction matters: a row whose intensities are all
// null or zero is considered empty, but only exact nulls are excluded
// from summation semantics.
type Value struct {
	Float float64
	Valid bool
}

// Num returns a non-null Value.
func Num(f float64) Value {
	return Value{Float: f, Valid: true}
}

// Null returns a null Value.
func Null() Value {
	return Value{}
}

// IsZeroOrNull reports whether the value is null or measured as exactly zero.
func (v Value) IsZeroOrNull() bool {
	return !v.Valid || v.Float == 0
}

// Row is one protein record: an identifier plus intensities aligned
// positionally to the Table's intensity columns. The identifier itself
// may be null, which is distinct from the empty string.
type Row struct {
	Protein     string
	ProteinNull bool
	Intensities []Value
}

// Key returns the grouping key for the row. Null identifiers group
// separately from empty-string identifiers.
func (r Row) Key() RowKey {
	return RowKey{Protein: r.Protein, Null: r.ProteinNull}
}

// RowKey identifies a group of rows sharing the same (possibly null)
// identifier value.
type RowKey struct {
	Protein string
	Null    bool
}

// Table is an ordered protein intensity matrix. Columns holds the
// identifier column name first, then the intensity column names in
// source order. Every Row carries len(Columns)-1 intensities.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates a Table with the given column names and no rows. The
// caller is responsible for putting the identifier column first.
func New(columns []string) *Table {
	return &Table{Columns: columns}
}

// IntensityColumns returns the intensity column names in order.
func (t *Table) IntensityColumns() []string {
	if len(t.Columns) == 0 {
		return nil
	}
	return t.Columns[1:]
}

// Height returns the number of rows.
func (t *Table) Height() int {
	return len(t.Rows)
}

// Width returns the number of columns, identifier included.
func (t *Table) Width() int {
	return len(t.Columns)
}

// Append adds a row to the table.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Filter returns a new Table containing the rows for which keep returns
// true. Column names are shared with the receiver; rows are not copied.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{Columns: t.Columns, Rows: make([]Row, 0, len(t.Rows))}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Map returns a new Table with fn applied to every row. fn must not
// change the number of intensities.
func (t *Table) Map(fn func(Row) Row) *Table {
	out := &Table{Columns: t.Columns, Rows: make([]Row, len(t.Rows))}
	for i, row := range t.Rows {
		out.Rows[i] = fn(row)
	}
	return out
}
