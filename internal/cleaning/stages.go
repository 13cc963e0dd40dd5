package cleaning

import (
	"log/slog"
	"strings"

	"protclean/internal/matrix"
)

// dropEmptyIdentifiers removes rows whose identifier is null or the
// empty string. The match is exact: a whitespace-only identifier such
// as " " is retained.
func (p *Pipeline) dropEmptyIdentifiers(t *matrix.Table) *matrix.Table {
	return t.Filter(func(r matrix.Row) bool {
		return !r.ProteinNull && r.Protein != ""
	})
}

// dropAllZeroRows removes rows where every intensity is null or exactly
// zero. One strictly nonzero non-null intensity keeps the row. With
// zero intensity columns the condition holds vacuously and every row is
// removed.
func (p *Pipeline) dropAllZeroRows(t *matrix.Table) *matrix.Table {
	return t.Filter(func(r matrix.Row) bool {
		for _, v := range r.Intensities {
			if !v.IsZeroOrNull() {
				return true
			}
		}
		return false
	})
}

// dropContaminants removes rows whose identifier contains the
// contaminant marker, case-insensitively, anywhere in the string.
func (p *Pipeline) dropContaminants(t *matrix.Table) *matrix.Table {
	marker := strings.ToLower(p.cfg.ContaminantMarker)
	return t.Filter(func(r matrix.Row) bool {
		if r.ProteinNull {
			return true
		}
		return !strings.Contains(strings.ToLower(r.Protein), marker)
	})
}

// dropUnknownRepID removes rows whose identifier contains the
// unknown-RepID marker as an exact, case-sensitive substring.
func (p *Pipeline) dropUnknownRepID(t *matrix.Table) *matrix.Table {
	return t.Filter(func(r matrix.Row) bool {
		if r.ProteinNull {
			return true
		}
		return !strings.Contains(r.Protein, p.cfg.RepIDUnknownMarker)
	})
}

// rewriteRepIDIdentifiers replaces identifiers starting with the
// rewrite prefix by the RepID value captured from the identifier. Rows
// without the prefix pass through unchanged.
//
// A prefixed identifier with no RepID segment becomes a null identifier
// rather than an error: the row flows on and collapses under the null
// group key. This mirrors the upstream export semantics; the occurrence
// is logged as a data-quality warning so it is never silent.
func (p *Pipeline) rewriteRepIDIdentifiers(t *matrix.Table) *matrix.Table {
	return t.Map(func(r matrix.Row) matrix.Row {
		if r.ProteinNull || !strings.HasPrefix(r.Protein, p.cfg.RewritePrefix) {
			return r
		}
		m := p.repIDRe.FindStringSubmatch(r.Protein)
		if m == nil {
			p.logger.Warn("prefixed identifier has no RepID segment, nulling",
				slog.String("identifier", r.Protein))
			r.Protein = ""
			r.ProteinNull = true
			return r
		}
		r.Protein = m[1]
		return r
	})
}

// dropBlacklisted removes rows whose identifier contains any blacklist
// fragment as a case-sensitive substring.
func (p *Pipeline) dropBlacklisted(t *matrix.Table) *matrix.Table {
	return t.Filter(func(r matrix.Row) bool {
		if r.ProteinNull {
			return true
		}
		for _, fragment := range p.cfg.Blacklist {
			if strings.Contains(r.Protein, fragment) {
				return false
			}
		}
		return true
	})
}

// collapseDuplicates merges rows sharing an identifier into one row per
// group, summing intensities column-wise with null counted as zero. An
// all-null column therefore sums to 0, not null. Groups keep the
// first-occurrence order of their identifier; this is the only stage
// that changes row identity rather than just filtering.
func (p *Pipeline) collapseDuplicates(t *matrix.Table) *matrix.Table {
	width := len(t.IntensityColumns())
	out := &matrix.Table{Columns: t.Columns, Rows: make([]matrix.Row, 0, len(t.Rows))}
	index := make(map[matrix.RowKey]int, len(t.Rows))

	for _, row := range t.Rows {
		key := row.Key()
		if at, ok := index[key]; ok {
			sums := out.Rows[at].Intensities
			for j := 0; j < width; j++ {
				if row.Intensities[j].Valid {
					sums[j] = matrix.Num(sums[j].Float + row.Intensities[j].Float)
				}
			}
			continue
		}

		sums := make([]matrix.Value, width)
		for j := 0; j < width; j++ {
			if row.Intensities[j].Valid {
				sums[j] = matrix.Num(row.Intensities[j].Float)
			} else {
				sums[j] = matrix.Num(0)
			}
		}
		index[key] = len(out.Rows)
		out.Rows = append(out.Rows, matrix.Row{
			Protein:     row.Protein,
			ProteinNull: row.ProteinNull,
			Intensities: sums,
		})
	}
	return out
}
