// Package matrix defines the in-memory representation of a protein
// intensity matrix: one identifier column named "protein" followed by
// one numeric intensity column per sample.
//
// The Table is the single value threaded through the cleaning pipeline.
// Stages produce new Tables rather than mutating shared state, so the
// loader, pipeline and exporter never observe partial transformations.
package matrix
