// Package cleaning implements the protein intensity matrix cleaning
// pipeline: an ordered sequence of seven row filters and identifier
// transforms ending in duplicate collapse by summation.
//
// The stages run in a fixed order because they are order-dependent:
// identifier rewriting must happen before duplicate collapse, since
// collapse groups rows by the rewritten identifier value. Each stage is
// a pure Table -> Table transform; the driver reports row-count deltas
// per stage through a caller-supplied reporter, structured logs, and
// optional OpenTelemetry spans and counters.
package cleaning
