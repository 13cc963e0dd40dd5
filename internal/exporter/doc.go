// Package exporter persists a cleaned intensity matrix as a delimited
// text file: header row first (protein, then intensity columns in their
// original order), one row per surviving protein, nulls as empty cells.
package exporter
