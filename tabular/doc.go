// Package tabular converts tabular files into documents for ingestion.
//
// The loader treats the first row of a CSV file as the header naming its
// columns and turns every following row into one core.Document: a
// pipe-joined "column: value" body in the file's column order plus a
// metadata record with the file's provenance and all column values.
package tabular
