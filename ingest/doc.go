// Package ingest provides pipeline orchestration for loading tabular files
// into vector collections.
//
// The Pipeline type manages the ingestion workflow for a directory of CSV
// files, including:
//   - Discovering input files in a deterministic order
//   - Loading each file's rows into documents
//   - Routing documents to a target collection (shared or per-file)
//   - Submitting documents in fixed-size batches
//
// Files are processed strictly sequentially. A failure in one file is
// recorded in the run report and does not affect the remaining files.
package ingest
