package core

import "time"

// Reserved metadata keys attached to every document by the row loader.
const (
	// MetaSource holds the base name of the source file.
	MetaSource = "source"
	// MetaRowIndex holds the zero-based position of the row in its file.
	MetaRowIndex = "row_index"
	// MetaFilePath holds the source file path as discovered.
	MetaFilePath = "file_path"

	// MetaColumnPrefix prefixes the metadata key of a source column whose
	// name collides with a reserved key, so the reserved value survives.
	MetaColumnPrefix = "column_"
)

// IsReservedMetaKey reports whether key is one of the reserved metadata keys.
func IsReservedMetaKey(key string) bool {
	switch key {
	case MetaSource, MetaRowIndex, MetaFilePath:
		return true
	}
	return false
}

// Document is one unit of ingestible content: a text body derived from one
// source row plus the metadata record describing where the row came from.
type Document struct {
	Body     string
	Metadata map[string]any
}

// FileResult records the outcome of ingesting a single source file.
type FileResult struct {
	File       string // base name of the source file
	Path       string // full path as discovered
	Collection string // resolved collection name, empty if routing never ran
	Documents  int    // documents submitted to the collection
	Err        error  // nil on success
}

// Failed reports whether ingestion of this file ended in an error.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// Report accumulates per-file outcomes across one pipeline run. A single
// file's failure is recorded here and never aborts the run.
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []FileResult
}

// Add appends one file outcome to the report.
func (r *Report) Add(result FileResult) {
	r.Results = append(r.Results, result)
}

// Succeeded returns the number of files ingested without error.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if !res.Failed() {
			n++
		}
	}
	return n
}

// Failed returns the number of files whose ingestion ended in an error.
func (r *Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// TotalDocuments returns the number of documents submitted across all files.
func (r *Report) TotalDocuments() int {
	n := 0
	for _, res := range r.Results {
		n += res.Documents
	}
	return n
}

// Duration returns the wall-clock time the run took.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
