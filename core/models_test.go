package core

import (
	"errors"
	"testing"
	"time"
)

func TestIsReservedMetaKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{name: "source", key: MetaSource, want: true},
		{name: "row_index", key: MetaRowIndex, want: true},
		{name: "file_path", key: MetaFilePath, want: true},
		{name: "ordinary column", key: "price", want: false},
		{name: "prefixed column", key: MetaColumnPrefix + "source", want: false},
		{name: "empty", key: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReservedMetaKey(tt.key); got != tt.want {
				t.Errorf("IsReservedMetaKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestFileResult_Failed(t *testing.T) {
	ok := FileResult{File: "a.csv", Collection: "a", Documents: 2}
	if ok.Failed() {
		t.Errorf("FileResult.Failed() = true for a successful result")
	}

	bad := FileResult{File: "b.csv", Err: errors.New("parse failure")}
	if !bad.Failed() {
		t.Errorf("FileResult.Failed() = false for a failed result")
	}
}

func TestReport_Counters(t *testing.T) {
	var report Report
	report.Add(FileResult{File: "a.csv", Collection: "a", Documents: 2})
	report.Add(FileResult{File: "b.csv", Collection: "b", Documents: 3})
	report.Add(FileResult{File: "c.csv", Err: errors.New("parse failure")})

	if got := report.Succeeded(); got != 2 {
		t.Errorf("Report.Succeeded() = %d, want 2", got)
	}
	if got := report.Failed(); got != 1 {
		t.Errorf("Report.Failed() = %d, want 1", got)
	}
	if got := report.TotalDocuments(); got != 5 {
		t.Errorf("Report.TotalDocuments() = %d, want 5", got)
	}
}

func TestReport_Empty(t *testing.T) {
	var report Report

	if got := report.Succeeded(); got != 0 {
		t.Errorf("Report.Succeeded() = %d, want 0", got)
	}
	if got := report.Failed(); got != 0 {
		t.Errorf("Report.Failed() = %d, want 0", got)
	}
	if got := report.TotalDocuments(); got != 0 {
		t.Errorf("Report.TotalDocuments() = %d, want 0", got)
	}
}

func TestReport_Duration(t *testing.T) {
	start := time.Now()
	report := Report{
		StartedAt:  start,
		FinishedAt: start.Add(3 * time.Second),
	}

	if got := report.Duration(); got != 3*time.Second {
		t.Errorf("Report.Duration() = %v, want 3s", got)
	}
}
