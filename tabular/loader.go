// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/tabvec/core"
)

// ErrNoHeader indicates the file has no header row to name columns.
var ErrNoHeader = errors.New("file has no header row")

// LoadDocuments reads a CSV file and produces one document per data row,
// preserving row order.
//
// The first row names the columns. Each data row renders to a body of
// "col1: val1 | col2: val2 | ..." in the file's column order, plus a
// metadata record carrying the reserved provenance keys and every column
// value. A column whose name collides with a reserved key is stored under
// core.MetaColumnPrefix + name so the provenance fields stay authoritative.
//
// A file with a header but no data rows yields an empty slice and no error.
// A file that cannot be parsed as CSV, including an empty file with no
// header row, returns an error. Rows whose field count differs from the
// header are parse errors, not skipped rows.
func LoadDocuments(path string) ([]core.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return readDocuments(f, path)
}

func readDocuments(r io.Reader, path string) ([]core.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("parse %s: %w", path, ErrNoHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	source := filepath.Base(path)

	var docs []core.Document
	for rowIndex := 0; ; rowIndex++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s row %d: %w", path, rowIndex, err)
		}

		docs = append(docs, buildDocument(header, row, source, path, rowIndex))
	}

	return docs, nil
}

// buildDocument renders one row into a document. Body rendering is purely
// positional so identical input always produces identical bytes.
func buildDocument(header, row []string, source, path string, rowIndex int) core.Document {
	var body strings.Builder
	metadata := map[string]any{
		core.MetaSource:   source,
		core.MetaRowIndex: rowIndex,
		core.MetaFilePath: path,
	}

	for i, column := range header {
		value := ""
		if i < len(row) {
			value = row[i]
		}

		if i > 0 {
			body.WriteString(" | ")
		}
		body.WriteString(column)
		body.WriteString(": ")
		body.WriteString(value)

		key := column
		if core.IsReservedMetaKey(column) {
			key = core.MetaColumnPrefix + column
		}
		metadata[key] = value
	}

	return core.Document{Body: body.String(), Metadata: metadata}
}
