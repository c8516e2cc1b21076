package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/medwatch/claimgraph/internal/dataset"
)

type exportDoc struct {
	QueryName string      `json:"query_name"`
	RowCount  int         `json:"row_count"`
	Columns   []string    `json:"columns"`
	Data      []resultRow `json:"data"`
}

// resultRow marshals cells in header order instead of Go's sorted map
// order, so the JSON objects read the same as the CSV they came from.
type resultRow struct {
	columns []string
	values  []any
}

func (r resultRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ConvertResult renders one query result table as an indented JSON
// document named after the file it came from.
func ConvertResult(name string, tbl *dataset.Table) ([]byte, error) {
	doc := exportDoc{
		QueryName: name,
		RowCount:  len(tbl.Rows),
		Columns:   tbl.Columns,
		Data:      make([]resultRow, 0, len(tbl.Rows)),
	}
	for _, row := range tbl.Rows {
		values := make([]any, len(tbl.Columns))
		for i, col := range tbl.Columns {
			values[i] = coerceCell(row[col])
		}
		doc.Data = append(doc.Data, resultRow{columns: tbl.Columns, values: values})
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("report: encode %s: %w", name, err)
	}
	return append(out, '\n'), nil
}

// coerceCell recovers the typed value a CSV cell was written from. Empty
// cells come back as null, matching how absent properties round-trip.
func coerceCell(s string) any {
	if s == "" {
		return nil
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	if strings.HasPrefix(s, "[") && json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}
	return s
}
