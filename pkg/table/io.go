package table

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	errs "github.com/matzehuels/labutil/pkg/errors"
)

type jsonTable struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// ReadCSV decodes a CSV document whose first record is the header.
// Cells are typed with [Parse].
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return Table{}, errs.New(errs.ErrCodeInvalidInput, "csv: missing header")
	}
	if err != nil {
		return Table{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "csv header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "csv record %d", len(rows)+1)
		}
		row := make(Row, len(rec))
		for i, cell := range rec {
			row[i] = Parse(cell)
		}
		rows = append(rows, row)
	}
	return New(header, rows)
}

// WriteCSV encodes t as CSV with a header record.
func WriteCSV(t Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i, v := range r {
			rec[i] = Format(v)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadJSON decodes a table from r.
//
// The input must be a JSON object with "columns" and "rows" arrays:
//
//	{
//	  "columns": ["Offset", "X", "Y"],
//	  "rows": [[0, 1, 10], [0, 2, 20]]
//	}
//
// Whole JSON numbers decode as int64, others as float64.
func ReadJSON(r io.Reader) (Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var data jsonTable
	if err := dec.Decode(&data); err != nil {
		return Table{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode")
	}

	rows := make([]Row, len(data.Rows))
	for i, r := range data.Rows {
		row := make(Row, len(r))
		for j, v := range r {
			row[j] = fromJSON(v)
		}
		rows[i] = row
	}
	return New(data.Columns, rows)
}

func fromJSON(v any) Value {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	f, _ := n.Float64()
	return f
}

// WriteJSON encodes t as an indented JSON object readable by [ReadJSON].
func WriteJSON(t Table, w io.Writer) error {
	out := jsonTable{Columns: t.Columns, Rows: make([][]any, len(t.Rows))}
	for i, r := range t.Rows {
		out.Rows[i] = r
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Load reads a table from a .csv or .json file.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Table{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return Table{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var t Table
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		t, err = ReadCSV(f)
	case ".json":
		t, err = ReadJSON(f)
	default:
		return Table{}, errs.New(errs.ErrCodeUnsupported, "unsupported table format %q", ext)
	}
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Save writes t to a .csv or .json file.
func Save(t Table, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".json" {
		return errs.New(errs.ErrCodeUnsupported, "unsupported table format %q", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if ext == ".csv" {
		return WriteCSV(t, f)
	}
	return WriteJSON(t, f)
}
