package effects

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// NameColumn holds the effect template text.
const NameColumn = "EFFECTNAME"

var (
	// ErrMissingColumns is returned when a filter or lint names columns
	// the table does not have.
	ErrMissingColumns = errors.New("columns not found")

	// ErrNoMatches is returned when filtering leaves nothing.
	ErrNoMatches = errors.New("no matching effects")
)

// Table is the semicolon delimited effects table: the effect text in the
// first column followed by boolean tag columns.
type Table struct {
	Header  []string
	Rows    [][]string
	columns map[string]int
}

// LoadTable reads an effects table from path.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open effects table: %w", err)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadTable decodes an effects table.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse effects table: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("effects table is empty")
	}

	t := &Table{Header: records[0], columns: make(map[string]int)}
	for i, name := range t.Header {
		t.columns[columnKey(name)] = i
	}
	for _, row := range records[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// HasColumn reports whether the table has a column, ignoring case.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[columnKey(name)]
	return ok
}

// Value returns a cell by row index and column name.
func (t *Table) Value(row int, column string) string {
	i, ok := t.columns[columnKey(column)]
	if !ok || i >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][i])
}

// Effects returns the first column of every row.
func (t *Table) Effects() []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = strings.TrimSpace(row[0])
	}
	return out
}

// Filter returns the effects whose named columns are all "true", ignoring
// case.
func (t *Table) Filter(columns ...string) ([]string, error) {
	var missing []string
	for _, c := range columns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var out []string
	for i, row := range t.Rows {
		if t.allTrue(i, columns) {
			out = append(out, strings.TrimSpace(row[0]))
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no rows where %s are all true", ErrNoMatches, strings.Join(columns, ", "))
	}
	return out, nil
}

func (t *Table) allTrue(row int, columns []string) bool {
	for _, c := range columns {
		if !strings.EqualFold(t.Value(row, c), "true") {
			return false
		}
	}
	return true
}

func columnKey(name string) string {
	return strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}
