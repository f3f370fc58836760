package effects

import (
	"fmt"
	"sort"
	"strings"
)

// LintReport lists effects whose tags make them unusable.
type LintReport struct {
	// NoLevel holds effects with every LEVEL_* column false
	NoLevel []string
	// NoKind holds effects with both UNIT and SPELL false
	NoKind []string
}

// Unique returns every flagged effect once, sorted.
func (r LintReport) Unique() []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range [][]string{r.NoLevel, r.NoKind} {
		for _, e := range list {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Lint flags rows that can never be picked for a card.
func Lint(t *Table) (LintReport, error) {
	var missing []string
	for _, c := range []string{NameColumn, "UNIT", "SPELL"} {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	var levels []string
	for _, h := range t.Header {
		if strings.HasPrefix(columnKey(h), "LEVEL") {
			levels = append(levels, h)
		}
	}
	if len(levels) == 0 {
		missing = append(missing, "LEVEL_*")
	}
	if len(missing) > 0 {
		return LintReport{}, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var report LintReport
	for i := range t.Rows {
		name := t.Value(i, NameColumn)

		allFalse := true
		for _, c := range levels {
			if !isFalse(t.Value(i, c)) {
				allFalse = false
				break
			}
		}
		if allFalse {
			report.NoLevel = append(report.NoLevel, name)
		}

		if isFalse(t.Value(i, "UNIT")) && isFalse(t.Value(i, "SPELL")) {
			report.NoKind = append(report.NoKind, name)
		}
	}
	return report, nil
}

func isFalse(v string) bool {
	return strings.EqualFold(v, "false")
}
