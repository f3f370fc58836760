package matching

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/ttcg/types"
)

// Wildcard matches any value, including an empty one.
const Wildcard = "*"

// ErrInvalidFilter is returned for filters that cannot be parsed.
var ErrInvalidFilter = errors.New("invalid card filter")

// fields maps filter names to the card values they compare against. A card
// matches a field when any of its values equals the filter value.
var fields = map[string]func(types.Card) []string{
	"name":    func(c types.Card) []string { return []string{c.Name} },
	"type":    func(c types.Card) []string { return []string{c.Type} },
	"subtype": func(c types.Card) []string { return c.Subtypes },
	"level":   func(c types.Card) []string { return []string{strconv.Itoa(c.Level)} },
	"rarity":  func(c types.Card) []string { return []string{c.Rarity} },
	"serial":  func(c types.Card) []string { return []string{c.Serial} },
	"style":   func(c types.Card) []string { return []string{c.Effect1Style, c.Effect2Style} },
	"kind": func(c types.Card) []string {
		if c.IsSpell() {
			return []string{"spell"}
		}
		return []string{"unit"}
	},
}

// Filter constrains one card field.
type Filter struct {
	Field string
	Value string
}

// Fields returns the filterable field names, sorted.
func Fields() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseFilter reads a "field=value" expression.
func ParseFilter(expr string) (Filter, error) {
	field, value, ok := strings.Cut(expr, "=")
	if !ok {
		return Filter{}, fmt.Errorf("%w: %q is not field=value", ErrInvalidFilter, expr)
	}
	field = strings.ToLower(strings.TrimSpace(field))
	if _, known := fields[field]; !known {
		return Filter{}, fmt.Errorf("%w: unknown field %q (want one of %s)", ErrInvalidFilter, field, strings.Join(Fields(), ", "))
	}
	return Filter{Field: field, Value: strings.TrimSpace(value)}, nil
}

// CardMatcher selects cards matching every one of its filters. Values
// compare case-insensitively.
type CardMatcher struct {
	filters []Filter
}

// NewCardMatcher parses the given filter expressions.
func NewCardMatcher(exprs ...string) (*CardMatcher, error) {
	m := &CardMatcher{}
	for _, expr := range exprs {
		f, err := ParseFilter(expr)
		if err != nil {
			return nil, err
		}
		m.filters = append(m.filters, f)
	}
	return m, nil
}

// Matches checks if a card matches all filters. No filters means every
// card matches.
func (m *CardMatcher) Matches(card types.Card) bool {
	for _, f := range m.filters {
		if f.Value == Wildcard {
			continue
		}
		if !anyEqual(fields[f.Field](card), f.Value) {
			return false
		}
	}
	return true
}

// Select returns the matching cards in their original order.
func (m *CardMatcher) Select(cards []types.Card) []types.Card {
	var out []types.Card
	for _, c := range cards {
		if m.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

func anyEqual(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), want) {
			return true
		}
	}
	return false
}
