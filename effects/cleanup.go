package effects

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

var (
	//go:embed defaults/remove.txt
	defaultRemove string

	//go:embed defaults/replace.txt
	defaultReplace string
)

// Replacement rewrites every occurrence of Old with New.
type Replacement struct {
	Old, New string
}

type grammarRule struct {
	pattern *regexp.Regexp
	repl    string
}

// "one ... cards" and friends become singular. The narrow forms run
// before the lazy catch-all.
var grammarRules = func() []grammarRule {
	var rules []grammarRule
	for _, subject := range []string{`\w+`, `\w+ \d+`, `.+?`} {
		for _, noun := range []string{"card", "spell", "creature", "target"} {
			rules = append(rules, grammarRule{
				pattern: regexp.MustCompile(`one (` + subject + `) ` + noun + `s\b`),
				repl:    "one ${1} " + noun,
			})
		}
	}
	return rules
}()

// Cleaner tidies expanded effect sentences: it drops duplicates and
// sentences containing unwanted phrases, fixes plurals and sorts.
type Cleaner struct {
	remove       []string
	replacements []Replacement
}

// NewCleaner creates a cleaner from explicit phrase lists.
func NewCleaner(remove []string, replacements []Replacement) *Cleaner {
	return &Cleaner{remove: remove, replacements: replacements}
}

// DefaultCleaner uses the built-in phrase lists.
func DefaultCleaner() *Cleaner {
	replacements, err := ParseReplacements(defaultReplace)
	if err != nil {
		panic(fmt.Sprintf("effects: built-in replacements: %v", err))
	}
	return NewCleaner(ParseRemove(defaultRemove), replacements)
}

// LoadCleaner reads phrase lists from files. An empty path keeps the
// built-in list for that half.
func LoadCleaner(removePath, replacePath string) (*Cleaner, error) {
	c := DefaultCleaner()
	if removePath != "" {
		data, err := os.ReadFile(removePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read remove phrases: %w", err)
		}
		c.remove = ParseRemove(string(data))
	}
	if replacePath != "" {
		data, err := os.ReadFile(replacePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read phrase replacements: %w", err)
		}
		if c.replacements, err = ParseReplacements(string(data)); err != nil {
			return nil, fmt.Errorf("%s: %w", replacePath, err)
		}
	}
	return c, nil
}

// ParseRemove reads one phrase per line. Blank lines and lines starting
// with # are skipped.
func ParseRemove(data string) []string {
	var phrases []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		phrases = append(phrases, line)
	}
	return phrases
}

// ParseReplacements reads one "old;new" pair per line, in order.
func ParseReplacements(data string) ([]Replacement, error) {
	var out []Replacement
	for i, line := range strings.Split(data, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		old, repl, ok := strings.Cut(line, ";")
		if !ok || old == "" {
			return nil, fmt.Errorf("line %d: want old;new, got %q", i+1, line)
		}
		out = append(out, Replacement{Old: old, New: repl})
	}
	return out, nil
}

// Clean runs the whole pipeline over lines.
func (c *Cleaner) Clean(lines []string) []string {
	var kept []string
	for _, line := range dedupe(lines) {
		line = strings.ReplaceAll(line, "  ", " ")
		if c.unwanted(line) {
			continue
		}
		kept = append(kept, c.Rewrite(strings.TrimSpace(line)))
	}

	// rewrites can make distinct lines equal
	kept = dedupe(kept)
	sort.Strings(kept)
	return kept
}

// Rewrite applies the replacements in order, then the grammar rules.
func (c *Cleaner) Rewrite(line string) string {
	for _, r := range c.replacements {
		line = strings.ReplaceAll(line, r.Old, r.New)
	}
	for _, rule := range grammarRules {
		line = rule.pattern.ReplaceAllString(line, rule.repl)
	}
	return line
}

func (c *Cleaner) unwanted(line string) bool {
	for _, phrase := range c.remove {
		if strings.Contains(line, phrase) {
			return true
		}
	}
	return false
}

func dedupe(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}
