package placeholder

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// FileExtension is appended to a placeholder name to find its value file.
const FileExtension = ".txt"

// Expander resolves placeholders against a directory of value files.
type Expander struct {
	fsys   fs.FS
	logger *zap.Logger
}

// Option configures an Expander.
type Option func(*Expander)

// WithFS replaces the placeholder directory with an arbitrary file system.
func WithFS(fsys fs.FS) Option {
	return func(e *Expander) {
		e.fsys = fsys
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Expander) {
		e.logger = logger
	}
}

// New creates an Expander reading placeholder files from dir.
func New(dir string, opts ...Option) *Expander {
	e := &Expander{
		fsys:   os.DirFS(dir),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolve expands the placeholder named name from its own directory.
func Resolve(dir, name string) []string {
	return New(dir).Resolve(name, nil)
}

// Expand expands every placeholder of sentence from dir.
func Expand(dir, sentence string) []string {
	return New(dir).Expand(sentence, nil)
}

// Resolve returns the candidate values of a placeholder, expanding nested
// placeholders inside the values. Values keep file order and duplicates.
func (e *Expander) Resolve(name string, visited *Visited) []string {
	if visited.Has(name) {
		e.logger.Debug("placeholder cycle", zap.String("name", name), zap.Strings("path", visited.Names()))
		return []string{Unresolved(name)}
	}

	raw, err := e.readValues(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			e.logger.Warn("failed to read placeholder", zap.String("name", name), zap.Error(err))
		}
		return []string{Unresolved(name)}
	}
	if len(raw) == 0 {
		return []string{Unresolved(name)}
	}

	inner := visited.With(name)
	var resolved []string
	for _, value := range raw {
		if HasPlaceholder(value) {
			resolved = append(resolved, e.Expand(value, inner)...)
			continue
		}
		resolved = append(resolved, value)
	}
	return resolved
}

// Expand returns every sentence produced by substituting each distinct
// token with each of its values. The result is the Cartesian product over
// tokens in order of first appearance.
func (e *Expander) Expand(sentence string, visited *Visited) []string {
	tokens := Tokens(sentence)
	if len(tokens) == 0 {
		return []string{sentence}
	}

	type shiftKey struct {
		base   string
		offset int
	}

	base := make(map[string][]string)
	shifted := make(map[shiftKey][]string)
	columns := make([][]string, len(tokens))
	for i, tok := range tokens {
		values, ok := base[tok.Base]
		if !ok {
			values = e.Resolve(tok.Base, visited)
			base[tok.Base] = values
		}

		key := shiftKey{tok.Base, tok.Offset}
		col, ok := shifted[key]
		if !ok {
			col = shift(values, tok.Offset)
			shifted[key] = col
		}
		columns[i] = col
	}

	return product(sentence, tokens, columns)
}

// ExpandAll expands each sentence from an empty visited set and
// concatenates the results.
func (e *Expander) ExpandAll(sentences []string) []string {
	var out []string
	for _, s := range sentences {
		out = append(out, e.Expand(s, nil)...)
	}
	return out
}

func (e *Expander) readValues(name string) ([]string, error) {
	path := name + FileExtension
	if !fs.ValidPath(path) {
		return nil, fs.ErrNotExist
	}

	data, err := fs.ReadFile(e.fsys, path)
	if err != nil {
		return nil, err
	}

	var values []string
	for _, line := range strings.Split(string(data), "\n") {
		value := strings.ReplaceAll(strings.TrimSpace(line), "_", "")
		if value != "" {
			values = append(values, value)
		}
	}
	return values, nil
}

// shift adds offset to every integer value; other values pass through.
func shift(values []string, offset int) []string {
	if offset == 0 {
		return values
	}
	out := make([]string, len(values))
	for i, v := range values {
		if n, err := strconv.Atoi(v); err == nil {
			out[i] = strconv.Itoa(n + offset)
		} else {
			out[i] = v
		}
	}
	return out
}

// product substitutes every combination of column values into sentence.
// Each combination is applied in a single pass so substituted text is
// never rescanned for tokens.
func product(sentence string, tokens []Token, columns [][]string) []string {
	total := 1
	for _, col := range columns {
		total *= len(col)
	}
	if total == 0 {
		return nil
	}

	out := make([]string, 0, total)
	idx := make([]int, len(columns))
	pairs := make([]string, 2*len(tokens))
	for {
		for i, tok := range tokens {
			pairs[2*i] = tok.Literal()
			pairs[2*i+1] = columns[i][idx[i]]
		}
		out = append(out, strings.NewReplacer(pairs...).Replace(sentence))

		// rightmost column varies fastest
		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(columns[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}
