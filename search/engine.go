package search

import (
	"fmt"
	"sort"
	"strings"
)

// Engine implements the Searcher interface
type Engine struct {
	provider TextProvider
}

// NewEngine creates a new search engine over the provider's texts
func NewEngine(provider TextProvider) *Engine {
	return &Engine{
		provider: provider,
	}
}

// Search returns every text that contains an include term and no omit
// term, highest score first. Ties keep provider order.
func (e *Engine) Search(options Options) ([]Result, error) {
	texts, err := e.provider.Texts()
	if err != nil {
		return nil, fmt.Errorf("failed to get texts: %w", err)
	}

	include := normalizeTerms(options.Include, options.CaseSensitive)
	omit := normalizeTerms(options.Omit, options.CaseSensitive)

	var results []Result
	for i, text := range texts {
		if result := e.searchText(text, include, omit, options); result != nil {
			result.Position = i
			results = append(results, *result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if options.MaxResults != nil && *options.MaxResults > 0 && len(results) > *options.MaxResults {
		results = results[:*options.MaxResults]
	}
	return results, nil
}

// Filter returns the texts Search would match, in their original order.
func Filter(texts []string, options Options) []string {
	options.MaxResults = nil
	results, _ := NewEngine(Texts(texts)).Search(options)
	sort.Slice(results, func(i, j int) bool {
		return results[i].Position < results[j].Position
	})

	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Text
	}
	return out
}

// Match reports whether text contains an include term (or include is empty)
// and no omit term, ignoring case.
func Match(text string, include, omit []string) bool {
	return len(Filter([]string{text}, Options{Include: include, Omit: omit})) == 1
}

func (e *Engine) searchText(text string, include, omit []string, options Options) *Result {
	searchText := text
	if !options.CaseSensitive {
		searchText = strings.ToLower(text)
	}

	for _, term := range omit {
		if strings.Contains(searchText, term) {
			return nil
		}
	}

	result := &Result{Text: text, Highlighted: text}
	if len(include) == 0 {
		result.Score = 0.5
		return result
	}

	for _, term := range include {
		if !strings.Contains(searchText, term) {
			continue
		}
		result.MatchedTerms = append(result.MatchedTerms, term)
		if score := calculateScore(searchText, term); score > result.Score {
			result.Score = score
		}
	}
	if len(result.MatchedTerms) == 0 {
		return nil
	}

	if options.EnableHighlight {
		start, end := options.HighlightStartMarker, options.HighlightEndMarker
		if start == "" {
			start = "**"
		}
		if end == "" {
			end = "**"
		}
		result.Highlighted = highlight(text, searchText, result.MatchedTerms, start, end)
	}
	return result
}

// calculateScore computes a relevance score for a match
func calculateScore(text, term string) float64 {
	score := 0.5

	// Boost if match is at the beginning
	if strings.HasPrefix(text, term) {
		score += 0.2
	}

	// Boost whole-word matches
	if i := strings.Index(text, term); isBoundary(text, i-1) && isBoundary(text, i+len(term)) {
		score += 0.2
	}

	// Boost if the term takes up a large portion of the text
	if coverage := float64(len(term)) / float64(len(text)); coverage > 0.5 {
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func isBoundary(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	c := text[i]
	return !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_')
}

// highlight wraps every non-overlapping occurrence of the terms. searchText
// is text folded for matching and has the same byte offsets.
func highlight(text, searchText string, terms []string, startMarker, endMarker string) string {
	if len(searchText) != len(text) {
		return text
	}

	marked := make([]bool, len(text))
	for _, term := range terms {
		for i := 0; i+len(term) <= len(searchText); {
			j := strings.Index(searchText[i:], term)
			if j < 0 {
				break
			}
			for k := i + j; k < i+j+len(term); k++ {
				marked[k] = true
			}
			i += j + len(term)
		}
	}

	var builder strings.Builder
	in := false
	for i := 0; i < len(text); i++ {
		if marked[i] != in {
			if marked[i] {
				builder.WriteString(startMarker)
			} else {
				builder.WriteString(endMarker)
			}
			in = marked[i]
		}
		builder.WriteByte(text[i])
	}
	if in {
		builder.WriteString(endMarker)
	}
	return builder.String()
}

func normalizeTerms(terms []string, caseSensitive bool) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if term == "" {
			continue
		}
		if !caseSensitive {
			term = strings.ToLower(term)
		}
		out = append(out, term)
	}
	return out
}
