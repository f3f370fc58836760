package search

// Options configures a search over effect texts.
type Options struct {
	// Include keeps texts containing at least one of these terms.
	// Empty keeps every text.
	Include []string

	// Omit drops texts containing any of these terms.
	Omit []string

	// CaseSensitive controls whether terms are matched case-sensitively
	CaseSensitive bool

	// EnableHighlight fills Result.Highlighted with marked include terms
	EnableHighlight bool

	// Highlight markers, "**" when empty
	HighlightStartMarker string
	HighlightEndMarker   string

	// MaxResults limits the number of results; nil means no limit
	MaxResults *int
}

// Result is one matching text.
type Result struct {
	// Text is the matched text as provided
	Text string

	// Position is the text's index in the provider's list
	Position int

	// Score represents match relevance (0.0 to 1.0, higher is better)
	Score float64

	// MatchedTerms lists the include terms found in the text
	MatchedTerms []string

	// Highlighted is Text with include matches wrapped in markers
	Highlighted string
}

// TextProvider supplies the texts to search.
type TextProvider interface {
	Texts() ([]string, error)
}

// Texts is a fixed TextProvider.
type Texts []string

// Texts implements TextProvider.
func (t Texts) Texts() ([]string, error) {
	return t, nil
}

// Searcher defines the main search interface
type Searcher interface {
	// Search returns matching texts ranked by score
	Search(options Options) ([]Result, error)
}
