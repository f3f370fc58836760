package effects

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/arthur-debert/ttcg/placeholder"
	"github.com/arthur-debert/ttcg/search"
	"go.uber.org/zap"
)

const (
	// SuggestPreferred is how many suggestions may come from effects that
	// mention the card's subtypes.
	SuggestPreferred = 10

	// SuggestTotal is the default number of suggestions.
	SuggestTotal = 18
)

// ErrNotEnoughEffects is returned when there are too few effects to pick
// from.
var ErrNotEnoughEffects = errors.New("not enough effects")

// Picker draws random effects. Include and omit terms may carry
// placeholders, which are expanded before matching.
type Picker struct {
	expander *placeholder.Expander
	rng      *rand.Rand
	logger   *zap.Logger
}

// PickerOption configures a Picker.
type PickerOption func(*Picker)

// WithRand sets the random source.
func WithRand(rng *rand.Rand) PickerOption {
	return func(p *Picker) {
		p.rng = rng
	}
}

// WithPickerLogger sets the picker logger.
func WithPickerLogger(logger *zap.Logger) PickerOption {
	return func(p *Picker) {
		p.logger = logger
	}
}

// NewPicker creates a picker. A nil expander matches terms literally.
func NewPicker(expander *placeholder.Expander, opts ...PickerOption) *Picker {
	p := &Picker{
		expander: expander,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ExpandTerms expands placeholders in search terms.
func (p *Picker) ExpandTerms(terms []string) []string {
	if p.expander == nil {
		return append([]string(nil), terms...)
	}
	return p.expander.ExpandAll(terms)
}

// Candidates returns the values containing at least one include term and
// no omit term, ignoring case. Empty include keeps every value.
func (p *Picker) Candidates(values, include, omit []string) ([]string, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: need at least one effect", ErrNotEnoughEffects)
	}

	opts := search.Options{Include: p.ExpandTerms(include), Omit: p.ExpandTerms(omit)}
	matched := search.Filter(values, opts)
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: include %s, omit %s", ErrNoMatches,
			strings.Join(opts.Include, "|"), strings.Join(opts.Omit, "|"))
	}
	p.logger.Debug("effect candidates",
		zap.Int("values", len(values)),
		zap.Int("matched", len(matched)),
		zap.Strings("include", opts.Include),
		zap.Strings("omit", opts.Omit))
	return matched, nil
}

// Pick returns one random candidate.
func (p *Picker) Pick(values, include, omit []string) (string, error) {
	candidates, err := p.Candidates(values, include, omit)
	if err != nil {
		return "", err
	}
	return candidates[p.rng.IntN(len(candidates))], nil
}

// Pairs returns up to n random pairs, never more than len(values)/2. The
// two members of a pair are drawn from different positions.
func (p *Picker) Pairs(values []string, n int) ([][2]string, error) {
	if len(values) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 effects to form pairs", ErrNotEnoughEffects)
	}

	count := min(n, len(values)/2)
	pairs := make([][2]string, 0, count)
	for i := 0; i < count; i++ {
		a := p.rng.IntN(len(values))
		b := p.rng.IntN(len(values) - 1)
		if b >= a {
			b++
		}
		pairs = append(pairs, [2]string{values[a], values[b]})
	}
	return pairs, nil
}

// Suggest returns up to total distinct effects for a card. Up to
// SuggestPreferred of them mention one of the subtypes; the rest are drawn
// from all values.
func (p *Picker) Suggest(values, subtypes []string, total int) []string {
	distinct := dedupe(values)
	used := make(map[string]bool)
	var out []string

	take := func(pool []string, limit int) {
		for _, i := range p.rng.Perm(len(pool)) {
			if len(out) >= limit {
				return
			}
			if v := pool[i]; !used[v] {
				used[v] = true
				out = append(out, v)
			}
		}
	}

	if len(subtypes) > 0 {
		preferred := search.Filter(distinct, search.Options{Include: p.ExpandTerms(subtypes)})
		take(preferred, min(SuggestPreferred, total))
	}
	take(distinct, total)
	return out
}
