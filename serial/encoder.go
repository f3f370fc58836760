package serial

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/ttcg/combos"
	"github.com/arthur-debert/ttcg/types"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultMaxSubsetSize caps the type+subtype combinations a serial can
// name: one type and up to two subtypes.
const DefaultMaxSubsetSize = 3

var (
	// ErrSerialSpaceExhausted is returned when every pad digit is already
	// taken for a base.
	ErrSerialSpaceExhausted = errors.New("serial number space exhausted")

	// ErrInvalidAttribute is returned when a card attribute cannot be
	// encoded.
	ErrInvalidAttribute = errors.New("invalid card attribute")
)

// Mode selects how the pad digit is chosen.
type Mode int

const (
	// ModeCreate mints a new serial: the first pad not yet taken.
	ModeCreate Mode = iota
	// ModeOverwrite re-encodes a card that has already been saved and
	// keeps its existing serial when the base is unchanged.
	ModeOverwrite
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeOverwrite:
		return "overwrite"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Taken reports whether a serial has already been issued.
type Taken interface {
	Has(serial string) bool
}

// TakenSet is an in-memory Taken.
type TakenSet map[string]struct{}

// NewTakenSet returns a set holding serials.
func NewTakenSet(serials ...string) TakenSet {
	s := make(TakenSet, len(serials))
	for _, serial := range serials {
		s.Add(serial)
	}
	return s
}

// Has implements Taken.
func (s TakenSet) Has(serial string) bool {
	_, ok := s[serial]
	return ok
}

// Add marks serial as taken.
func (s TakenSet) Add(serial string) {
	s[serial] = struct{}{}
}

// Encoder turns cards into serial numbers. It is pure: it never records
// the serials it returns.
type Encoder struct {
	catalog       types.Catalog
	cache         *combos.Cache
	alphabet      Alphabet
	maxSubsetSize int
	logger        *zap.Logger
	upper         cases.Caser
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithAlphabet sets the digit alphabet.
func WithAlphabet(a Alphabet) Option {
	return func(e *Encoder) {
		e.alphabet = a
	}
}

// WithMaxSubsetSize sets the largest type+subtype combination.
func WithMaxSubsetSize(n int) Option {
	return func(e *Encoder) {
		e.maxSubsetSize = n
	}
}

// WithLogger sets the encoder logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Encoder) {
		e.logger = logger
	}
}

// NewEncoder creates an encoder for catalog. Combination indexes are taken
// from cache, which is usually shared with the rest of the session; a nil
// cache gets a private one.
func NewEncoder(catalog types.Catalog, cache *combos.Cache, opts ...Option) *Encoder {
	if cache == nil {
		cache = combos.NewCache()
	}
	e := &Encoder{
		catalog:       catalog,
		cache:         cache,
		alphabet:      Default(),
		maxSubsetSize: DefaultMaxSubsetSize,
		logger:        zap.NewNop(),
		upper:         cases.Upper(language.Und),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Alphabet returns the encoder's digit alphabet.
func (e *Encoder) Alphabet() Alphabet {
	return e.alphabet
}

// Request returns the enumeration the combination code indexes into.
func (e *Encoder) Request() combos.Request {
	return combos.Request{
		Labels:  e.catalog.Labels(),
		Primary: e.catalog.Types,
		MaxSize: e.maxSubsetSize,
	}
}

// Index returns the combination index, building it on first use.
func (e *Encoder) Index() *combos.Index {
	return e.cache.Index(e.Request())
}

// CodeWidth returns the fixed width of the combination code: the width of
// the largest index.
func (e *Encoder) CodeWidth() int {
	n := e.Index().Len()
	if n == 0 {
		return 1
	}
	return e.alphabet.Width(n - 1)
}

// Length returns the length in characters of a full serial, pad included.
func (e *Encoder) Length() int {
	return 10 + e.CodeWidth()
}

// Base encodes every card field except the pad digit.
func (e *Encoder) Base(card types.Card) (string, error) {
	var b strings.Builder

	initial, err := e.initial(card.Name)
	if err != nil {
		return "", err
	}
	b.WriteString(initial)

	if card.Level < types.MinLevel || card.Level > types.MaxLevel {
		return "", fmt.Errorf("%w: level %d outside [%d, %d]", ErrInvalidAttribute, card.Level, types.MinLevel, types.MaxLevel)
	}
	b.WriteString(e.alphabet.Digit(card.Level))

	code, err := e.combination(card)
	if err != nil {
		return "", err
	}
	b.WriteString(code)

	spell := card.IsSpell()
	for _, stat := range []struct{ name, cell string }{
		{"attack", card.Attack},
		{"defense", card.Defense},
	} {
		bucket, err := StatBucket(stat.cell, card.Level, spell, e.alphabet.Size())
		if err != nil {
			return "", fmt.Errorf("%s: %w", stat.name, err)
		}
		b.WriteString(e.alphabet.Digit(bucket))
	}

	for _, effect := range []struct{ text, style string }{
		{card.Effect1, card.Effect1Style},
		{card.Effect2, card.Effect2Style},
	} {
		b.WriteString(effectInitial(effect.text, e.alphabet))
		style, err := e.styleIndex(effect.text, effect.style)
		if err != nil {
			return "", err
		}
		b.WriteString(e.alphabet.Digit(style))
	}

	rarity, err := e.rarity(card.Rarity)
	if err != nil {
		return "", err
	}
	b.WriteString(e.alphabet.Digit(rarity))

	return b.String(), nil
}

// Encode returns the serial for card. taken is the set of serials already
// issued; a nil taken means none are.
func (e *Encoder) Encode(card types.Card, taken Taken, mode Mode) (string, error) {
	if taken == nil {
		taken = TakenSet(nil)
	}

	base, err := e.Base(card)
	if err != nil {
		return "", err
	}

	var serial string
	switch mode {
	case ModeCreate:
		serial, err = e.create(base, taken)
	case ModeOverwrite:
		serial = e.overwrite(base, card.Serial, taken)
	default:
		err = fmt.Errorf("unknown encode mode %s", mode)
	}
	if err != nil {
		return "", err
	}

	e.logger.Debug("encoded serial",
		zap.String("card", card.Name),
		zap.String("mode", mode.String()),
		zap.String("base", base),
		zap.String("serial", serial))
	return serial, nil
}

func (e *Encoder) create(base string, taken Taken) (string, error) {
	for i := 0; i < e.alphabet.Size(); i++ {
		if s := base + e.alphabet.Digit(i); !taken.Has(s) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: all %d pads taken for %s", ErrSerialSpaceExhausted, e.alphabet.Size(), base)
}

// overwrite keeps current when it still matches base. Otherwise it steps
// back one from the first free pad and never mints past the last taken one.
func (e *Encoder) overwrite(base, current string, taken Taken) string {
	current = strings.TrimSpace(current)
	if strings.HasPrefix(current, base) && utf8.RuneCountInString(current) == utf8.RuneCountInString(base)+1 && taken.Has(current) {
		return current
	}

	n := e.alphabet.Size()
	free := n
	for i := 0; i < n; i++ {
		if !taken.Has(base + e.alphabet.Digit(i)) {
			free = i
			break
		}
	}
	if free == 0 {
		return base + e.alphabet.Digit(0)
	}
	return base + e.alphabet.Digit(free-1)
}

func (e *Encoder) initial(name string) (string, error) {
	name = strings.TrimSpace(name)
	r, _ := utf8.DecodeRuneInString(name)
	if name == "" || r == utf8.RuneError {
		return "", fmt.Errorf("%w: card name is empty", ErrInvalidAttribute)
	}
	// special casings like ß -> SS keep only their first rune
	up, _ := utf8.DecodeRuneInString(e.upper.String(string(r)))
	return string(up), nil
}

func (e *Encoder) combination(card types.Card) (string, error) {
	ix := e.Index()
	pos, err := ix.Position(card.Labels())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAttribute, err)
	}
	return e.alphabet.EncodeWidth(pos, e.CodeWidth()), nil
}

func effectInitial(text string, a Alphabet) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return a.Digit(0)
	}
	r, _ := utf8.DecodeRuneInString(text)
	return string(r)
}

// styleIndex returns the style position for an effect. An empty style is
// deduced from a leading "Style:" prefix of the effect text when it names a
// known style.
func (e *Encoder) styleIndex(text, style string) (int, error) {
	var idx int
	if style = strings.TrimSpace(style); style != "" {
		i, ok := e.catalog.StyleIndex(style)
		if !ok {
			return 0, fmt.Errorf("%w: unknown effect style %q", ErrInvalidAttribute, style)
		}
		idx = i
	} else {
		idx = DeduceStyle(e.catalog, text)
	}

	if idx >= e.alphabet.Size() {
		return 0, fmt.Errorf("%w: effect style index %d does not fit one digit", ErrInvalidAttribute, idx)
	}
	return idx, nil
}

// DeduceStyle returns the index of the style named by a "Style:" prefix of
// an effect text, or 0.
func DeduceStyle(catalog types.Catalog, text string) int {
	prefix, _, ok := strings.Cut(strings.TrimSpace(text), ":")
	if !ok || strings.TrimSpace(prefix) == "" {
		return 0
	}
	idx, ok := catalog.StyleIndex(prefix)
	if !ok {
		return 0
	}
	return idx
}

func (e *Encoder) rarity(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(cell)
	if err != nil || v < 0 || v >= e.alphabet.Size() {
		return 0, fmt.Errorf("%w: rarity %q", ErrInvalidAttribute, cell)
	}
	return v, nil
}
