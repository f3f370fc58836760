package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/ttcg/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Delimiter separates card list columns.
const Delimiter = ';'

var (
	// ErrDuplicateCard is returned when appending a row that is already in
	// the card list.
	ErrDuplicateCard = errors.New("card already exists")

	// ErrDuplicateEffects is returned when another card already carries the
	// same pair of effects, in either order.
	ErrDuplicateEffects = errors.New("effect combination already exists")

	// ErrMalformedCardList is returned for unreadable card list content.
	ErrMalformedCardList = errors.New("malformed card list")
)

// CardList is the semicolon delimited card list file.
type CardList struct {
	path string
	settings
}

// NewCardList returns the card list stored at path.
func NewCardList(path string, opts ...Option) *CardList {
	return &CardList{path: path, settings: newSettings(opts)}
}

// Path returns the card list path.
func (c *CardList) Path() string {
	return c.path
}

// Load reads every card.
func (c *CardList) Load() ([]types.Card, error) {
	data, err := c.fs.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read card list: %w", err)
	}
	cards, err := ReadCards(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.path, err)
	}
	return cards, nil
}

// Append adds a card, writing the header first when the file is new.
// Spell cards are stored without subtypes.
func (c *CardList) Append(card types.Card) error {
	if card.IsSpell() {
		card.Subtypes = nil
	}

	return withLock(c.lockFactory, c.path, func() error {
		data, existing, err := c.read()
		if err != nil {
			return err
		}
		if err := checkDuplicates(existing, card); err != nil {
			return err
		}

		var buf bytes.Buffer
		if len(data) > 0 && !bytes.HasSuffix(data, []byte("\n")) {
			buf.WriteByte('\n')
		}
		w := newWriter(&buf)
		if len(bytes.TrimSpace(data)) == 0 {
			_ = w.Write(types.CardListHeader)
		}
		_ = w.Write(EncodeRow(card))
		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("failed to encode card: %w", err)
		}

		if err := c.fs.AppendFile(c.path, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to append card: %w", err)
		}
		c.logger.Info("saved card", zap.String("card", card.Name), zap.String("serial", card.Serial), zap.String("path", c.path))
		return nil
	})
}

// Check reports whether Append would reject card, without writing.
func (c *CardList) Check(card types.Card) error {
	if card.IsSpell() {
		card.Subtypes = nil
	}
	return withLock(c.lockFactory, c.path, func() error {
		_, existing, err := c.read()
		if err != nil {
			return err
		}
		return checkDuplicates(existing, card)
	})
}

func (c *CardList) read() ([]byte, []types.Card, error) {
	data, err := c.fs.ReadFile(c.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("failed to read card list: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return data, nil, nil
	}
	cards, err := ReadCards(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", c.path, err)
	}
	return data, cards, nil
}

// Rewrite replaces the whole card list atomically: the cards are written to
// a temporary sibling file which is then renamed over the list.
func (c *CardList) Rewrite(cards []types.Card) error {
	var buf bytes.Buffer
	if err := WriteCards(&buf, cards); err != nil {
		return err
	}

	return withLock(c.lockFactory, c.path, func() error {
		tmpFile := fmt.Sprintf("%s.%s.tmp", c.path, uuid.NewString())
		if err := c.fs.WriteFile(tmpFile, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write temp file: %w", err)
		}
		if err := c.fs.Rename(tmpFile, c.path); err != nil {
			_ = c.fs.Remove(tmpFile)
			return fmt.Errorf("failed to rename file: %w", err)
		}
		c.logger.Info("rewrote card list", zap.Int("cards", len(cards)), zap.String("path", c.path))
		return nil
	})
}

// UpdatedPath returns the sibling path a regenerated card list is written
// to: cards.csv becomes cards_updated.csv.
func UpdatedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_updated" + ext
}

func checkDuplicates(existing []types.Card, card types.Card) error {
	row := strings.Join(EncodeRow(card), string(Delimiter))
	e1, e2 := strings.TrimSpace(card.Effect1), strings.TrimSpace(card.Effect2)
	for _, other := range existing {
		if strings.Join(EncodeRow(other), string(Delimiter)) == row {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, card.Name)
		}
		if e1 == "" && e2 == "" {
			continue
		}
		o1, o2 := strings.TrimSpace(other.Effect1), strings.TrimSpace(other.Effect2)
		if (o1 == e1 && o2 == e2) || (o1 == e2 && o2 == e1) {
			return fmt.Errorf("%w: %q already used by %s", ErrDuplicateEffects, e1+" / "+e2, other.Name)
		}
	}
	return nil
}

// ReadCards decodes a card list. Columns are matched by header name, so
// lists written before the effect style columns existed still load.
func ReadCards(r io.Reader) ([]types.Card, error) {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCardList, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, required := range []string{"NAME", "TYPE"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: missing %s column", ErrMalformedCardList, required)
		}
	}

	var cards []types.Card
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCardList, err)
		}
		if isBlank(row) {
			continue
		}
		card, err := DecodeRow(columns, row)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// WriteCards encodes cards with the current header.
func WriteCards(w io.Writer, cards []types.Card) error {
	cw := newWriter(w)
	if err := cw.Write(types.CardListHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, card := range cards {
		if err := cw.Write(EncodeRow(card)); err != nil {
			return fmt.Errorf("failed to write %s: %w", card.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeRow renders a card in CardListHeader column order.
func EncodeRow(card types.Card) []string {
	level := ""
	if card.Level != 0 {
		level = strconv.Itoa(card.Level)
	}
	return []string{
		card.Name,
		card.Type,
		card.SubtypeString(),
		level,
		card.Image,
		card.Attack,
		card.Defense,
		card.Effect1,
		card.Effect2,
		card.Serial,
		card.Rarity,
		card.Transparency,
		card.Effect1Style,
		card.Effect2Style,
	}
}

// DecodeRow builds a card from a row, given the column positions by header
// name. Missing columns decode as empty.
func DecodeRow(columns map[string]int, row []string) (types.Card, error) {
	get := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	card := types.Card{
		Name:         get("NAME"),
		Type:         get("TYPE"),
		Subtypes:     types.ParseSubtypes(get("SUBTYPES")),
		Image:        get("IMAGE"),
		Attack:       get("ATTACK"),
		Defense:      get("DEFENSE"),
		Effect1:      get("EFFECT1"),
		Effect2:      get("EFFECT2"),
		Serial:       get("SERIAL"),
		Rarity:       get("RARITY"),
		Transparency: get("TRANSPARENCY"),
		Effect1Style: get("EFFECT1_STYLE"),
		Effect2Style: get("EFFECT2_STYLE"),
	}
	if level := get("LEVEL"); level != "" {
		v, err := strconv.Atoi(level)
		if err != nil {
			return types.Card{}, fmt.Errorf("%w: %s has level %q", ErrMalformedCardList, card.Name, level)
		}
		card.Level = v
	}
	return card, nil
}

func newWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter
	return cw
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
