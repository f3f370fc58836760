// Package serial encodes card attributes into short, collision-checked
// serial numbers.
//
// A serial is a fixed sequence of single-character fields followed by a
// fixed-width combination code and one trailing pad character:
//
//	initial level combo... attack defense e1 s1 e2 s2 rarity pad
//
// Every numeric field is written with the same digit alphabet. The
// combination code is a position in the combos enumeration of the card
// catalog, so the catalog order and the enumeration order are part of the
// format.
package serial

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultDigits is the serial alphabet: digits, then upper and lower case
// letters without the easily confused I, O and l.
const DefaultDigits = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ErrInvalidDigit is returned when decoding a character outside the
// alphabet.
var ErrInvalidDigit = errors.New("invalid serial digit")

// Alphabet is an ordered, case-sensitive digit set.
type Alphabet struct {
	digits []rune
	index  map[rune]int
}

// Default returns the default serial alphabet.
func Default() Alphabet {
	a, err := NewAlphabet(DefaultDigits)
	if err != nil {
		panic(err)
	}
	return a
}

// NewAlphabet builds an alphabet from an ordered digit string. At least
// two distinct digits are required.
func NewAlphabet(digits string) (Alphabet, error) {
	runes := []rune(digits)
	if len(runes) < 2 {
		return Alphabet{}, fmt.Errorf("alphabet needs at least 2 digits, got %d", len(runes))
	}
	index := make(map[rune]int, len(runes))
	for i, r := range runes {
		if _, dup := index[r]; dup {
			return Alphabet{}, fmt.Errorf("alphabet digit %q repeated", r)
		}
		index[r] = i
	}
	return Alphabet{digits: runes, index: index}, nil
}

// Size returns the number of digits, the base of the encoding.
func (a Alphabet) Size() int {
	return len(a.digits)
}

// Digit returns the single digit for 0 <= i < Size.
func (a Alphabet) Digit(i int) string {
	if i < 0 || i >= len(a.digits) {
		panic(fmt.Sprintf("serial: digit %d out of range [0,%d)", i, len(a.digits)))
	}
	return string(a.digits[i])
}

// Encode writes n in the alphabet's base, most significant digit first.
// Zero is written as the zero digit.
func (a Alphabet) Encode(n int) string {
	if n < 0 {
		panic(fmt.Sprintf("serial: cannot encode negative value %d", n))
	}
	if n == 0 {
		return string(a.digits[0])
	}

	base := len(a.digits)
	var out []rune
	for n > 0 {
		out = append(out, a.digits[n%base])
		n /= base
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// EncodeWidth encodes n left-padded with the zero digit to width digits.
// Values that need more digits are returned unpadded.
func (a Alphabet) EncodeWidth(n, width int) string {
	s := a.Encode(n)
	if pad := width - len([]rune(s)); pad > 0 {
		s = strings.Repeat(string(a.digits[0]), pad) + s
	}
	return s
}

// Width returns the number of digits needed to write n.
func (a Alphabet) Width(n int) int {
	return len([]rune(a.Encode(n)))
}

// Decode reads a number written with Encode or EncodeWidth.
func (a Alphabet) Decode(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidDigit)
	}
	n := 0
	for _, r := range s {
		d, ok := a.index[r]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDigit, r)
		}
		n = n*len(a.digits) + d
	}
	return n, nil
}

// Index returns the position of a single digit.
func (a Alphabet) Index(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}
