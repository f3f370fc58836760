// Package effects works with the effect templates behind card text: the
// tagged effects table, random effect picking for the card builder, the
// clean-up pass applied to expanded effect sentences, and table linting.
package effects
