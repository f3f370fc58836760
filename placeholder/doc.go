// Package placeholder expands template sentences whose <name> tokens are
// backed by flat files.
//
// A placeholder named rank lives in <dir>/rank.txt; every non-blank line is a
// candidate value with underscores stripped. Values may contain further
// tokens, which are expanded recursively. A name that is already being
// resolved further up the call chain, or whose file is missing or empty,
// resolves to its own literal token ("<rank>") so unresolved placeholders stay
// visible in the output.
//
// Tokens may carry an integer offset, <rank+1> or <rank-2>. Offsets shift
// numeric values and leave non-numeric ones unchanged.
//
// Text between angle brackets that is not a word followed by an optional
// signed integer (for example "<two words>") is not a token: it is skipped
// and left in the sentence as written.
package placeholder
