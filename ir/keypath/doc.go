// Package keypath parses OBF key text into structured paths.
//
// A complex key addresses a position in the reconstructed tree:
//
//	loop.1 + trial.2
//
// parses to two segments, loop with index modifier 1 and trial with
// index modifier 2. '+' and ',' are interchangeable group separators
// and surrounding whitespace is ignored. Index modifiers are all-digit;
// name modifiers follow the identifier grammar [A-Za-z_][A-Za-z0-9_]*.
//
// Reserved section keys like "=Header=" parse to a single opaque
// segment and keep their text verbatim.
package keypath
