// Package match ranks data keys by similarity to a field name, for
// "did you mean" hints on missing required fields.
//
// Key functions:
//   - NormalizeKey: folds case and separators so that "make_name",
//     "makeName" and "Make-Name" compare equal
//   - Levenshtein: rune-wise edit distance
//   - Suggest: the closest candidates above a similarity threshold
package match
