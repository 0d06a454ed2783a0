// Package diagnostic provides path-scoped issue collection for conversions.
//
// Key capabilities:
//   - Severity levels (info < warn < error)
//   - A path stack scoped to the field or element being converted
//   - A Collector sink that snapshots the path into every issue
//   - A Tracker wrapper that records the highest level seen through it
//   - An aggregate error summarizing every error-level issue
//
// Paths are rendered with dots between keys and brackets around indices,
// e.g. "items[2].name".
package diagnostic
