// Package convert builds instances of declared target types from untyped
// data (maps, slices and scalars such as decoded JSON).
//
// For each parameter and then each property of a target, the engine:
//  1. tries the descriptor's aliases in order; the first that resolves wins
//  2. applies the pre-validation transform
//  3. runs the validator chains, tracking the highest severity
//  4. unless an error was reported, applies the transform, converts nested
//     targets (element-wise for arrays) and stores the value
//
// Missing required fields, shape errors and validation failures are
// collected as path-scoped issues and never abort sibling fields. Only
// malformed descriptors abort a conversion.
//
// Without WithOnComplete, Convert returns a *diagnostic.AggregateError when
// any error-level issue was collected. With it, the callback receives the
// instance and the diagnostics and Convert always returns the instance.
package convert
