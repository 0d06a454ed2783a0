// Package validate provides composable validator chains with
// severity-gated refinement.
//
// A chain reports issues to a diagnostic.Reporter and returns nothing.
// Chains compose through Refine: the next stage only runs when the
// previous stages reported nothing at error level. This is how a range
// check is kept from running on a value that already failed its type check.
//
// Built-in families are immutable builders; each method returns a new chain:
//
//	validate.IsString().MinLength(1).MaxLength(20)
//	validate.IsNumber(false).Min(5).Max(10)
//	validate.Nullable().IsString().Enum([]string{"a", "b"})
//
// Expr and Tag build chains from expr-lang expressions and
// go-playground/validator tags.
package validate
