package validate

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"data-caster/internal/diagnostic"
)

func run(v Validator, value any) []diagnostic.Issue {
	c := diagnostic.NewCollector()
	v.Validate(value, c)

	return c.Issues()
}

func messages(issues []diagnostic.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Message)
	}

	return out
}

func TestRefine_GatesOnError(t *testing.T) {
	var ran bool

	failing := Func(func(_ any, r diagnostic.Reporter) { r.Error("type mismatch") })
	v := Refine(failing, identity, func(any, diagnostic.Reporter) { ran = true })

	issues := run(v, 1)

	assert.False(t, ran, "next stage must not run after an error")
	assert.Equal(t, []string{"type mismatch"}, messages(issues))
}

func TestRefine_RunsAfterWarning(t *testing.T) {
	var ran bool

	warning := Func(func(_ any, r diagnostic.Reporter) { r.Warn("suspicious") })
	v := Refine(warning, identity, func(any, diagnostic.Reporter) { ran = true })

	run(v, 1)

	assert.True(t, ran)
}

func TestRefine_LaterStagesSeeCombinedSeverity(t *testing.T) {
	var third bool

	base := Func(func(any, diagnostic.Reporter) {})
	second := Refine(base, identity, func(_ any, r diagnostic.Reporter) { r.Error("second failed") })
	chain := Refine(second, identity, func(any, diagnostic.Reporter) { third = true })

	issues := run(chain, "x")

	assert.False(t, third)
	assert.Len(t, issues, 1)
}

func TestRefine_Narrows(t *testing.T) {
	var got float64

	v := Refine(Func(func(any, diagnostic.Reporter) {}), asFloat, func(f float64, _ diagnostic.Reporter) { got = f })
	run(v, 7)

	assert.InDelta(t, 7.0, got, 0)
}

func TestIsString(t *testing.T) {
	tests := []struct {
		name     string
		chain    Validator
		value    any
		expected []string
	}{
		{"string passes", IsString(), "abc", nil},
		{"number fails", IsString(), 12.0, []string{"Expected type string, but found: number"}},
		{"null fails", IsString(), nil, []string{"Expected type string, but found: null"}},
		{"array fails", IsString(), []any{}, []string{"Expected type string, but found: array"}},
		{"object fails", IsString(), map[string]any{}, []string{"Expected type string, but found: object"}},
		{"boolean fails", IsString(), true, []string{"Expected type string, but found: boolean"}},
		{"max length", IsString().MaxLength(3), "abcd", []string{"Maximum length exceeded (max: 3, actual: 4)"}},
		{"max length counts runes", IsString().MaxLength(3), "äöü", nil},
		{"min length", IsString().MinLength(3), "ab", []string{"Minimum length violated (max: 3, actual: 2)"}},
		{"enum miss", IsString().Enum([]string{"a", "b"}), "c", []string{"Value did not match one of the 2 expected options: c"}},
		{"enum hit", IsString().Enum([]string{"a", "b"}), "b", nil},
		{"pattern miss", IsString().Pattern(regexp.MustCompile(`^\d+$`)), "12a", []string{`Value did not match the expected pattern: ^\d+$`}},
		{"type failure gates length", IsString().MaxLength(1), 12.0, []string{"Expected type string, but found: number"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, nilIfEmpty(messages(run(tt.chain, tt.value))))
		})
	}
}

func TestStringChain_OrderAndGating(t *testing.T) {
	// minLength passes, maxLength fails: only the max issue is reported.
	issues := run(IsString().MinLength(2).MaxLength(4), "abcdef")
	assert.Equal(t, []string{"Maximum length exceeded (max: 4, actual: 6)"}, messages(issues))

	// minLength fails at error level and gates maxLength.
	issues = run(IsString().MinLength(10).MaxLength(4), "abcdef")
	assert.Equal(t, []string{"Minimum length violated (max: 10, actual: 6)"}, messages(issues))

	// minLength fails at warn level and does not gate maxLength.
	issues = run(IsString().MinLength(10, WithLevel(diagnostic.LevelWarn)).MaxLength(4), "abcdef")
	require.Len(t, issues, 2)
	assert.Equal(t, diagnostic.LevelWarn, issues[0].Level)
	assert.Equal(t, diagnostic.LevelError, issues[1].Level)
}

func TestStringChain_Immutable(t *testing.T) {
	base := IsString()
	short := base.MaxLength(2)
	_ = base.MinLength(100)

	assert.Empty(t, run(base, "abcdef"))
	assert.Len(t, run(short, "abcdef"), 1)
}

func TestOptions_Override(t *testing.T) {
	issues := run(IsString(WithLevel(diagnostic.LevelWarn), WithMessage("not text")), 5)
	require.Len(t, issues, 1)
	assert.Equal(t, diagnostic.LevelWarn, issues[0].Level)
	assert.Equal(t, "not text", issues[0].Message)
}

func TestIsNumber(t *testing.T) {
	tests := []struct {
		name     string
		chain    Validator
		value    any
		expected []string
	}{
		{"float passes", IsNumber(false), 3.5, nil},
		{"int passes", IsNumber(false), 3, nil},
		{"uint8 passes", IsNumber(false), uint8(3), nil},
		{"string fails", IsNumber(false), "3", []string{"Expected type number, but found: string"}},
		{"NaN fails", IsNumber(false), math.NaN(), []string{"Unexpected value: NaN"}},
		{"NaN allowed", IsNumber(true), math.NaN(), nil},
		{"max", IsNumber(false).Min(5).Max(10), 42.0, []string{"Value (42) is greater than the maximum: 10"}},
		{"min", IsNumber(false).Min(5).Max(10), 1.5, []string{"Value (1.5) is less than the minimum: 5"}},
		{"in range", IsNumber(false).Min(5).Max(10), 7, nil},
		{"integer", IsNumber(false).Integer(), 2.5, []string{"Expected an integer, but found: 2.5"}},
		{"NaN gates range", IsNumber(false).Max(1), math.NaN(), []string{"Unexpected value: NaN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, nilIfEmpty(messages(run(tt.chain, tt.value))))
		})
	}
}

func TestIsBoolean(t *testing.T) {
	assert.Empty(t, run(IsBoolean(), false))
	assert.Equal(t, []string{"Expected type boolean, but found: string"}, messages(run(IsBoolean(), "true")))
}

func TestNullable(t *testing.T) {
	assert.Empty(t, run(Nullable(), nil))
	assert.Empty(t, run(Nullable(), 12))

	assert.Empty(t, run(Nullable().IsString(), nil))
	assert.Equal(t,
		[]string{"Expected type string, but found: number"},
		messages(run(Nullable().IsString(), 12.0)))

	assert.Empty(t, run(Nullable().IsString().MaxLength(2), nil))
	assert.Len(t, run(Nullable().IsString().MaxLength(2), "abc"), 1)

	assert.Empty(t, run(Nullable().IsNumber(false).Max(3), nil))
	assert.Equal(t,
		[]string{"Value (4) is greater than the maximum: 3"},
		messages(run(Nullable().IsNumber(false).Max(3), 4)))

	assert.Empty(t, run(Nullable().IsBoolean(), nil))
}

func TestTypeName(t *testing.T) {
	var nilPtr *int

	assert.Equal(t, "null", TypeName(nil))
	assert.Equal(t, "null", TypeName(nilPtr))
	assert.Equal(t, "number", TypeName(int32(1)))
	assert.Equal(t, "object", TypeName(struct{}{}))
	assert.Equal(t, "chan int", TypeName(make(chan int)))
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}

	return s
}
