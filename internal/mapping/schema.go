package mapping

// MappingFile represents the root of a YAML mapping definition file.
type MappingFile struct {
	// Version of the mapping schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Types lists the target types being described.
	Types []TypeMapping `yaml:"types"`
}

// TypeMapping describes the parameters and properties of one target type.
type TypeMapping struct {
	// Name of the target. It must be registered, unless Record is set.
	Name string `yaml:"name"`

	// Record declares a dynamic map[string]any target when Name is not
	// registered yet.
	Record bool `yaml:"record,omitempty"`

	// Params are constructor parameter mappings by position. For records,
	// each needs a Name: the key the argument is stored under.
	Params []FieldMapping `yaml:"params,omitempty"`

	// Properties are property mappings in assignment order.
	Properties []FieldMapping `yaml:"properties,omitempty"`
}

// FieldMapping is the file form of a Descriptor.
type FieldMapping struct {
	// Name of the property (or record key of a parameter).
	Name string `yaml:"name,omitempty"`

	// Aliases are lookup paths; a single string is accepted.
	Aliases StringOrArray `yaml:"aliases,omitempty"`

	Required bool         `yaml:"required,omitempty"`
	Default  DefaultValue `yaml:"default,omitempty"`

	// Nested names the target the value is converted into.
	Nested string `yaml:"nested,omitempty"`

	// Array converts each element of a sequence into Nested.
	Array bool `yaml:"array,omitempty"`

	// PreValidate and Transform name registry transforms, applied in order.
	PreValidate StringOrArray `yaml:"preValidate,omitempty"`
	Transform   StringOrArray `yaml:"transform,omitempty"`

	// TransformExpr is an expr-lang expression applied after Transform.
	TransformExpr string `yaml:"transformExpr,omitempty"`

	// Validate lists validator chains in order.
	Validate []ChainSpec `yaml:"validate,omitempty"`
}

// ChainSpec describes one validator chain. Exactly one of Type (with
// optional Nullable), Expr, Tag or Ref is used.
//
// A bare string is shorthand for Type: "string", "number", "boolean" or
// "nullable".
type ChainSpec struct {
	// Type is "string", "number" or "boolean".
	Type     string `yaml:"type,omitempty"`
	Nullable bool   `yaml:"nullable,omitempty"`
	AllowNaN bool   `yaml:"allowNaN,omitempty"`

	// Level and Message override the base type check.
	Level   string `yaml:"level,omitempty"`
	Message string `yaml:"message,omitempty"`

	// Rules are refinements applied in order.
	Rules []RuleSpec `yaml:"rules,omitempty"`

	Expr string `yaml:"expr,omitempty"`
	Tag  string `yaml:"tag,omitempty"`
	Ref  string `yaml:"ref,omitempty"`
}

// RuleSpec is one refinement. Exactly one constraint is set.
type RuleSpec struct {
	MaxLength *int     `yaml:"maxLength,omitempty"`
	MinLength *int     `yaml:"minLength,omitempty"`
	Enum      []string `yaml:"enum,omitempty"`
	Pattern   string   `yaml:"pattern,omitempty"`
	Min       *float64 `yaml:"min,omitempty"`
	Max       *float64 `yaml:"max,omitempty"`
	Integer   bool     `yaml:"integer,omitempty"`

	Level   string `yaml:"level,omitempty"`
	Message string `yaml:"message,omitempty"`
}

// StringOrArray is a type that can be unmarshaled from either a string or an array of strings.
// This allows YAML fields to accept both "field" and ["field1", "field2"].
type StringOrArray []string

// DefaultValue records whether a default was written. A null default is
// treated as no default.
type DefaultValue struct {
	Value any
	Set   bool
}

// Chain type names.
const (
	ChainString   = "string"
	ChainNumber   = "number"
	ChainBoolean  = "boolean"
	ChainNullable = "nullable"
)
