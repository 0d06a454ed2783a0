package mapping

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"data-caster/internal/common"
)

// --- StringOrArray YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, kindName(node.Kind))
	}
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// --- DefaultValue YAML methods ---

// UnmarshalYAML records the decoded default and marks it as set.
func (d *DefaultValue) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}

	d.Value = v
	d.Set = true

	return nil
}

// IsZero lets omitempty drop unset defaults.
func (d DefaultValue) IsZero() bool {
	return !d.Set
}

// --- ChainSpec YAML methods ---

// UnmarshalYAML accepts the scalar shorthand ("string") or the full mapping.
func (c *ChainSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}

		if name == ChainNullable {
			*c = ChainSpec{Nullable: true}
		} else {
			*c = ChainSpec{Type: name}
		}

		return nil

	case yaml.MappingNode:
		// plain avoids recursing into this method
		type plain ChainSpec

		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}

		*c = ChainSpec(p)

		return nil

	default:
		return fmt.Errorf("line %d: expected chain name or mapping, got %v", node.Line, kindName(node.Kind))
	}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return common.UnknownStr
	}
}
