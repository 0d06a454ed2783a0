package mapping

import (
	"errors"
	"fmt"
	"regexp"

	"data-caster/internal/diagnostic"
	"data-caster/internal/validate"
)

// Validate checks a mapping file against the registry without declaring
// anything. Issues carry the file location, e.g.
// "types[0].properties[2].validate[0]".
func Validate(mf *MappingFile, reg *Registry) *diagnostic.Collector {
	c, _ := compileFile(mf, reg)
	return c
}

type compiledField struct {
	index int
	name  string
	desc  *Descriptor
}

type compiledType struct {
	target Target
	params []compiledField
	props  []compiledField
}

func compileFile(mf *MappingFile, reg *Registry) (*diagnostic.Collector, []compiledType) {
	c := diagnostic.NewCollector()

	if mf == nil {
		c.Error("mapping file is nil")
		return c, nil
	}

	if reg == nil {
		c.Error("registry is nil")
		return c, nil
	}

	c.Push(diagnostic.Key("types"))
	defer c.Pop()

	// First pass: every name must resolve before nested references are checked.
	targets := make(map[string]Target)
	for _, name := range reg.TargetNames() {
		targets[name], _ = reg.Target(name)
	}

	resolved := make([]Target, len(mf.Types))
	seen := make(map[string]struct{})

	for i := range mf.Types {
		tm := &mf.Types[i]

		c.Push(diagnostic.Index(i))

		switch _, dup := seen[tm.Name]; {
		case tm.Name == "":
			c.Error("type name is required")
		case dup:
			c.Error(fmt.Sprintf("duplicate type %q", tm.Name))
		default:
			seen[tm.Name] = struct{}{}

			if t, ok := targets[tm.Name]; ok {
				resolved[i] = t
			} else if tm.Record {
				resolved[i] = NewRecord(tm.Name)
				targets[tm.Name] = resolved[i]
			} else {
				c.Error(fmt.Sprintf("target %q is not registered", tm.Name))
			}
		}

		c.Pop()
	}

	var compiled []compiledType

	for i := range mf.Types {
		if resolved[i] == nil {
			continue
		}

		c.Push(diagnostic.Index(i))
		compiled = append(compiled, compileType(c, &mf.Types[i], resolved[i], targets, reg))
		c.Pop()
	}

	return c, compiled
}

func compileType(
	c *diagnostic.Collector,
	tm *TypeMapping,
	target Target,
	targets map[string]Target,
	reg *Registry,
) compiledType {
	ct := compiledType{target: target}
	_, isRecord := target.(*Record)

	c.Push(diagnostic.Key("params"))

	for j := range tm.Params {
		fm := &tm.Params[j]

		c.Push(diagnostic.Index(j))

		if isRecord && fm.Name == "" {
			c.Error("record parameters need a name")
		}

		ct.params = append(ct.params, compiledField{index: j, name: fm.Name, desc: compileField(c, fm, targets, reg)})

		c.Pop()
	}

	c.Pop()
	c.Push(diagnostic.Key("properties"))

	for j := range tm.Properties {
		fm := &tm.Properties[j]

		c.Push(diagnostic.Index(j))

		if fm.Name == "" {
			c.Error("property name is required")
		}

		ct.props = append(ct.props, compiledField{name: fm.Name, desc: compileField(c, fm, targets, reg)})

		c.Pop()
	}

	c.Pop()

	return ct
}

func compileField(c *diagnostic.Collector, fm *FieldMapping, targets map[string]Target, reg *Registry) *Descriptor {
	d := Field(fm.Aliases...)
	d.Required = fm.Required

	for k, alias := range fm.Aliases {
		c.Push(diagnostic.Key("aliases"))
		c.Push(diagnostic.Index(k))

		if _, err := ParsePath(alias); err != nil {
			c.Error(err.Error())
		} else if fm.Aliases[:k].Contains(alias) {
			c.Warn(fmt.Sprintf("alias %q is listed twice", alias))
		}

		c.Pop()
		c.Pop()
	}

	if fm.Default.Set {
		if fm.Required {
			c.Warn("default is never used on a required field")
		}

		d.WithDefault(fm.Default.Value)
	}

	switch {
	case fm.Nested != "":
		nested, ok := targets[fm.Nested]
		if !ok {
			c.Error(fmt.Sprintf("unknown nested type %q", fm.Nested))
			break
		}

		if fm.Array {
			d.ArrayOf(nested)
		} else {
			d.Of(nested)
		}
	case fm.Array:
		c.Error("array requires a nested type")
	}

	if fn, err := reg.Chain(fm.PreValidate); err != nil {
		c.Error(fmt.Sprintf("preValidate: %v", err))
	} else {
		d.Before(fn)
	}

	if fn, err := reg.Chain(fm.Transform); err != nil {
		c.Error(fmt.Sprintf("transform: %v", err))
	} else {
		d.Then(fn)
	}

	if fm.TransformExpr != "" {
		if fn, err := ExprTransform(fm.TransformExpr); err != nil {
			c.Error(fmt.Sprintf("transformExpr: %v", err))
		} else {
			d.ThenCheck(fn)
		}
	}

	for k := range fm.Validate {
		c.Push(diagnostic.Key("validate"))
		c.Push(diagnostic.Index(k))

		v, err := compileChain(&fm.Validate[k], reg)
		if err != nil {
			c.Error(err.Error())
		} else {
			d.Validate(v)
		}

		c.Pop()
		c.Pop()
	}

	return d
}

func compileChain(spec *ChainSpec, reg *Registry) (validate.Validator, error) {
	set := 0

	for _, s := range []bool{spec.Type != "" || spec.Nullable, spec.Expr != "", spec.Tag != "", spec.Ref != ""} {
		if s {
			set++
		}
	}

	if set != 1 {
		return nil, errors.New("chain must set exactly one of type, expr, tag or ref")
	}

	opts, err := stageOptions(spec.Level, spec.Message)
	if err != nil {
		return nil, err
	}

	switch {
	case spec.Expr != "":
		return validate.Expr(spec.Expr, opts...)
	case spec.Tag != "":
		return validate.Tag(spec.Tag, opts...)
	case spec.Ref != "":
		v, ok := reg.Validator(spec.Ref)
		if !ok {
			return nil, fmt.Errorf("unknown validator %q", spec.Ref)
		}

		return v, nil
	}

	switch spec.Type {
	case "":
		if len(spec.Rules) > 0 {
			return nil, errors.New("rules require a chain type")
		}

		return validate.Nullable(), nil
	case ChainString:
		return compileStringChain(spec, opts)
	case ChainNumber:
		return compileNumberChain(spec, opts)
	case ChainBoolean:
		if len(spec.Rules) > 0 {
			return nil, errors.New("boolean chains have no rules")
		}

		if spec.Nullable {
			return validate.Nullable().IsBoolean(opts...), nil
		}

		return validate.IsBoolean(opts...), nil
	default:
		return nil, fmt.Errorf("unknown chain type %q", spec.Type)
	}
}

func compileStringChain(spec *ChainSpec, opts []validate.Option) (validate.Validator, error) {
	sc := validate.IsString(opts...)
	if spec.Nullable {
		sc = validate.Nullable().IsString(opts...)
	}

	for i := range spec.Rules {
		rule := &spec.Rules[i]

		ro, err := ruleOptions(i, rule)
		if err != nil {
			return nil, err
		}

		switch {
		case rule.MaxLength != nil:
			sc = sc.MaxLength(*rule.MaxLength, ro...)
		case rule.MinLength != nil:
			sc = sc.MinLength(*rule.MinLength, ro...)
		case rule.Enum != nil:
			sc = sc.Enum(rule.Enum, ro...)
		case rule.Pattern != "":
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %d: invalid pattern: %w", i, err)
			}

			sc = sc.Pattern(re, ro...)
		default:
			return nil, fmt.Errorf("rule %d: not a string rule", i)
		}
	}

	return sc, nil
}

func compileNumberChain(spec *ChainSpec, opts []validate.Option) (validate.Validator, error) {
	nc := validate.IsNumber(spec.AllowNaN, opts...)
	if spec.Nullable {
		nc = validate.Nullable().IsNumber(spec.AllowNaN, opts...)
	}

	for i := range spec.Rules {
		rule := &spec.Rules[i]

		ro, err := ruleOptions(i, rule)
		if err != nil {
			return nil, err
		}

		switch {
		case rule.Min != nil:
			nc = nc.Min(*rule.Min, ro...)
		case rule.Max != nil:
			nc = nc.Max(*rule.Max, ro...)
		case rule.Integer:
			nc = nc.Integer(ro...)
		default:
			return nil, fmt.Errorf("rule %d: not a number rule", i)
		}
	}

	return nc, nil
}

func ruleOptions(i int, rule *RuleSpec) ([]validate.Option, error) {
	set := 0

	for _, s := range []bool{
		rule.MaxLength != nil, rule.MinLength != nil, rule.Enum != nil, rule.Pattern != "",
		rule.Min != nil, rule.Max != nil, rule.Integer,
	} {
		if s {
			set++
		}
	}

	if set != 1 {
		return nil, fmt.Errorf("rule %d: exactly one constraint is required, found %d", i, set)
	}

	opts, err := stageOptions(rule.Level, rule.Message)
	if err != nil {
		return nil, fmt.Errorf("rule %d: %w", i, err)
	}

	return opts, nil
}

func stageOptions(level, message string) ([]validate.Option, error) {
	var opts []validate.Option

	if level != "" {
		l, err := diagnostic.ParseLevel(level)
		if err != nil {
			return nil, err
		}

		opts = append(opts, validate.WithLevel(l))
	}

	if message != "" {
		opts = append(opts, validate.WithMessage(message))
	}

	return opts, nil
}
