package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"data-caster/internal/diagnostic"
)

const carMapping = `
types:
  - name: Engine
    record: true
    properties:
      - name: power
        aliases: [power, hp]
        validate:
          - type: number
            rules:
              - min: 0
  - name: Car
    record: true
    params:
      - name: make
        aliases: [make, manufacturer]
        required: true
        preValidate: trim
        validate:
          - type: string
            rules:
              - maxLength: 20
              - enum: [Ford, Fiat]
                level: warn
    properties:
      - name: year
        default: 2000
        transformExpr: "value + 0"
        validate:
          - number
          - expr: "value > 1900"
      - name: engine
        nested: Engine
      - name: wheels
        nested: Engine
        array: true
      - name: nickname
        aliases: nick
        transform: [trim, upper]
        validate:
          - type: string
            nullable: true
`

func TestParse_Defaults(t *testing.T) {
	mf, err := Parse([]byte(carMapping))
	require.NoError(t, err)

	assert.Equal(t, "1", mf.Version)
	require.Len(t, mf.Types, 2)

	car := mf.Types[1]
	assert.Equal(t, StringOrArray{"make", "manufacturer"}, car.Params[0].Aliases)
	assert.Equal(t, StringOrArray{"nick"}, car.Properties[3].Aliases)
	assert.True(t, car.Properties[0].Default.Set)
	assert.Equal(t, 2000, car.Properties[0].Default.Value)
	assert.False(t, car.Properties[1].Default.Set)
	assert.Equal(t, ChainSpec{Type: ChainNumber}, car.Properties[0].Validate[0])
}

func TestParse_NullDefault(t *testing.T) {
	mf, err := Parse([]byte(`
types:
  - name: Car
    record: true
    properties:
      - name: model
        default: null
      - name: year
        default: 0
`))
	require.NoError(t, err)

	props := mf.Types[0].Properties
	assert.False(t, props[0].Default.Set, "explicit null is no default")
	assert.True(t, props[1].Default.Set)

	reg := NewRegistry()
	require.NoError(t, Apply(mf, reg))

	car, ok := reg.Target("Car")
	require.True(t, ok)
	require.Len(t, car.Properties(), 2)
	assert.False(t, car.Properties()[0].Mapping.HasDefault)
	assert.Nil(t, car.Properties()[0].Mapping.Default)
	assert.True(t, car.Properties()[1].Mapping.HasDefault)
}

func TestParse_MalformedShape(t *testing.T) {
	_, err := Parse([]byte(`
types:
  - name: Car
    params:
      make: {}
`))
	assert.Error(t, err, "params must be a sequence")

	_, err = Parse([]byte(`
types:
  - name: Car
    properties:
      - name: x
        aliases: {a: b}
`))
	assert.Error(t, err)
}

func TestApply_DeclaresRecords(t *testing.T) {
	mf, err := Parse([]byte(carMapping))
	require.NoError(t, err)

	reg := NewRegistry()
	require.NoError(t, Apply(mf, reg))

	car, ok := reg.Target("Car")
	require.True(t, ok)
	engine, ok := reg.Target("Engine")
	require.True(t, ok)

	require.Len(t, car.Params(), 1)
	makeDesc := car.Params()[0]
	assert.True(t, makeDesc.Required)
	assert.NotNil(t, makeDesc.PreValidate)
	assert.Len(t, makeDesc.Validations, 1)

	props := car.Properties()
	require.Len(t, props, 4)
	assert.Equal(t, "year", props[0].Name)
	assert.True(t, props[0].Mapping.HasDefault)
	assert.Nil(t, props[0].Mapping.Transform)
	assert.NotNil(t, props[0].Mapping.Check)
	assert.Len(t, props[0].Mapping.Validations, 2)
	assert.Same(t, engine, props[1].Mapping.Nested)
	assert.False(t, props[1].Mapping.ArrayOfNested)
	assert.True(t, props[2].Mapping.ArrayOfNested)
	assert.Equal(t, "NICK", props[3].Mapping.Transform("  nick "))
}

func TestApply_RegisteredStructTarget(t *testing.T) {
	reg := NewRegistry()
	typ := Define[vehicle]("Vehicle")
	require.NoError(t, reg.Register(typ))

	mf, err := Parse([]byte(`
types:
  - name: Vehicle
    params:
      - aliases: make
    properties:
      - name: Year
        aliases: [year]
`))
	require.NoError(t, err)
	require.NoError(t, Apply(mf, reg))

	require.Len(t, typ.Params(), 1)
	assert.Equal(t, []string{"make"}, typ.Params()[0].Aliases)
	require.Len(t, typ.Properties(), 1)
	assert.Equal(t, "Year", typ.Properties()[0].Name)
}

func TestValidate_Errors(t *testing.T) {
	mf, err := Parse([]byte(`
types:
  - name: Unknown
  - record: true
  - name: Car
    record: true
    params:
      - aliases: make
    properties:
      - name: a
        aliases: ["x..y"]
      - name: b
        nested: Missing
      - name: c
        array: true
      - name: d
        transform: nope
      - name: e
        validate:
          - type: string
            rules:
              - min: 3
      - name: f
        validate:
          - type: number
            expr: "value > 1"
      - name: g
        validate:
          - ref: missing
      - name: h
        required: true
        default: 1
      - validate:
          - tag: not_a_real_rule
  - name: Car
    record: true
`))
	require.NoError(t, err)

	reg := NewRegistry()
	c := Validate(mf, reg)

	paths := map[string]string{}
	for _, i := range c.Errors() {
		paths[i.Path] = i.Message
	}

	assert.Contains(t, paths, "types[0]")
	assert.Contains(t, paths, "types[1]")
	assert.Contains(t, paths, "types[3]")
	assert.Contains(t, paths, "types[2].params[0]")
	assert.Contains(t, paths, "types[2].properties[0].aliases[0]")
	assert.Contains(t, paths, "types[2].properties[1]")
	assert.Contains(t, paths, "types[2].properties[2]")
	assert.Contains(t, paths, "types[2].properties[3]")
	assert.Contains(t, paths, "types[2].properties[4].validate[0]")
	assert.Contains(t, paths, "types[2].properties[5].validate[0]")
	assert.Contains(t, paths, "types[2].properties[6].validate[0]")
	assert.Contains(t, paths, "types[2].properties[8]")
	assert.Contains(t, paths, "types[2].properties[8].validate[0]")

	warnings := c.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "types[2].properties[7]", warnings[0].Path)

	err = Apply(mf, reg)
	require.Error(t, err)

	var agg *diagnostic.AggregateError
	assert.ErrorAs(t, err, &agg)
	assert.Empty(t, reg.TargetNames(), "nothing is declared on failure")
}

func TestValidate_DuplicateAlias(t *testing.T) {
	mf, err := Parse([]byte(`
types:
  - name: Car
    record: true
    properties:
      - name: make
        aliases: [make, maker, make]
`))
	require.NoError(t, err)

	c := Validate(mf, NewRegistry())
	assert.False(t, c.HasErrors())

	warnings := c.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "types[0].properties[0].aliases[2]", warnings[0].Path)
	assert.Contains(t, warnings[0].Message, `"make"`)
}

func TestValidate_NilInputs(t *testing.T) {
	assert.True(t, Validate(nil, NewRegistry()).HasErrors())
	assert.True(t, Validate(&MappingFile{}, nil).HasErrors())
}

func TestLoadInto(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte(carMapping), 0o644))

	reg := NewRegistry()
	mf, err := LoadInto(path, reg)
	require.NoError(t, err)
	assert.Len(t, mf.Types, 2)
	assert.Equal(t, []string{"Car", "Engine"}, reg.TargetNames())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
