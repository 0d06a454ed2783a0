package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const carsMapping = `
version: "1"
types:
  - name: Car
    record: true
    params:
      - name: make
        aliases: [make, manufacturer]
        required: true
        preValidate: trim
        validate: [string]
    properties:
      - name: year
        validate:
          - type: number
            rules:
              - min: 1886
      - name: engine
        nested: Engine
      - name: wheels
        default: 4
  - name: Engine
    record: true
    properties:
      - name: cylinders
        aliases: [cyl, cylinders]
        validate:
          - type: number
            rules:
              - integer: true
`

const brokenMapping = `
types:
  - name: Car
    record: true
    properties:
      - name: make
        transform: nope
`

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCommand("test", "none")
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.Execute()

	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))

	return p
}

func TestConvert_Success(t *testing.T) {
	dir := t.TempDir()
	m := writeFile(t, dir, "cars.yaml", carsMapping)
	in := writeFile(t, dir, "car.json", `{"manufacturer": " Ford ", "year": 1908, "engine": {"cyl": 4}}`)

	res := execute(t, "", "convert", "-m", m, in)

	require.NoError(t, res.err, res.stderr)
	assert.JSONEq(t, `{"make": "Ford", "year": 1908, "engine": {"cylinders": 4}, "wheels": 4}`, res.stdout)
	assert.Empty(t, res.stderr)
}

func TestConvert_StdinAndYAMLOutput(t *testing.T) {
	dir := t.TempDir()
	m := writeFile(t, dir, "cars.yaml", carsMapping)

	res := execute(t, "make: Fiat\nyear: 1957\n", "convert", "-m", m, "-t", "Car", "-f", "yaml", "-o", "yaml")

	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "make: Fiat")
	assert.Contains(t, res.stdout, "year: 1957")
	assert.Contains(t, res.stdout, "wheels: 4")
}

func TestConvert_ReportsIssues(t *testing.T) {
	dir := t.TempDir()
	m := writeFile(t, dir, "cars.yaml", carsMapping)
	in := writeFile(t, dir, "car.yaml", "maker: Ford\nyear: 1800\nengine:\n  cyl: 4.5\n")

	res := execute(t, "", "convert", "-m", m, in)

	require.ErrorIs(t, res.err, ErrIssues)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "error Required parameter not found: make, manufacturer (did you mean: maker?)")
	assert.Contains(t, res.stderr, "error year Value (1800) is less than the minimum: 1886")
	assert.Contains(t, res.stderr, "error engine.cyl Expected an integer, but found: 4.5")
	assert.Contains(t, res.stderr, "3 error(s), 0 warning(s), 0 info")
}

func TestConvert_Partial(t *testing.T) {
	dir := t.TempDir()
	m := writeFile(t, dir, "cars.yaml", carsMapping)

	res := execute(t, `{"make": "Ford", "year": 1800}`, "convert", "-m", m, "--partial", "--no-suggest")

	require.ErrorIs(t, res.err, ErrIssues)
	assert.JSONEq(t, `{"make": "Ford", "wheels": 4}`, res.stdout)
}

func TestConvert_Errors(t *testing.T) {
	dir := t.TempDir()
	m := writeFile(t, dir, "cars.yaml", carsMapping)
	broken := writeFile(t, dir, "broken.yaml", brokenMapping)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown type", []string{"convert", "-m", m, "-t", "Boat"}, `unknown type "Boat" (declared: [Car Engine])`},
		{"bad format", []string{"convert", "-m", m, "-f", "xml"}, "unknown input format"},
		{"bad log level", []string{"convert", "-m", m, "--log-level", "loud"}, "invalid --log-level"},
		{"invalid mapping", []string{"convert", "-m", broken}, "invalid mapping file"},
		{"missing input", []string{"convert", "-m", m, filepath.Join(dir, "none.json")}, "read input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "{}", tt.args...)

			require.Error(t, res.err)
			assert.NotErrorIs(t, res.err, ErrIssues)
			assert.Contains(t, res.err.Error(), tt.want)
		})
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	m := writeFile(t, dir, "cars.yaml", carsMapping)
	broken := writeFile(t, dir, "broken.yaml", brokenMapping)

	res := execute(t, "", "check", m)
	require.NoError(t, res.err)
	assert.Equal(t, m+": ok (Car, Engine)\n", res.stdout)

	res = execute(t, "", "check", m, broken)
	require.ErrorIs(t, res.err, ErrIssues)
	assert.Contains(t, res.stdout, m+": ok")
	assert.Contains(t, res.stderr, broken+":")
	assert.Contains(t, res.stderr, "error types[0].properties[0]")
}

func TestConvert_DebugLogging(t *testing.T) {
	dir := t.TempDir()
	m := writeFile(t, dir, "cars.yaml", carsMapping)

	res := execute(t, `{"make": "Ford"}`, "convert", "-m", m, "--log-level", "debug", "--log-format", "json")

	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, `"message":"converting"`)
	assert.Contains(t, res.stderr, `"message":"conversion finished"`)
}

func TestConvert_ExampleFiles(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "examples", "cars")
	m := filepath.Join(dir, "mapping.yaml")

	t.Run("valid", func(t *testing.T) {
		res := execute(t, "", "convert", "-m", m, filepath.Join(dir, "car.json"))

		require.NoError(t, res.err, res.stderr)
		assert.JSONEq(t, `{
			"make": "Ford",
			"model": "Model T",
			"year": 1908,
			"color": "black",
			"vin": "C12345",
			"price": 825,
			"engine": {"cylinders": 4, "fuel": "petrol"},
			"owners": [
				{"name": "Henry", "email": "henry@example.com"},
				{"name": "Clara"}
			]
		}`, res.stdout)
	})

	t.Run("invalid", func(t *testing.T) {
		res := execute(t, "", "convert", "-m", m, filepath.Join(dir, "car-invalid.yaml"))

		require.ErrorIs(t, res.err, ErrIssues)

		for _, want := range []string{
			"error Required parameter not found: make, manufacturer, brand (did you mean: maker?)",
			"error year Value (1800) is less than the minimum: 1886",
			"warn colour Value did not match one of the 5 expected options",
			"error price Value did not satisfy expression: value > 0",
			"error engine.cyl Value (32) is greater than the maximum: 16",
			`error owners[0].email Value failed "email" validation`,
			"error owners[1] Required property or field not found: name",
			"6 error(s), 1 warning(s), 0 info",
		} {
			assert.Contains(t, res.stderr, want)
		}
	})

	t.Run("check", func(t *testing.T) {
		res := execute(t, "", "check", m)

		require.NoError(t, res.err, res.stderr)
		assert.Contains(t, res.stdout, "ok (Car, Engine, Owner)")
	})
}
