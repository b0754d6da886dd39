package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runArgs(args ...string) (code int, stdout, stderr string) {
	var out, errb bytes.Buffer
	code = run(args, &out, &errb)
	return code, out.String(), errb.String()
}

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		args []string
		code int
		out  string
	}{
		{"simple", []string{"eval", "2 + 3"}, exitOK, "5\n"},
		{"args", []string{"eval", "$a * $b + $a", "5", "3"}, exitOK, "20\n"},
		{"fmt", []string{"eval", "--fmt", "%.2f", "1/3"}, exitOK, "0.33\n"},
		{"echo", []string{"eval", "--echo", "2 + 3"}, exitOK, "([2] + [3]) : 5\n"},
		{"seed", []string{"eval", "--seed", "7", "floor(random())"}, exitOK, "0\n"},
		{"div-zero", []string{"eval", "1 / 0"}, exitFormula, ""},
		{"unresolved", []string{"eval", "$a + $b", "1"}, exitFormula, ""},
		{"bad-arg", []string{"eval", "$a", "five"}, exitUsage, ""},
		{"no-formula", []string{"eval"}, exitUsage, ""},
		{"bad-command", []string{"frobnicate"}, exitUsage, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, out, errs := runArgs(c.args...)
			assert.Equal(t, c.code, code, "stderr: %s", errs)
			assert.Equal(t, c.out, out)
			if c.code != exitOK {
				assert.NotEmpty(t, errs)
			}
		})
	}
}

func TestEvalErrorMessage(t *testing.T) {
	_, _, errs := runArgs("eval", "1 / 0")
	assert.Contains(t, errs, "division by zero")
}

func TestEvalSeedRepeatable(t *testing.T) {
	_, a, _ := runArgs("eval", "--seed", "42", "random() + random()")
	_, b, _ := runArgs("eval", "--seed", "42", "random() + random()")
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
}

func TestExamples(t *testing.T) {
	code, out, errs := runArgs("examples")
	require.Equal(t, exitOK, code, "stderr: %s\nstdout: %s", errs, out)
	assert.NotContains(t, out, "FAIL")
	assert.Contains(t, out, "ok   2 + 3: 5\n")
	assert.Contains(t, out, "ok   sqrt($arg0) + $arg1 (16, 5): 9\n")
	assert.Contains(t, out, "ok   1 / 0: formula: column 3: division by zero\n")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
seed: 3
cases:
  - name: sum
    formula: "$x + $y"
    args: [1, 2]
    want: 3
  - name: zero
    formula: "1 / (2 - 2)"
    error: DivisionByZero
  - name: null
    error: NullFormula
  - formula: "random()"
`), 0o644))
	code, out, errs := runArgs("run", good)
	assert.Equal(t, exitOK, code, "stderr: %s", errs)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ok   sum: 3", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "ok   zero: "), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "ok   null: "), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "ok   case 4: "), lines[3])

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`
cases:
  - formula: "2 * 2"
    want: 5
  - formula: "2 * 2"
    error: UnknownToken
  - formula: "2 *"
`), 0o644))
	code, out, errs = runArgs("run", bad)
	assert.Equal(t, exitFormula, code)
	assert.Equal(t, 3, strings.Count(out, "FAIL"), out)
	assert.Contains(t, errs, "3 of 3 cases failed")

	code, _, _ = runArgs("run", filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, exitUsage, code)
}

func TestRunSeed(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "rand.yaml")
	require.NoError(t, os.WriteFile(name, []byte("seed: 9\ncases:\n  - formula: random()\n"), 0o644))
	_, a, _ := runArgs("run", name)
	_, b, _ := runArgs("run", name)
	assert.Equal(t, a, b)
	_, c, _ := runArgs("run", "--seed", "9", name)
	assert.Equal(t, a, c)
}

func TestParseArgs(t *testing.T) {
	vals, err := parseArgs([]string{"1", "-2.5", "1e3"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2.5, 1000}, vals)

	_, err = parseArgs([]string{"1", "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "argument 2")
}
