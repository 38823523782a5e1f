package interpreter

import (
	"bytes"
	"strings"

	"blur/interpreter-go/pkg/parser"
)

// testingT captures the subset of testing.T used by fixture helpers.
type testingT interface {
	Helper()
	Fatalf(format string, args ...interface{})
}

// runFixture replays one YAML scenario on a fresh interpreter.
func runFixture(t testingT, path string) {
	t.Helper()
	fixture := readFixture(t, path)

	program, err := parser.ParseProgram(fixture.Source)
	if err != nil {
		if fixture.Expect.Error != "" && strings.Contains(err.Error(), fixture.Expect.Error) {
			return
		}
		t.Fatalf("%s: parse error: %v", path, err)
	}

	interp := New()
	if fixture.Decay != nil {
		interp.Decay().Set(*fixture.Decay)
	}
	var stdout, warnings bytes.Buffer
	interp.SetOutput(&stdout)
	interp.SetWarningOutput(&warnings)

	value, err := interp.Run(program)
	if fixture.Expect.Error != "" {
		if err == nil {
			t.Fatalf("%s: expected error containing %q", path, fixture.Expect.Error)
		}
		if !strings.Contains(err.Error(), fixture.Expect.Error) {
			t.Fatalf("%s: expected error containing %q, got %q", path, fixture.Expect.Error, err.Error())
		}
	} else if err != nil {
		t.Fatalf("%s: evaluation error: %v", path, err)
	}

	assertLines(t, path, "stdout", fixture.Expect.Stdout, splitLines(stdout.String()))
	assertLines(t, path, "warnings", fixture.Expect.Warnings, splitLines(warnings.String()))
	if fixture.Expect.Result != nil && err == nil {
		if got := valueToString(value); got != *fixture.Expect.Result {
			t.Fatalf("%s: expected result %q, got %q", path, *fixture.Expect.Result, got)
		}
	}
}

func splitLines(out string) []string {
	if out == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func assertLines(t testingT, path, stream string, want, got []string) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s: expected %s %q, got %q", path, stream, want, got)
	}
	for idx := range want {
		if want[idx] != got[idx] {
			t.Fatalf("%s: %s line %d: expected %q, got %q", path, stream, idx, want[idx], got[idx])
		}
	}
}
