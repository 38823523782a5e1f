package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func newTestSession() (*replSession, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return newReplSession(0.9, &out, &errOut), &out, &errOut
}

func feedAll(t *testing.T, s *replSession, lines ...string) bool {
	t.Helper()
	for _, line := range lines {
		if _, exit := s.feed(line); exit {
			return true
		}
	}
	return false
}

func TestReplEchoesExpressionValues(t *testing.T) {
	s, out, errOut := newTestSession()
	feedAll(t, s, "int money = 5;", "money = 6;", "print(money);", "money;")
	if errOut.Len() != 0 {
		t.Fatalf("unexpected errors %q", errOut.String())
	}
	if got, want := out.String(), "=> 6\n6\n=> 6\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestReplMultilineFunction(t *testing.T) {
	s, out, _ := newTestSession()
	if s.prompt() != promptMain {
		t.Fatalf("expected main prompt")
	}
	entry, _ := s.feed("int add(int a, int b) {")
	if entry != "" || s.prompt() != promptCont {
		t.Fatalf("expected continuation, got entry %q prompt %q", entry, s.prompt())
	}
	entry, _ = s.feed("  return a + b;")
	if entry != "" {
		t.Fatalf("expected continuation, got entry %q", entry)
	}
	entry, _ = s.feed("}")
	if entry != "int add(int a, int b) {   return a + b; }" {
		t.Fatalf("unexpected history entry %q", entry)
	}
	if s.prompt() != promptMain {
		t.Fatalf("expected main prompt after closing brace")
	}
	feedAll(t, s, "add(3, 4);")
	if got, want := out.String(), "Defined function: add\n=> 7\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestReplCancelClearsBuffer(t *testing.T) {
	s, out, _ := newTestSession()
	feedAll(t, s, "void f() {")
	s.cancel()
	if s.prompt() != promptMain {
		t.Fatalf("expected buffer to be cleared")
	}
	feedAll(t, s, "print(1);")
	if out.String() != "1\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestReplErrorsKeepSession(t *testing.T) {
	s, out, errOut := newTestSession()
	feedAll(t, s, "int x = ;", "print(y);", "int z = 2;", "z;")
	errs := errOut.String()
	if !strings.Contains(errs, "parse error: ") || !strings.Contains(errs, "runtime error: Undefined variable: y") {
		t.Fatalf("unexpected errors %q", errs)
	}
	if out.String() != "=> 2\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestReplCommands(t *testing.T) {
	s, out, errOut := newTestSession()
	feedAll(t, s, ".vars")
	feedAll(t, s, "int x = 5;", "x = 6;", "void blur() { print(\"ran\"); }")
	out.Reset()

	feedAll(t, s, ".vars")
	want := "Variables:\n  x = 6 (history: 2 values)\n\nFunctions:\n  blur()\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
	out.Reset()

	feedAll(t, s, ".blur", ".blur 0.5", ".blur 7", ".blur nope")
	if got, want := out.String(), "Blur factor: 0.9\nBlur factor set to: 0.5\nBlur factor set to: 1\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if !strings.Contains(errOut.String(), "Invalid blur value. Use a number 0.0-1.0") {
		t.Fatalf("expected invalid blur message, got %q", errOut.String())
	}
	out.Reset()
	errOut.Reset()

	feedAll(t, s, ".run", ".run missing", ".bogus")
	if out.String() != "ran\n" {
		t.Fatalf("unexpected run output %q", out.String())
	}
	errs := errOut.String()
	if !strings.Contains(errs, "Function 'missing' not defined.") || !strings.Contains(errs, "Unknown command: .bogus") {
		t.Fatalf("unexpected errors %q", errs)
	}
	out.Reset()

	feedAll(t, s, ".clear", ".vars")
	if got, want := out.String(), "State cleared.\nNo variables or functions defined.\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if s.interp.Decay().Value() != 1 {
		t.Fatalf("expected .clear to keep decay, got %v", s.interp.Decay().Value())
	}
}

func TestReplExit(t *testing.T) {
	for _, cmd := range []string{".exit", ".quit", ".q"} {
		s, out, _ := newTestSession()
		if !feedAll(t, s, cmd) {
			t.Fatalf("%s did not exit", cmd)
		}
		if out.String() != "Goodbye!\n" {
			t.Fatalf("unexpected output %q", out.String())
		}
	}
}

func TestReplLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.blur")
	writeFile(t, path, `#blur 0
int twice(int n) { return n * 2; }
void blur() { int x = 1; x = 3; print(twice(x)); }
`)
	s, out, errOut := newTestSession()
	feedAll(t, s, ".load "+path)
	if errOut.Len() != 0 {
		t.Fatalf("unexpected errors %q", errOut.String())
	}
	want := "SEARCHING FOR " + strings.ToUpper(path) + "\nLOADING\nFOUND: twice, blur\nREADY.\nRUN\n\n6\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestReplLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.blur")
	writeFile(t, bad, "void blur() { int x = ; }\n")
	failing := filepath.Join(dir, "fail.blur")
	writeFile(t, failing, "void blur() { print(nope); }\n")

	s, _, errOut := newTestSession()
	feedAll(t, s, ".load", ".load "+filepath.Join(dir, "absent.blur"), ".load "+bad, ".load "+failing)
	errs := errOut.String()
	for _, want := range []string{
		"SEARCHING FOR *\n?FILE NOT FOUND  ERROR\nUsage: .load <filename>\n",
		"?FILE NOT FOUND  ERROR\n?SYNTAX ERROR: line 1:",
		"?UNDEFINED VARIABLE: NOPE ERROR\n",
	} {
		if !strings.Contains(errs, want) {
			t.Fatalf("expected errors to contain %q, got %q", want, errs)
		}
	}
}
