package driver

import "testing"

func TestPreprocess(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
		decay  *float64
	}{
		{"no directive", "void blur() {}", "void blur() {}", nil},
		{"directive removed", "#blur 0.5\nvoid blur() {}", "void blur() {}", floatPtr(0.5)},
		{"indented directive", "  #blur 0\nint x;", "int x;", floatPtr(0)},
		{"last directive wins", "#blur 0.2\n#blur 0.7\nx;", "x;", floatPtr(0.7)},
		{"bad value still removed", "#blur fast\nx;", "x;", nil},
		{"bare directive removed", "#blur\nx;", "x;", nil},
		{"longer word is not a directive", "#blurry 3\nx;", "#blurry 3\nx;", nil},
		{"glued value is not a directive", "#blur0.5\nx;", "#blur0.5\nx;", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, decay := Preprocess(tc.source)
			if got != tc.want {
				t.Fatalf("expected source %q, got %q", tc.want, got)
			}
			switch {
			case tc.decay == nil && decay != nil:
				t.Fatalf("expected no decay, got %v", *decay)
			case tc.decay != nil && (decay == nil || *decay != *tc.decay):
				t.Fatalf("expected decay %v, got %v", *tc.decay, decay)
			}
		})
	}
}

func TestLooksLikeProgram(t *testing.T) {
	if !LooksLikeProgram("void blur() { }") || !LooksLikeProgram("void blur () { }") {
		t.Fatalf("expected entry point to be detected")
	}
	if LooksLikeProgram("int x = 5; print(x);") {
		t.Fatalf("statements detected as program")
	}
}

func TestWrapStatements(t *testing.T) {
	if got := WrapStatements("print(1);"); got != "void blur() { print(1); }" {
		t.Fatalf("unexpected wrap %q", got)
	}
}

func TestLooksLikeFunction(t *testing.T) {
	cases := map[string]bool{
		"int add(int a, int b) { return a + b; }": true,
		"  void blur() {":                         true,
		"string greet (":                          true,
		"int x = 5;":                              false,
		"add(3, 4);":                              false,
		"integer(":                                false,
	}
	for input, want := range cases {
		if got := LooksLikeFunction(input); got != want {
			t.Fatalf("LooksLikeFunction(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestBraceDepth(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"void f() {", 1},
		{"void f() { if (x) {", 2},
		{"void f() { }", 0},
		{`print("{");`, 0},
		{`char c = '{';`, 0},
		{"// {\nint x;", 0},
		{"/* { */ {", 1},
		{`print("\"{");`, 0},
		{"}", -1},
	}
	for _, tc := range cases {
		if got := BraceDepth(tc.input); got != tc.want {
			t.Fatalf("BraceDepth(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
