package driver

import (
	"regexp"
	"strconv"
	"strings"
)

const directivePrefix = "#blur"

// Preprocess strips `#blur <v>` directive lines from source. The last
// directive with a parseable value wins and is returned; a directive without
// one is still removed.
func Preprocess(source string) (string, *float64) {
	var (
		kept  []string
		decay *float64
	)
	for _, line := range strings.Split(source, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != directivePrefix {
			kept = append(kept, strings.TrimSuffix(line, "\r"))
			continue
		}
		if len(fields) < 2 {
			continue
		}
		if v, err := strconv.ParseFloat(fields[1], 64); err == nil {
			decay = &v
		}
	}
	return strings.Join(kept, "\n"), decay
}

// LooksLikeProgram reports whether source defines the entry point, which
// decides between running it as a program or as bare statements.
func LooksLikeProgram(source string) bool {
	return strings.Contains(source, "blur()") || strings.Contains(source, "blur ()")
}

// WrapStatements turns bare statements into a program whose entry point runs
// them.
func WrapStatements(code string) string {
	return "void blur() { " + code + " }"
}

var functionHeader = regexp.MustCompile(`^\s*(int|float|bool|char|string|void)\s+[A-Za-z_][A-Za-z0-9_]*\s*\(`)

// LooksLikeFunction reports whether input starts with a function header such
// as `int add(`.
func LooksLikeFunction(input string) bool {
	return functionHeader.MatchString(input)
}

// BraceDepth counts unclosed braces, ignoring those inside string and char
// literals and comments.
func BraceDepth(input string) int {
	depth := 0
	inString, inChar, lineComment, blockComment := false, false, false, false
	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case lineComment:
			if c == '\n' {
				lineComment = false
			}
		case blockComment:
			if c == '*' && i+1 < len(input) && input[i+1] == '/' {
				blockComment = false
				i++
			}
		case inString || inChar:
			if c == '\\' {
				i++
				continue
			}
			if (inString && c == '"') || (inChar && c == '\'') {
				inString, inChar = false, false
			}
		case c == '/' && i+1 < len(input) && input[i+1] == '/':
			lineComment = true
			i++
		case c == '/' && i+1 < len(input) && input[i+1] == '*':
			blockComment = true
			i++
		case c == '"':
			inString = true
		case c == '\'':
			inChar = true
		case c == '{':
			depth++
		case c == '}':
			depth--
		}
	}
	return depth
}
