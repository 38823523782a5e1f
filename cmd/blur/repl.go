package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"blur/interpreter-go/pkg/driver"
	"blur/interpreter-go/pkg/interpreter"
	"blur/interpreter-go/pkg/parser"
	"blur/interpreter-go/pkg/runtime"
)

const banner = `
  ____  _
 | __ )| |_   _ _ __
 |  _ \| | | | | '__|
 | |_) | | |_| | |
 |____/|_|\__,_|_|
`

const (
	promptMain = "blur> "
	promptCont = "...> "
)

const replHelp = `
REPL Commands:
    .help, .h          Show this help message
    .exit, .quit, .q   Exit the REPL
    .clear             Clear all variables and functions
    .vars              Show all defined variables and functions
    .blur [value]      Show or set the decay (0.0-1.0)
    .load <file>       Load a .blur file and run its blur()
    .run [func]        Run a function (default: blur)

Editing:
    Up/Down arrows     Navigate command history
    Ctrl-C             Cancel current input
    Ctrl-D             Exit the REPL

Examples:
    int x = 5;         Declare a variable
    x++;               Increment (adds to the history)
    x = 10;            Assign (blends with the history)
    print(x);          Print the value

    int add(int a, int b) { return a + b; }
                       Define a function
    add(3, 4);         Call it

Input stays open while braces are unbalanced. Variables persist between
inputs; .clear starts fresh.
`

func runREPL(cfg *driver.Config, decay float64) int {
	if cfg.ShowBanner() {
		fmt.Print(banner + "\n")
	}
	fmt.Printf("Blur REPL v%s\n", version)
	fmt.Println("Where every variable regresses to the mean.")
	fmt.Println("Type .help for commands, .exit to quit.")
	fmt.Println()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	session := newReplSession(decay, os.Stdout, os.Stderr)
	for {
		line, err := ln.Prompt(session.prompt())
		if errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println("^C")
			session.cancel()
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println("Goodbye!")
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			break
		}
		entry, exit := session.feed(line)
		if entry != "" {
			ln.AppendHistory(entry)
		}
		if exit {
			break
		}
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return 0
}

// replSession holds the interpreter and pending multi-line input of one REPL
// run, independent of the line editor feeding it.
type replSession struct {
	interp *interpreter.Interpreter
	out    io.Writer
	errOut io.Writer
	buffer strings.Builder
}

func newReplSession(decay float64, out, errOut io.Writer) *replSession {
	interp := interpreter.New()
	interp.Decay().Set(decay)
	interp.SetOutput(out)
	interp.SetWarningOutput(errOut)
	return &replSession{interp: interp, out: out, errOut: errOut}
}

func (s *replSession) prompt() string {
	if s.buffer.Len() > 0 {
		return promptCont
	}
	return promptMain
}

func (s *replSession) cancel() {
	s.buffer.Reset()
}

// feed consumes one input line. It returns the history entry to record, if
// any, and whether the REPL should exit.
func (s *replSession) feed(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if s.buffer.Len() == 0 && strings.HasPrefix(trimmed, ".") {
		return trimmed, s.command(trimmed)
	}

	s.buffer.WriteString(line)
	s.buffer.WriteByte('\n')
	if driver.BraceDepth(s.buffer.String()) > 0 {
		return "", false
	}
	input := strings.TrimSpace(s.buffer.String())
	s.buffer.Reset()
	if input == "" {
		return "", false
	}
	s.execute(input)
	return strings.ReplaceAll(input, "\n", " "), false
}

// execute registers function definitions, or runs statements in the
// persistent global scope and echoes their values.
func (s *replSession) execute(input string) {
	if driver.LooksLikeFunction(input) {
		program, err := parser.ParseProgram(input)
		if err != nil {
			fmt.Fprintf(s.errOut, "parse error: %v\n", err)
			return
		}
		for _, fn := range program.Functions {
			s.interp.Register(fn)
			fmt.Fprintf(s.out, "Defined function: %s\n", fn.ID.Name)
		}
		return
	}

	stmts, err := parser.ParseStatements(input)
	if err != nil {
		fmt.Fprintf(s.errOut, "parse error: %v\n", err)
		return
	}
	if err := s.interp.Eval(stmts, s.echo); err != nil {
		fmt.Fprintf(s.errOut, "runtime error: %v\n", err)
	}
}

func (s *replSession) echo(v runtime.Value) {
	fmt.Fprintf(s.out, "=> %s\n", interpreter.FormatValue(v))
}

// command runs a dot command and reports whether the REPL should exit.
func (s *replSession) command(line string) bool {
	parts := strings.SplitN(line, " ", 2)
	name := parts[0]
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}

	switch name {
	case ".exit", ".quit", ".q":
		fmt.Fprintln(s.out, "Goodbye!")
		return true
	case ".help", ".h":
		fmt.Fprint(s.out, replHelp)
	case ".clear":
		s.interp.Reset()
		fmt.Fprintln(s.out, "State cleared.")
	case ".vars":
		s.printVariables()
	case ".blur":
		s.blur(arg)
	case ".load":
		if arg == "" {
			fmt.Fprintln(s.errOut, "SEARCHING FOR *")
			fmt.Fprintln(s.errOut, "?FILE NOT FOUND  ERROR")
			fmt.Fprintln(s.errOut, "Usage: .load <filename>")
			return false
		}
		s.load(arg)
	case ".run":
		if arg == "" {
			arg = interpreter.EntryPoint
		}
		s.runFunction(arg)
	default:
		fmt.Fprintf(s.errOut, "Unknown command: %s\n", name)
		fmt.Fprintln(s.errOut, "Type .help for available commands.")
	}
	return false
}

func (s *replSession) blur(arg string) {
	decay := s.interp.Decay()
	if arg == "" {
		fmt.Fprintf(s.out, "Blur factor: %s\n", formatDecay(decay.Value()))
		return
	}
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		fmt.Fprintln(s.errOut, "Invalid blur value. Use a number 0.0-1.0")
		return
	}
	decay.Set(v)
	fmt.Fprintf(s.out, "Blur factor set to: %s\n", formatDecay(decay.Value()))
}

func formatDecay(v float64) string {
	return interpreter.FormatValue(runtime.FloatValue{Val: v})
}

// load reads a program file, registers its functions and runs blur() when
// one is defined.
func (s *replSession) load(filename string) {
	fmt.Fprintf(s.out, "SEARCHING FOR %s\n", strings.ToUpper(filename))
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(s.errOut, "?FILE NOT FOUND  ERROR")
		return
	}
	fmt.Fprintln(s.out, "LOADING")

	source, directive := driver.Preprocess(string(data))
	if directive != nil {
		s.interp.Decay().Set(*directive)
	}
	program, err := parser.ParseProgram(source)
	if err != nil {
		fmt.Fprintf(s.errOut, "?SYNTAX ERROR: %v\n", err)
		return
	}

	names := make([]string, 0, len(program.Functions))
	for _, fn := range program.Functions {
		s.interp.Register(fn)
		names = append(names, fn.ID.Name)
	}
	if len(names) > 0 {
		fmt.Fprintf(s.out, "FOUND: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintln(s.out, "READY.")

	if !s.interp.HasFunction(interpreter.EntryPoint) {
		return
	}
	fmt.Fprintln(s.out, "RUN")
	fmt.Fprintln(s.out)
	if _, err := s.interp.Call(interpreter.EntryPoint); err != nil {
		fmt.Fprintf(s.errOut, "?%s ERROR\n", strings.ToUpper(err.Error()))
	}
}

func (s *replSession) runFunction(name string) {
	if !s.interp.HasFunction(name) {
		fmt.Fprintf(s.errOut, "Function '%s' not defined.\n", name)
		return
	}
	val, err := s.interp.Call(name)
	if err != nil {
		fmt.Fprintf(s.errOut, "runtime error: %v\n", err)
		return
	}
	if val.Kind() != runtime.KindVoid {
		s.echo(val)
	}
}

func (s *replSession) printVariables() {
	vars := s.interp.Variables()
	funcs := s.interp.FunctionNames()
	if len(vars) == 0 && len(funcs) == 0 {
		fmt.Fprintln(s.out, "No variables or functions defined.")
		return
	}
	if len(vars) > 0 {
		fmt.Fprintln(s.out, "Variables:")
		for _, v := range vars {
			fmt.Fprintf(s.out, "  %s\n", v)
		}
	}
	if len(funcs) > 0 {
		if len(vars) > 0 {
			fmt.Fprintln(s.out)
		}
		fmt.Fprintln(s.out, "Functions:")
		for _, name := range funcs {
			fmt.Fprintf(s.out, "  %s()\n", name)
		}
	}
}
