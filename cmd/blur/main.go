package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"blur/interpreter-go/pkg/driver"
	"blur/interpreter-go/pkg/interpreter"
	"blur/interpreter-go/pkg/parser"
	"blur/interpreter-go/pkg/runtime"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	args, flagDecay, err := extractBlurFlag(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	args, configPath, err := extractConfigFlag(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	decay := runtime.DefaultDecay
	if cfg != nil && cfg.Decay != nil {
		decay = *cfg.Decay
	}
	if flagDecay != nil {
		decay = *flagDecay
	}

	if len(args) == 0 {
		return runREPL(cfg, decay)
	}

	switch args[0] {
	case "-h", "--help":
		printUsage(os.Stdout)
		return 0
	case "-v", "--version":
		fmt.Fprintf(os.Stdout, "blur %s\n", version)
		return 0
	case "-i", "--repl":
		return runREPL(cfg, decay)
	case "-e":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "error: -e requires code argument")
			fmt.Fprintln(os.Stderr, `usage: blur -e "int x = 5; print(x);"`)
			return 1
		}
		return runStatements(args[1], decay)
	case "-":
		return runStdin(decay)
	default:
		return runFile(args[0], decay)
	}
}

// extractBlurFlag pulls every `--blur <v>` pair out of args, wherever it
// appears. The last one wins.
func extractBlurFlag(args []string) ([]string, *float64, error) {
	var (
		rest  []string
		decay *float64
	)
	for i := 0; i < len(args); i++ {
		if args[i] != "--blur" {
			rest = append(rest, args[i])
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, errors.New("--blur requires a value (0.0-1.0)")
		}
		v, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return nil, nil, errors.New("--blur value must be a number (0.0-1.0)")
		}
		decay = &v
		i++
	}
	return rest, decay, nil
}

func extractConfigFlag(args []string) ([]string, string, error) {
	var (
		rest []string
		path string
	)
	for i := 0; i < len(args); i++ {
		if args[i] != "--config" {
			rest = append(rest, args[i])
			continue
		}
		if i+1 >= len(args) {
			return nil, "", errors.New("--config requires a path")
		}
		path = args[i+1]
		i++
	}
	return rest, path, nil
}

// loadConfig reads the explicit config path, or the nearest blur.yml above
// the working directory. Having no config at all is fine.
func loadConfig(path string) (*driver.Config, error) {
	if path != "" {
		return driver.LoadConfig(path)
	}
	found, err := driver.FindConfig(".")
	if err != nil {
		if errors.Is(err, driver.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return driver.LoadConfig(found)
}

func runFile(path string, decay float64) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading file '%s': %v\n", path, err)
		return 1
	}
	return runProgram(string(data), decay)
}

func runStatements(code string, decay float64) int {
	source, directive := driver.Preprocess(code)
	if directive != nil {
		decay = *directive
	}
	return runProgram(driver.WrapStatements(source), decay)
}

func runStdin(decay float64) int {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading stdin: %v\n", err)
		return 1
	}
	source := string(data)
	if driver.LooksLikeProgram(source) {
		return runProgram(source, decay)
	}
	return runStatements(source, decay)
}

// runProgram applies any #blur directive, parses source and runs blur().
func runProgram(source string, decay float64) int {
	source, directive := driver.Preprocess(source)
	if directive != nil {
		decay = *directive
	}
	program, err := parser.ParseProgram(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		return 1
	}
	interp := interpreter.New()
	interp.Decay().Set(decay)
	if _, err := interp.Run(program); err != nil {
		fmt.Fprintf(os.Stderr, "runtime error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `blur - The Blur Programming Language Interpreter v%s

Every variable holds the decay-weighted average of all values it has ever
been assigned.

Usage:
  blur                    Start the REPL
  blur <file.blur>        Run a Blur program
  blur -e "code"          Run statements directly (no blur() needed)
  blur -                  Read a program or statements from stdin

Options:
  -h, --help              Print this help message
  -v, --version           Print version information
  -i, --repl              Start the REPL
  -e <code>               Run statements directly
  --blur <0.0-1.0>        Decay applied to older samples (default %s)
                            1.0 = plain average of the whole history
                            0.0 = only the most recent value counts
  --config <path>         Read settings from this blur.yml

Source files may set the decay with a line of the form "#blur 0.5".

Examples:
  blur -e "int x = 5; x++; x = 10; print(x);"
  echo "int x = 5; print(x);" | blur -

  sharp for (int i = 0; i < 10; i++) { ... }
    The counter of a sharp loop keeps only its latest value.
`, version, strconv.FormatFloat(runtime.DefaultDecay, 'f', -1, 64))
}
