package interpreter

import (
	"io"
	"os"
	"sort"

	"blur/interpreter-go/pkg/ast"
	"blur/interpreter-go/pkg/runtime"
)

// EntryPoint is the function Run invokes after registering a program.
const EntryPoint = "blur"

// plainForLimit caps the body executions of a non-sharp for loop.
const plainForLimit = 1000

// Interpreter executes Blur programs. Each instance owns its function
// registry, global scope and decay, so instances never interfere.
type Interpreter struct {
	global    *runtime.Environment
	functions map[string]*ast.FunctionDefinition
	decay     *runtime.Decay
	stdout    io.Writer
	warnings  io.Writer
}

// New returns an interpreter with an empty global scope and the default
// decay, printing to os.Stdout and warning on os.Stderr.
func New() *Interpreter {
	return &Interpreter{
		global:    runtime.NewEnvironment(nil),
		functions: make(map[string]*ast.FunctionDefinition),
		decay:     runtime.NewDecay(runtime.DefaultDecay),
		stdout:    os.Stdout,
		warnings:  os.Stderr,
	}
}

// SetOutput redirects print statements.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.stdout = w
}

// SetWarningOutput redirects non-fatal diagnostics such as the for-loop cap.
func (i *Interpreter) SetWarningOutput(w io.Writer) {
	i.warnings = w
}

// Decay exposes the weighting constant. Changes apply to the next read of
// any variable, including reads in a run that is already under way.
func (i *Interpreter) Decay() *runtime.Decay {
	return i.decay
}

// GlobalEnvironment returns the outermost scope.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Register adds fn to the registry, replacing any function of the same name.
func (i *Interpreter) Register(fn *ast.FunctionDefinition) {
	if fn == nil || fn.ID == nil {
		return
	}
	i.functions[fn.ID.Name] = fn
}

// HasFunction reports whether name is registered.
func (i *Interpreter) HasFunction(name string) bool {
	_, ok := i.functions[name]
	return ok
}

// FunctionNames lists registered functions in sorted order.
func (i *Interpreter) FunctionNames() []string {
	names := make([]string, 0, len(i.functions))
	for name := range i.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run registers every function of program and invokes blur() if present.
// Without an entry point the result is Void.
func (i *Interpreter) Run(program *ast.Program) (runtime.Value, error) {
	if program != nil {
		for _, fn := range program.Functions {
			i.Register(fn)
		}
	}
	if !i.HasFunction(EntryPoint) {
		return runtime.VoidValue{}, nil
	}
	return i.Call(EntryPoint)
}

// Call invokes a registered function with no arguments from the global scope.
func (i *Interpreter) Call(name string) (runtime.Value, error) {
	return i.callFunction(name, nil, i.global)
}

// Eval executes statements directly in the global scope, so declarations
// persist across calls. onValue receives the value of every expression
// statement that is not Void. A return statement ends the batch.
func (i *Interpreter) Eval(stmts []ast.Statement, onValue func(runtime.Value)) error {
	for _, stmt := range stmts {
		if exprStmt, ok := stmt.(*ast.ExpressionStatement); ok {
			val, err := i.evaluateExpression(exprStmt.Expression, i.global)
			if err != nil {
				return err
			}
			if onValue != nil && val.Kind() != runtime.KindVoid {
				onValue(val)
			}
			continue
		}
		res, err := i.evaluateStatement(stmt, i.global)
		if err != nil {
			return err
		}
		if res.returned {
			if onValue != nil && res.value.Kind() != runtime.KindVoid {
				onValue(res.value)
			}
			return nil
		}
	}
	return nil
}

// Reset drops every function and global binding. The decay is kept.
func (i *Interpreter) Reset() {
	i.global = runtime.NewEnvironment(nil)
	i.functions = make(map[string]*ast.FunctionDefinition)
}

// VariableInfo describes one global binding for inspection.
type VariableInfo struct {
	Name    string
	Type    ast.Type
	Value   runtime.Value
	Samples int
	Sharp   bool
}

// Variables lists global variables and arrays by name. Array entries carry
// no Value; Samples is the element count.
func (i *Interpreter) Variables() []VariableInfo {
	decay := i.decay.Value()
	var out []VariableInfo
	for name, cell := range i.global.Snapshot() {
		out = append(out, VariableInfo{
			Name:    name,
			Type:    cell.Type(),
			Value:   cell.Get(decay),
			Samples: cell.Len(),
			Sharp:   cell.Sharp(),
		})
	}
	for _, name := range i.global.ArrayKeys() {
		arr, err := i.global.LookupArray(name)
		if err != nil {
			continue
		}
		out = append(out, VariableInfo{
			Name:    name,
			Type:    ast.ArrayOf(arr.Elem, arr.Len()),
			Samples: arr.Len(),
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

// execResult is the control signal of statement execution. A returned result
// passes through blocks, loops and branches until the call boundary.
type execResult struct {
	returned bool
	value    runtime.Value
}

var proceed = execResult{}

func returnWith(v runtime.Value) execResult {
	return execResult{returned: true, value: v}
}
