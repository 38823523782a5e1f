package interpreter

import (
	"blur/interpreter-go/pkg/ast"
	"blur/interpreter-go/pkg/runtime"
)

func builtinGetBlur(i *Interpreter, _ []ast.Expression, _ *runtime.Environment) (runtime.Value, error) {
	return runtime.FloatValue{Val: i.decay.Value()}, nil
}

// builtinBlurStr blends its text arguments in a throwaway string cell.
func builtinBlurStr(i *Interpreter, args []ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	cell := runtime.NewHistoryValue(ast.Simple(ast.TypeString))
	for _, arg := range args {
		if _, ok := arg.(*ast.StringRepeat); ok {
			if err := i.storeInitial(cell, arg, env); err != nil {
				return nil, err
			}
			continue
		}
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		// Only strings blend; other arguments are evaluated and dropped.
		if s, ok := val.(runtime.StringValue); ok {
			cell.PushString(s.Val)
		}
	}
	return cell.Get(i.decay.Value()), nil
}

func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	name := call.Callee.Name
	// Built-ins shadow user functions of the same name.
	switch name {
	case "get_blur":
		return builtinGetBlur(i, call.Arguments, env)
	case "blurstr":
		return builtinBlurStr(i, call.Arguments, env)
	}
	args := make([]*runtime.HistoryValue, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		cell, err := i.argumentCell(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, cell)
	}
	return i.callFunction(name, args, env)
}

// argumentCell deep-copies the history behind a variable or element
// argument. Any other argument becomes a fresh one-sample float cell.
func (i *Interpreter) argumentCell(arg ast.Expression, env *runtime.Environment) (*runtime.HistoryValue, error) {
	if target, ok := arg.(ast.AssignmentTarget); ok {
		cell, err := i.resolveTarget(target, env)
		if err != nil {
			return nil, err
		}
		return cell.Clone(), nil
	}
	val, err := i.evaluateExpression(arg, env)
	if err != nil {
		return nil, err
	}
	cell := runtime.NewHistoryValue(ast.Simple(ast.TypeFloat))
	cell.Push(runtime.ToFloat(val))
	return cell, nil
}

// callFunction binds args to the parameters in a scope pushed over the
// caller's and runs the body there. Missing arguments leave their parameter
// unbound; extra arguments are dropped.
func (i *Interpreter) callFunction(name string, args []*runtime.HistoryValue, env *runtime.Environment) (runtime.Value, error) {
	fn, ok := i.functions[name]
	if !ok {
		return nil, runtime.UndefinedFunction(name)
	}
	scope := env.Extend()
	for idx, param := range fn.Params {
		if idx >= len(args) {
			break
		}
		if param.ParamType.IsArray() {
			return nil, runtime.TypeMismatch("scalar parameter", param.ParamType.String())
		}
		scope.Declare(param.Name.Name, args[idx])
	}
	res, err := i.evaluateBlock(fn.Body, scope)
	if err != nil {
		return nil, err
	}
	if res.returned && res.value != nil {
		return res.value, nil
	}
	return runtime.VoidValue{}, nil
}
