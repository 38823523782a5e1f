package interpreter

import (
	"fmt"
	"strings"

	"blur/interpreter-go/pkg/ast"
	"blur/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (execResult, error) {
	switch n := node.(type) {
	case *ast.VariableDeclaration:
		return proceed, i.evaluateVariableDeclaration(n, env, false)
	case *ast.ArrayDeclaration:
		return proceed, i.evaluateArrayDeclaration(n, env)
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, env)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n, env)
	case *ast.ForLoop:
		return i.evaluateForLoop(n, env)
	case *ast.BlockStatement:
		return i.evaluateBlock(n.Body, env.Extend())
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression, env)
		return proceed, err
	case *ast.PrintStatement:
		return proceed, i.evaluatePrintStatement(n, env)
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n, env)
	case nil:
		return proceed, runtime.InvalidOperation("missing statement")
	default:
		return proceed, runtime.InvalidOperation(fmt.Sprintf("unsupported statement type: %s", n.NodeType()))
	}
}

// evaluateBlock runs body in scope, which the caller has already pushed.
func (i *Interpreter) evaluateBlock(body []ast.Statement, scope *runtime.Environment) (execResult, error) {
	for _, stmt := range body {
		res, err := i.evaluateStatement(stmt, scope)
		if err != nil || res.returned {
			return res, err
		}
	}
	return proceed, nil
}

func (i *Interpreter) evaluateVariableDeclaration(decl *ast.VariableDeclaration, env *runtime.Environment, sharp bool) error {
	if decl.VarType.IsArray() {
		return runtime.TypeMismatch("scalar type", decl.VarType.String())
	}
	var cell *runtime.HistoryValue
	if sharp {
		cell = runtime.NewSharpHistoryValue(decl.VarType)
	} else {
		cell = runtime.NewHistoryValue(decl.VarType)
	}
	if decl.Init != nil {
		if err := i.storeInitial(cell, decl.Init, env); err != nil {
			return err
		}
	}
	env.Declare(decl.Name.Name, cell)
	return nil
}

// storeInitial evaluates expr and pushes it into cell. A string repeat that
// feeds a string cell seeds one sample per repetition.
func (i *Interpreter) storeInitial(cell *runtime.HistoryValue, expr ast.Expression, env *runtime.Environment) error {
	if rep, ok := expr.(*ast.StringRepeat); ok && cell.Type().Kind == ast.TypeString {
		count, err := i.repeatCount(rep, env)
		if err != nil {
			return err
		}
		cell.PushStringRepeated(rep.Text.Value, count)
		return nil
	}
	val, err := i.evaluateExpression(expr, env)
	if err != nil {
		return err
	}
	cell.Store(val)
	return nil
}

func (i *Interpreter) evaluateArrayDeclaration(decl *ast.ArrayDeclaration, env *runtime.Environment) error {
	if decl.ElementType.IsArray() {
		return runtime.TypeMismatch("scalar element type", decl.ElementType.String())
	}
	arr := runtime.NewArray(decl.ElementType, decl.Size)
	for idx, expr := range decl.Elements {
		if idx >= arr.Len() {
			break
		}
		val, err := i.evaluateExpression(expr, env)
		if err != nil {
			return err
		}
		arr.Cells[idx].Store(val)
	}
	env.DeclareArray(decl.Name.Name, arr)
	return nil
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, env *runtime.Environment) (execResult, error) {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return proceed, err
	}
	if runtime.Truthy(cond) {
		return i.evaluateStatement(stmt.Consequent, env)
	}
	if stmt.Alternate != nil {
		return i.evaluateStatement(stmt.Alternate, env)
	}
	return proceed, nil
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop, env *runtime.Environment) (execResult, error) {
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return proceed, err
		}
		if !runtime.Truthy(cond) {
			return proceed, nil
		}
		res, err := i.evaluateStatement(loop.Body, env)
		if err != nil || res.returned {
			return res, err
		}
	}
}

// evaluateForLoop runs both loop flavours in a scope of their own. A plain
// loop stops with a warning instead of starting body number
// plainForLimit+1; a sharp loop has no cap and declares its init variables
// sharp.
func (i *Interpreter) evaluateForLoop(loop *ast.ForLoop, env *runtime.Environment) (execResult, error) {
	scope := env.Extend()
	if loop.Init != nil {
		if decl, ok := loop.Init.(*ast.VariableDeclaration); ok {
			if err := i.evaluateVariableDeclaration(decl, scope, loop.Sharp); err != nil {
				return proceed, err
			}
		} else {
			res, err := i.evaluateStatement(loop.Init, scope)
			if err != nil || res.returned {
				return res, err
			}
		}
	}

	iterations := 0
	for {
		if loop.Condition != nil {
			cond, err := i.evaluateExpression(loop.Condition, scope)
			if err != nil {
				return proceed, err
			}
			if !runtime.Truthy(cond) {
				return proceed, nil
			}
		}
		if !loop.Sharp && iterations >= plainForLimit {
			i.warnf("for loop hit %d iteration limit (use 'sharp for' for unlimited)", plainForLimit)
			return proceed, nil
		}
		iterations++

		res, err := i.evaluateStatement(loop.Body, scope)
		if err != nil || res.returned {
			return res, err
		}
		if loop.Update != nil {
			if _, err := i.evaluateExpression(loop.Update, scope); err != nil {
				return proceed, err
			}
		}
	}
}

func (i *Interpreter) evaluatePrintStatement(stmt *ast.PrintStatement, env *runtime.Environment) error {
	parts := make([]string, 0, len(stmt.Arguments))
	for _, arg := range stmt.Arguments {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return err
		}
		parts = append(parts, valueToString(val))
	}
	fmt.Fprintln(i.stdout, strings.Join(parts, " "))
	return nil
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement, env *runtime.Environment) (execResult, error) {
	if stmt.Argument == nil {
		return returnWith(runtime.VoidValue{}), nil
	}
	val, err := i.evaluateExpression(stmt.Argument, env)
	if err != nil {
		return proceed, err
	}
	return returnWith(val), nil
}

func (i *Interpreter) warnf(format string, args ...any) {
	if i.warnings == nil {
		return
	}
	fmt.Fprintf(i.warnings, "warning: "+format+"\n", args...)
}
