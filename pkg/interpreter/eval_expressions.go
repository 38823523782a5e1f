package interpreter

import (
	"fmt"
	"math"
	"strings"

	"blur/interpreter-go/pkg/ast"
	"blur/interpreter-go/pkg/runtime"
)

// equalityEpsilon is the tolerance of == and != on numeric coercions.
const equalityEpsilon = 1e-9

// maxRepeatLength bounds the text a string repeat may build in value context.
const maxRepeatLength = 1 << 26

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntValue{Val: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.CharLiteral:
		return runtime.CharValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.Identifier:
		cell, err := env.Lookup(n.Name)
		if err != nil {
			return nil, err
		}
		return cell.Get(i.decay.Value()), nil
	case *ast.IndexExpression:
		cell, err := i.resolveTarget(n, env)
		if err != nil {
			return nil, err
		}
		return cell.Get(i.decay.Value()), nil
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.UpdateExpression:
		return i.evaluateUpdateExpression(n, env)
	case *ast.AssignmentExpression:
		return i.evaluateAssignmentExpression(n, env)
	case *ast.StringRepeat:
		return i.evaluateStringRepeat(n, env)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n, env)
	case nil:
		return nil, runtime.InvalidOperation("missing expression")
	default:
		return nil, runtime.InvalidOperation(fmt.Sprintf("unsupported expression type: %s", n.NodeType()))
	}
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case ast.UnaryOperatorNegate:
		return runtime.FloatValue{Val: -runtime.ToFloat(operand)}, nil
	case ast.UnaryOperatorNot:
		return runtime.BoolValue{Val: !runtime.Truthy(operand)}, nil
	default:
		return nil, runtime.InvalidOperation(fmt.Sprintf("unsupported unary operator %s", expr.Operator))
	}
}

// evaluateBinaryExpression evaluates both operands, left first, before
// applying the operator; && and || do not short-circuit.
func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "&&":
		return runtime.BoolValue{Val: runtime.Truthy(left) && runtime.Truthy(right)}, nil
	case "||":
		return runtime.BoolValue{Val: runtime.Truthy(left) || runtime.Truthy(right)}, nil
	}
	l := runtime.ToFloat(left)
	r := runtime.ToFloat(right)
	switch expr.Operator {
	case "+", "-", "*", "/", "%":
		result, err := applyArithmetic(expr.Operator, l, r)
		if err != nil {
			return nil, err
		}
		return runtime.FloatValue{Val: result}, nil
	case "==":
		return runtime.BoolValue{Val: floatsEqual(l, r)}, nil
	case "!=":
		return runtime.BoolValue{Val: !floatsEqual(l, r)}, nil
	case "<":
		return runtime.BoolValue{Val: l < r}, nil
	case ">":
		return runtime.BoolValue{Val: l > r}, nil
	case "<=":
		return runtime.BoolValue{Val: l <= r}, nil
	case ">=":
		return runtime.BoolValue{Val: l >= r}, nil
	default:
		return nil, runtime.InvalidOperation(fmt.Sprintf("unsupported binary operator %s", expr.Operator))
	}
}

func applyArithmetic(op string, l, r float64) (float64, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, runtime.DivisionByZero()
		}
		return l / r, nil
	case "%":
		if r == 0 {
			return 0, runtime.DivisionByZero()
		}
		return math.Mod(l, r), nil
	default:
		return 0, runtime.InvalidOperation(fmt.Sprintf("unsupported arithmetic operator %s", op))
	}
}

func floatsEqual(l, r float64) bool {
	return math.Abs(l-r) < equalityEpsilon
}

var compoundOperators = map[ast.AssignmentOperator]string{
	ast.AssignmentAdd: "+",
	ast.AssignmentSub: "-",
	ast.AssignmentMul: "*",
	ast.AssignmentDiv: "/",
	ast.AssignmentMod: "%",
}

// evaluateAssignmentExpression pushes one sample into the target and yields
// its new projection. An element index is evaluated before the right side.
func (i *Interpreter) evaluateAssignmentExpression(expr *ast.AssignmentExpression, env *runtime.Environment) (runtime.Value, error) {
	ref, err := i.prepareTarget(expr.Left, env)
	if err != nil {
		return nil, err
	}
	decay := i.decay.Value()

	if expr.Operator == ast.AssignmentAssign {
		if rep, ok := expr.Right.(*ast.StringRepeat); ok {
			cell, err := ref.resolve(env)
			if err != nil {
				return nil, err
			}
			if cell.Type().Kind == ast.TypeString {
				count, err := i.repeatCount(rep, env)
				if err != nil {
					return nil, err
				}
				cell.PushStringRepeated(rep.Text.Value, count)
				return cell.Get(decay), nil
			}
		}
		val, err := i.evaluateExpression(expr.Right, env)
		if err != nil {
			return nil, err
		}
		cell, err := ref.resolve(env)
		if err != nil {
			return nil, err
		}
		cell.Store(val)
		return cell.Get(decay), nil
	}

	op, ok := compoundOperators[expr.Operator]
	if !ok {
		return nil, runtime.InvalidOperation(fmt.Sprintf("unsupported assignment operator %s", expr.Operator))
	}
	rhs, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	cell, err := ref.resolve(env)
	if err != nil {
		return nil, err
	}
	next, err := applyArithmetic(op, cell.Raw(decay), runtime.ToFloat(rhs))
	if err != nil {
		return nil, err
	}
	cell.Store(runtime.FloatValue{Val: next})
	return cell.Get(decay), nil
}

// evaluateUpdateExpression stores Raw()±1 the way compound assignment does,
// so bool cells record truthiness and string cells ignore the number. Prefix
// forms yield the projection after the store, postfix forms the one before.
func (i *Interpreter) evaluateUpdateExpression(expr *ast.UpdateExpression, env *runtime.Environment) (runtime.Value, error) {
	cell, err := i.resolveTarget(expr.Target, env)
	if err != nil {
		return nil, err
	}
	decay := i.decay.Value()
	delta := 1.0
	if expr.Operator == ast.UpdateDecrement {
		delta = -1
	}
	before := cell.Get(decay)
	cell.Store(runtime.FloatValue{Val: cell.Raw(decay) + delta})
	if expr.Prefix {
		return cell.Get(decay), nil
	}
	return before, nil
}

func (i *Interpreter) evaluateStringRepeat(rep *ast.StringRepeat, env *runtime.Environment) (runtime.Value, error) {
	count, err := i.repeatCount(rep, env)
	if err != nil {
		return nil, err
	}
	if count > 0 && len(rep.Text.Value) > maxRepeatLength/count {
		return nil, runtime.InvalidOperation(fmt.Sprintf("string repeat of %d copies is too long", count))
	}
	return runtime.StringValue{Val: strings.Repeat(rep.Text.Value, count)}, nil
}

// repeatCount truncates the count operand toward zero; negative and NaN
// counts mean zero copies.
func (i *Interpreter) repeatCount(rep *ast.StringRepeat, env *runtime.Environment) (int, error) {
	val, err := i.evaluateExpression(rep.Count, env)
	if err != nil {
		return 0, err
	}
	f := runtime.ToFloat(val)
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0, nil
	case f >= math.MaxInt32:
		return math.MaxInt32, nil
	}
	return int(f), nil
}

// targetRef names a history cell. For elements the index has already been
// evaluated; resolve performs the lookup and bounds check.
type targetRef struct {
	name    string
	index   int64
	element bool
}

func (r targetRef) resolve(env *runtime.Environment) (*runtime.HistoryValue, error) {
	if !r.element {
		return env.Lookup(r.name)
	}
	arr, err := env.LookupArray(r.name)
	if err != nil {
		return nil, err
	}
	return arr.At(r.index)
}

func (i *Interpreter) prepareTarget(target ast.AssignmentTarget, env *runtime.Environment) (targetRef, error) {
	switch t := target.(type) {
	case *ast.Identifier:
		return targetRef{name: t.Name}, nil
	case *ast.IndexExpression:
		val, err := i.evaluateExpression(t.Index, env)
		if err != nil {
			return targetRef{}, err
		}
		return targetRef{name: t.Array.Name, index: truncateIndex(runtime.ToFloat(val)), element: true}, nil
	case nil:
		return targetRef{}, runtime.InvalidOperation("missing assignment target")
	default:
		return targetRef{}, runtime.InvalidOperation(fmt.Sprintf("unsupported assignment target: %s", t.NodeType()))
	}
}

func (i *Interpreter) resolveTarget(target ast.AssignmentTarget, env *runtime.Environment) (*runtime.HistoryValue, error) {
	ref, err := i.prepareTarget(target, env)
	if err != nil {
		return nil, err
	}
	return ref.resolve(env)
}

// truncateIndex converts toward zero, saturating at the int64 range; NaN
// becomes 0.
func truncateIndex(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}
