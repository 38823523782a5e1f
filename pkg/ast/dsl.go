package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Chr(value rune) *CharLiteral {
	return NewCharLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

// Type helpers.

var (
	TyInt    = Simple(TypeInt)
	TyFloat  = Simple(TypeFloat)
	TyBool   = Simple(TypeBool)
	TyChar   = Simple(TypeChar)
	TyString = Simple(TypeString)
	TyVoid   = Simple(TypeVoid)
)

// Expression helpers.

func Index(array string, index Expression) *IndexExpression {
	return NewIndexExpression(ID(array), index)
}

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Neg(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryOperatorNegate, operand)
}

func Not(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryOperatorNot, operand)
}

func PreInc(target AssignmentTarget) *UpdateExpression {
	return NewUpdateExpression(UpdateIncrement, target, true)
}

func PreDec(target AssignmentTarget) *UpdateExpression {
	return NewUpdateExpression(UpdateDecrement, target, true)
}

func PostInc(target AssignmentTarget) *UpdateExpression {
	return NewUpdateExpression(UpdateIncrement, target, false)
}

func PostDec(target AssignmentTarget) *UpdateExpression {
	return NewUpdateExpression(UpdateDecrement, target, false)
}

func Assign(target AssignmentTarget, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(AssignmentAssign, target, value)
}

func AssignOp(op AssignmentOperator, target AssignmentTarget, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(op, target, value)
}

func Repeat(text string, count Expression) *StringRepeat {
	return NewStringRepeat(Str(text), count)
}

func Call(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

// Statement helpers.

func Decl(varType Type, name string, init Expression) *VariableDeclaration {
	return NewVariableDeclaration(varType, ID(name), init)
}

func ArrDecl(elemType Type, name string, size int, elements ...Expression) *ArrayDeclaration {
	return NewArrayDeclaration(elemType, ID(name), size, elements, len(elements) > 0)
}

func If(cond Expression, then Statement, otherwise Statement) *IfStatement {
	return NewIfStatement(cond, then, otherwise)
}

func While(cond Expression, body Statement) *WhileLoop {
	return NewWhileLoop(cond, body)
}

func For(init Statement, cond Expression, update Expression, body Statement) *ForLoop {
	return NewForLoop(init, cond, update, body, false)
}

func SharpFor(init Statement, cond Expression, update Expression, body Statement) *ForLoop {
	return NewForLoop(init, cond, update, body, true)
}

func Block(body ...Statement) *BlockStatement {
	return NewBlockStatement(body)
}

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Print(args ...Expression) *PrintStatement {
	return NewPrintStatement(args)
}

func Ret(arg Expression) *ReturnStatement {
	return NewReturnStatement(arg)
}

// Definition helpers.

func Param(paramType Type, name string) *FunctionParameter {
	return NewFunctionParameter(paramType, ID(name))
}

func Fn(name string, params []*FunctionParameter, returnType Type, body ...Statement) *FunctionDefinition {
	return NewFunctionDefinition(ID(name), params, returnType, body)
}

func Prog(functions ...*FunctionDefinition) *Program {
	return NewProgram(functions)
}
