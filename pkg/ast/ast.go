package ast

type NodeType string

const (
	NodeIdentifier           NodeType = "Identifier"
	NodeIntegerLiteral       NodeType = "IntegerLiteral"
	NodeFloatLiteral         NodeType = "FloatLiteral"
	NodeBooleanLiteral       NodeType = "BooleanLiteral"
	NodeCharLiteral          NodeType = "CharLiteral"
	NodeStringLiteral        NodeType = "StringLiteral"
	NodeIndexExpression      NodeType = "IndexExpression"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeUpdateExpression     NodeType = "UpdateExpression"
	NodeAssignmentExpression NodeType = "AssignmentExpression"
	NodeStringRepeat         NodeType = "StringRepeat"
	NodeFunctionCall         NodeType = "FunctionCall"
	NodeVariableDeclaration  NodeType = "VariableDeclaration"
	NodeArrayDeclaration     NodeType = "ArrayDeclaration"
	NodeIfStatement          NodeType = "IfStatement"
	NodeWhileLoop            NodeType = "WhileLoop"
	NodeForLoop              NodeType = "ForLoop"
	NodeBlockStatement       NodeType = "BlockStatement"
	NodeExpressionStatement  NodeType = "ExpressionStatement"
	NodePrintStatement       NodeType = "PrintStatement"
	NodeReturnStatement      NodeType = "ReturnStatement"
	NodeFunctionParameter    NodeType = "FunctionParameter"
	NodeFunctionDefinition   NodeType = "FunctionDefinition"
	NodeProgram              NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// AssignmentTarget is implemented by the nodes that name a history cell:
// plain identifiers and array element references.
type AssignmentTarget interface {
	Expression
	assignmentTargetNode()
}

type assignmentTargetMarker struct{}

func (assignmentTargetMarker) assignmentTargetNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker
	assignmentTargetMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type CharLiteral struct {
	nodeImpl
	expressionMarker

	Value rune `json:"value"`
}

func NewCharLiteral(value rune) *CharLiteral {
	return &CharLiteral{nodeImpl: newNodeImpl(NodeCharLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

// Expressions

// IndexExpression reads one element of a named array.
type IndexExpression struct {
	nodeImpl
	expressionMarker
	assignmentTargetMarker

	Array *Identifier `json:"array"`
	Index Expression  `json:"index"`
}

func NewIndexExpression(array *Identifier, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Array: array, Index: index}
}

type UnaryOperator string

const (
	UnaryOperatorNegate UnaryOperator = "-"
	UnaryOperatorNot    UnaryOperator = "!"
)

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type UpdateOperator string

const (
	UpdateIncrement UpdateOperator = "++"
	UpdateDecrement UpdateOperator = "--"
)

// UpdateExpression is ++/-- in prefix or postfix position.
type UpdateExpression struct {
	nodeImpl
	expressionMarker

	Operator UpdateOperator   `json:"operator"`
	Target   AssignmentTarget `json:"target"`
	Prefix   bool             `json:"prefix"`
}

func NewUpdateExpression(operator UpdateOperator, target AssignmentTarget, prefix bool) *UpdateExpression {
	return &UpdateExpression{nodeImpl: newNodeImpl(NodeUpdateExpression), Operator: operator, Target: target, Prefix: prefix}
}

type AssignmentOperator string

const (
	AssignmentAssign AssignmentOperator = "="
	AssignmentAdd    AssignmentOperator = "+="
	AssignmentSub    AssignmentOperator = "-="
	AssignmentMul    AssignmentOperator = "*="
	AssignmentDiv    AssignmentOperator = "/="
	AssignmentMod    AssignmentOperator = "%="
)

type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Operator AssignmentOperator `json:"operator"`
	Left     AssignmentTarget   `json:"left"`
	Right    Expression         `json:"right"`
}

func NewAssignmentExpression(operator AssignmentOperator, left AssignmentTarget, right Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Operator: operator, Left: left, Right: right}
}

// StringRepeat is `"text" * count`. The parser only produces it when the left
// operand is a string literal.
type StringRepeat struct {
	nodeImpl
	expressionMarker

	Text  *StringLiteral `json:"text"`
	Count Expression     `json:"count"`
}

func NewStringRepeat(text *StringLiteral, count Expression) *StringRepeat {
	return &StringRepeat{nodeImpl: newNodeImpl(NodeStringRepeat), Text: text, Count: count}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker

	Callee    *Identifier  `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee *Identifier, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

// Statements

type VariableDeclaration struct {
	nodeImpl
	statementMarker

	VarType Type        `json:"varType"`
	Name    *Identifier `json:"name"`
	Init    Expression  `json:"init,omitempty"`
}

func NewVariableDeclaration(varType Type, name *Identifier, init Expression) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), VarType: varType, Name: name, Init: init}
}

type ArrayDeclaration struct {
	nodeImpl
	statementMarker

	ElementType Type         `json:"elementType"`
	Name        *Identifier  `json:"name"`
	Size        int          `json:"size"`
	Elements    []Expression `json:"elements,omitempty"`
	HasInit     bool         `json:"hasInit"`
}

func NewArrayDeclaration(elementType Type, name *Identifier, size int, elements []Expression, hasInit bool) *ArrayDeclaration {
	return &ArrayDeclaration{nodeImpl: newNodeImpl(NodeArrayDeclaration), ElementType: elementType, Name: name, Size: size, Elements: elements, HasInit: hasInit}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition  Expression `json:"condition"`
	Consequent Statement  `json:"consequent"`
	Alternate  Statement  `json:"alternate,omitempty"`
}

func NewIfStatement(condition Expression, consequent, alternate Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Consequent: consequent, Alternate: alternate}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhileLoop(condition Expression, body Statement) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

// ForLoop covers both `for` and `sharp for`. Init, Condition and Update are
// optional.
type ForLoop struct {
	nodeImpl
	statementMarker

	Init      Statement  `json:"init,omitempty"`
	Condition Expression `json:"condition,omitempty"`
	Update    Expression `json:"update,omitempty"`
	Body      Statement  `json:"body"`
	Sharp     bool       `json:"sharp"`
}

func NewForLoop(init Statement, condition Expression, update Expression, body Statement, sharp bool) *ForLoop {
	return &ForLoop{nodeImpl: newNodeImpl(NodeForLoop), Init: init, Condition: condition, Update: update, Body: body, Sharp: sharp}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Arguments []Expression `json:"arguments"`
}

func NewPrintStatement(args []Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Arguments: args}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

// Functions and programs

type FunctionParameter struct {
	nodeImpl

	ParamType Type        `json:"paramType"`
	Name      *Identifier `json:"name"`
}

func NewFunctionParameter(paramType Type, name *Identifier) *FunctionParameter {
	return &FunctionParameter{nodeImpl: newNodeImpl(NodeFunctionParameter), ParamType: paramType, Name: name}
}

type FunctionDefinition struct {
	nodeImpl

	ID         *Identifier          `json:"id"`
	Params     []*FunctionParameter `json:"params"`
	ReturnType Type                 `json:"returnType"`
	Body       []Statement          `json:"body"`
}

func NewFunctionDefinition(id *Identifier, params []*FunctionParameter, returnType Type, body []Statement) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), ID: id, Params: params, ReturnType: returnType, Body: body}
}

// Program is the unit handed to the interpreter: functions in source order.
type Program struct {
	nodeImpl

	Functions []*FunctionDefinition `json:"functions"`
}

func NewProgram(functions []*FunctionDefinition) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Functions: functions}
}
