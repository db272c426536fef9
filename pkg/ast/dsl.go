package ast

// Compact builders used by tests and by hosts constructing programs
// directly.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Nil() *NilLiteral {
	return NewNilLiteral()
}

func Un(operator string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Call(name string, args ...Expression) *CallExpression {
	return NewCallExpression(ID(name), args)
}

func Body(statements ...Statement) *Block {
	return NewBlock(statements)
}

func Print(args ...Expression) *PrintStatement {
	return NewPrintStatement(args)
}

func Assign(name string, value Expression) *Assignment {
	return NewAssignment(ID(name), value)
}

func Branch(condition Expression, body ...Statement) *IfBranch {
	return NewIfBranch(condition, NewBlock(body))
}

func If(branches []*IfBranch, elseBody ...Statement) *IfStatement {
	var elseBlock *Block
	if len(elseBody) > 0 {
		elseBlock = NewBlock(elseBody)
	}
	return NewIfStatement(branches, elseBlock)
}

func While(condition Expression, body ...Statement) *WhileStatement {
	return NewWhileStatement(condition, NewBlock(body))
}

func Param(name string) *Parameter {
	return NewParameter(name, nil)
}

func ParamDef(name string, def Literal) *Parameter {
	return NewParameter(name, def)
}

func Fun(name string, params []*Parameter, body ...Statement) *FunctionDefinition {
	return NewFunctionDefinition(ID(name), params, NewBlock(body))
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(value)
}

func Brk() *BreakStatement {
	return NewBreakStatement()
}

func Cont() *ContinueStatement {
	return NewContinueStatement()
}

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}
