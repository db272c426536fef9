package interpreter

import (
	"fmt"

	"loa/interpreter-go/pkg/ast"
	"loa/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.PrintStatement:
		return i.evaluatePrintStatement(n, env)
	case *ast.Assignment:
		return i.evaluateAssignment(n, env)
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, env)
	case *ast.WhileStatement:
		return i.evaluateWhileStatement(n, env)
	case *ast.FunctionDefinition:
		return i.evaluateFunctionDefinition(n, env)
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n, env)
	case *ast.BreakStatement:
		return nil, breakSignal{pos: n.Pos()}
	case *ast.ContinueStatement:
		return nil, continueSignal{pos: n.Pos()}
	case ast.Expression:
		return i.evaluateExpression(n, env)
	default:
		return nil, fmt.Errorf("unsupported statement type: %s", node.NodeType())
	}
}

// evaluateBlock runs the body statements directly in env. Loa scoping is
// per function, not per block, so loop and branch bodies see and mutate
// the enclosing bindings.
func (i *Interpreter) evaluateBlock(block *ast.Block, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.NilValue{}
	for _, stmt := range block.Statements {
		val, err := i.evaluateStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

// evaluatePrintStatement writes each argument on its own line.
func (i *Interpreter) evaluatePrintStatement(stmt *ast.PrintStatement, env *runtime.Environment) (runtime.Value, error) {
	for _, arg := range stmt.Arguments {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(i.out, valueToString(val))
	}
	return runtime.NilValue{}, nil
}

func (i *Interpreter) evaluateAssignment(stmt *ast.Assignment, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return nil, err
	}
	env.Set(stmt.Name.Name, val)
	return runtime.NilValue{}, nil
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, env *runtime.Environment) (runtime.Value, error) {
	for _, branch := range stmt.Branches {
		cond, err := i.evaluateExpression(branch.Condition, env)
		if err != nil {
			return nil, err
		}
		if isTruthy(cond) {
			return i.evaluateBlock(branch.Body, env)
		}
	}
	if stmt.ElseBlock != nil {
		return i.evaluateBlock(stmt.ElseBlock, env)
	}
	return runtime.NilValue{}, nil
}

func (i *Interpreter) evaluateWhileStatement(loop *ast.WhileStatement, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.NilValue{}
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return nil, err
		}
		if !isTruthy(cond) {
			return result, nil
		}
		val, err := i.evaluateBlock(loop.Body, env)
		if err != nil {
			switch err.(type) {
			case breakSignal:
				return result, nil
			case continueSignal:
				continue
			default:
				return nil, err
			}
		}
		result = val
	}
}

// evaluateFunctionDefinition binds the function in the defining scope.
// The closure is that same scope, so the binding is visible to the body
// and recursion works without special casing.
func (i *Interpreter) evaluateFunctionDefinition(def *ast.FunctionDefinition, env *runtime.Environment) (runtime.Value, error) {
	fn := &runtime.FunctionValue{Declaration: def, Closure: env}
	env.Define(def.Name.Name, fn)
	return runtime.NilValue{}, nil
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.NilValue{}
	if stmt.Value != nil {
		val, err := i.evaluateExpression(stmt.Value, env)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return nil, returnSignal{pos: stmt.Pos(), value: result}
}
