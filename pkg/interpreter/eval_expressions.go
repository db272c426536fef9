package interpreter

import (
	"fmt"

	"loa/interpreter-go/pkg/ast"
	"loa/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil
	case *ast.Identifier:
		val, ok := env.Get(n.Name)
		if !ok {
			return nil, undefinedVariable(n, env)
		}
		return val, nil
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.CallExpression:
		return i.evaluateCallExpression(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "!":
		return runtime.BoolValue{Val: !isTruthy(operand)}, nil
	case "-":
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, runtimeErrorf(ErrTypeMismatch, expr, "unary '-' requires a number, got %s", operand.Kind())
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator: %s", expr.Operator)
	}
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	// && and || short-circuit and yield the deciding operand.
	switch expr.Operator {
	case "&&":
		left, err := i.evaluateExpression(expr.Left, env)
		if err != nil {
			return nil, err
		}
		if !isTruthy(left) {
			return left, nil
		}
		return i.evaluateExpression(expr.Right, env)
	case "||":
		left, err := i.evaluateExpression(expr.Left, env)
		if err != nil {
			return nil, err
		}
		if isTruthy(left) {
			return left, nil
		}
		return i.evaluateExpression(expr.Right, env)
	}

	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case "^":
		return runtime.BoolValue{Val: isTruthy(left) != isTruthy(right)}, nil
	case "==":
		eq, err := valuesEqual(expr, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: eq}, nil
	case "!=":
		eq, err := valuesEqual(expr, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: !eq}, nil
	case "<", "<=", ">", ">=":
		return compareValues(expr, left, right)
	case "+":
		return addValues(expr, left, right)
	case "-", "*", "/":
		return arithmetic(expr, left, right)
	default:
		return nil, fmt.Errorf("unsupported binary operator: %s", expr.Operator)
	}
}

// valuesEqual implements == for same-kind operands. Mixed kinds are a
// type mismatch rather than silently unequal.
func valuesEqual(expr *ast.BinaryExpression, left, right runtime.Value) (bool, error) {
	if left.Kind() != right.Kind() {
		return false, runtimeErrorf(ErrTypeMismatch, expr, "cannot compare %s with %s", left.Kind(), right.Kind())
	}
	switch l := left.(type) {
	case runtime.NumberValue:
		return l.Val == right.(runtime.NumberValue).Val, nil
	case runtime.StringValue:
		return l.Val == right.(runtime.StringValue).Val, nil
	case runtime.BoolValue:
		return l.Val == right.(runtime.BoolValue).Val, nil
	case runtime.NilValue:
		return true, nil
	case *runtime.FunctionValue:
		return left == right, nil
	default:
		return false, fmt.Errorf("unsupported value kind: %s", left.Kind())
	}
}

func compareValues(expr *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.NumberValue:
		r, ok := right.(runtime.NumberValue)
		if !ok {
			break
		}
		return runtime.BoolValue{Val: numberCompare(expr.Operator, l.Val, r.Val)}, nil
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		if !ok {
			break
		}
		return runtime.BoolValue{Val: stringCompare(expr.Operator, l.Val, r.Val)}, nil
	}
	return nil, runtimeErrorf(ErrTypeMismatch, expr, "'%s' requires two numbers or two strings, got %s and %s",
		expr.Operator, left.Kind(), right.Kind())
}

func numberCompare(op string, a, b float64) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	default:
		return a >= b
	}
}

func stringCompare(op string, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	default:
		return a >= b
	}
}

// addValues adds numbers; when either operand is a string the other is
// rendered and the result is a concatenation.
func addValues(expr *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	if l, ok := left.(runtime.NumberValue); ok {
		if r, ok := right.(runtime.NumberValue); ok {
			return runtime.NumberValue{Val: l.Val + r.Val}, nil
		}
	}
	if left.Kind() == runtime.KindString || right.Kind() == runtime.KindString {
		return runtime.StringValue{Val: valueToString(left) + valueToString(right)}, nil
	}
	return nil, runtimeErrorf(ErrTypeMismatch, expr, "'+' requires numbers or a string operand, got %s and %s",
		left.Kind(), right.Kind())
}

func arithmetic(expr *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return nil, runtimeErrorf(ErrTypeMismatch, expr, "'%s' requires two numbers, got %s and %s",
			expr.Operator, left.Kind(), right.Kind())
	}
	switch expr.Operator {
	case "-":
		return runtime.NumberValue{Val: l.Val - r.Val}, nil
	case "*":
		return runtime.NumberValue{Val: l.Val * r.Val}, nil
	default:
		if r.Val == 0 {
			return nil, runtimeErrorf(ErrDivisionByZero, expr, "division by zero")
		}
		return runtime.NumberValue{Val: l.Val / r.Val}, nil
	}
}

func (i *Interpreter) evaluateCallExpression(call *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	callee, ok := env.Get(call.Callee.Name)
	if !ok {
		return nil, undefinedVariable(call.Callee, env)
	}
	fn, ok := callee.(*runtime.FunctionValue)
	if !ok {
		return nil, runtimeErrorf(ErrNotCallable, call, "'%s' is not a function, got %s", call.Callee.Name, callee.Kind())
	}

	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return i.callFunction(call, fn, args)
}

// callFunction binds arguments and runs the function body in a fresh
// scope extending the closure. Missing trailing arguments are filled
// from parameter defaults.
func (i *Interpreter) callFunction(call *ast.CallExpression, fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	def := fn.Declaration
	if len(args) > len(def.Params) {
		return nil, runtimeErrorf(ErrArityMismatch, call, "'%s' takes at most %d argument(s), got %d",
			def.Name.Name, len(def.Params), len(args))
	}

	callEnv := fn.Closure.Extend()
	for idx, param := range def.Params {
		if idx < len(args) {
			callEnv.Define(param.Name, args[idx])
			continue
		}
		if param.Default == nil {
			return nil, runtimeErrorf(ErrArityMismatch, call, "'%s' missing argument for parameter '%s'",
				def.Name.Name, param.Name)
		}
		callEnv.Define(param.Name, literalValue(param.Default))
	}

	_, err := i.evaluateBlock(def.Body, callEnv)
	if err != nil {
		switch sig := err.(type) {
		case returnSignal:
			return sig.value, nil
		case breakSignal:
			return nil, badSignal(sig.pos, "'break' outside a loop in '%s'", def.Name.Name)
		case continueSignal:
			return nil, badSignal(sig.pos, "'continue' outside a loop in '%s'", def.Name.Name)
		default:
			return nil, err
		}
	}
	return runtime.NilValue{}, nil
}

func literalValue(lit ast.Literal) runtime.Value {
	switch l := lit.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: l.Value}
	case *ast.StringLiteral:
		return runtime.StringValue{Val: l.Value}
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: l.Value}
	default:
		return runtime.NilValue{}
	}
}
