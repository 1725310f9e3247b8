package statemod

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoEvaluator = errors.New("statemod: evaluator not configured")

// Evaluate executes expr against the module's live state and getter view
// using the configured evaluator, defaulting to the expr engine.
func (m *Module[S]) Evaluate(expr string) (Response[any], error) {
	return m.EvaluateWith(RuleContext{}, expr)
}

// EvaluateWith executes expr using ctx, filling in the module's state, getter
// values and path when ctx leaves them unset.
func (m *Module[S]) EvaluateWith(ctx RuleContext, expr string) (Response[any], error) {
	if expr == "" {
		return Response[any]{}, fmt.Errorf("expression must not be empty")
	}
	evaluator, err := m.resolveEvaluator()
	if err != nil {
		return Response[any]{}, err
	}
	if ctx.State == nil {
		state, err := m.State()
		if err != nil {
			return Response[any]{}, err
		}
		ctx.State = state
	}
	if ctx.Getters == nil {
		view, err := m.Getters()
		if err != nil {
			return Response[any]{}, err
		}
		ctx.Getters = view.Values()
	}
	if ctx.Path == nil {
		ctx.Path = m.Path()
	}
	ctx = ctx.withDefaults()

	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	duration := time.Since(start)
	evalErr = wrapEvaluationError("", expr, ctx.namespaceLabel(), evalErr)
	m.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:    engine,
		Expr:      expr,
		Namespace: ctx.namespaceLabel(),
		Duration:  duration,
		Err:       evalErr,
	})
	if evalErr != nil {
		return Response[any]{}, evalErr
	}
	return Response[any]{Value: value}, nil
}

// exprGetterFunc adapts a registered expression getter to the store's
// accessor convention. Evaluation failures yield a nil value; the failure is
// visible through the module's evaluator logger.
func exprGetterFunc[S any](m *Module[S], name, expression string) func() any {
	return func() any {
		value, err := m.evaluateGetterExpr(name, expression)
		if err != nil {
			return nil
		}
		return value
	}
}

// evaluateGetterExpr runs a registered expression getter against the module's
// live state. The getter view is deliberately absent from the context so an
// expression cannot read itself.
func (m *Module[S]) evaluateGetterExpr(name, expression string) (any, error) {
	evaluator, err := m.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	state, err := m.State()
	if err != nil {
		return nil, err
	}
	ctx := RuleContext{State: state, Path: m.Path()}.withDefaults()

	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expression)
	duration := time.Since(start)
	evalErr = wrapEvaluationError("", expression, ctx.namespaceLabel(), evalErr)
	m.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:    engine,
		Expr:      expression,
		Getter:    name,
		Namespace: ctx.namespaceLabel(),
		Duration:  duration,
		Err:       evalErr,
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return value, nil
}

func (m *Module[S]) evaluatorLogger() EvaluatorLogger {
	if m.cfg.logger != nil {
		return m.cfg.logger
	}
	return noopEvaluatorLogger{}
}

func (m *Module[S]) resolveEvaluator() (Evaluator, error) {
	if m.cfg.evaluator != nil {
		return m.cfg.evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if cache := m.cfg.programCache; cache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cache))
	}
	if registry := m.cfg.functions; registry != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(registry))
	}
	defaultEvaluator := NewExprEvaluator(exprOpts...)
	if defaultEvaluator == nil {
		return nil, ErrNoEvaluator
	}
	m.cfg.evaluator = defaultEvaluator
	return defaultEvaluator, nil
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*statemod.exprEvaluator":
		return "expr"
	case "*statemod.celEvaluator":
		return "cel"
	case "*statemod.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}
