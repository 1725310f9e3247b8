package statemod

import "time"

// EvaluatorLogEvent describes an expression evaluation attempt for logging.
// Getter is empty for ad-hoc Evaluate calls.
type EvaluatorLogEvent struct {
	Engine    string
	Expr      string
	Getter    string
	Namespace string
	Duration  time.Duration
	Err       error
}

// EvaluatorLogger records evaluator events.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

// LogEvaluation implements EvaluatorLogger.
func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopEvaluatorLogger struct{}

func (noopEvaluatorLogger) LogEvaluation(EvaluatorLogEvent) {}

// WithEvaluatorLogger attaches an evaluator logger to the module.
func WithEvaluatorLogger[S any](logger EvaluatorLogger) Option[S] {
	return func(cfg *moduleConfig[S]) {
		if logger == nil {
			cfg.logger = noopEvaluatorLogger{}
			return
		}
		cfg.logger = logger
	}
}
