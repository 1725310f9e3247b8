package statemod

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapEvaluationErrorFillsMetadata(t *testing.T) {
	cause := errors.New("boom")
	err := wrapEvaluationError("expr", "count * 2", "cart", cause)

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Engine != "expr" || evalErr.Expr != "count * 2" || evalErr.Namespace != "cart" {
		t.Fatalf("unexpected metadata: %+v", evalErr)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped error to unwrap to cause")
	}
	if !strings.Contains(err.Error(), "statemod:") {
		t.Fatalf("expected statemod prefix, got %q", err.Error())
	}
}

func TestWrapEvaluationErrorPreservesExisting(t *testing.T) {
	original := &EvaluationError{Engine: "cel", Expr: "a", Namespace: "n", Err: errors.New("x")}
	err := wrapEvaluationError("expr", "b", "m", original)

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Engine != "cel" || evalErr.Expr != "a" || evalErr.Namespace != "n" {
		t.Fatalf("expected original metadata preserved, got %+v", evalErr)
	}
}

func TestWrapEvaluationErrorBackfillsEmptyFields(t *testing.T) {
	partial := &EvaluationError{Err: errors.New("x")}
	err := wrapEvaluationError("expr", "count", "cart", partial)

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Engine != "expr" || evalErr.Expr != "count" || evalErr.Namespace != "cart" {
		t.Fatalf("expected backfilled metadata, got %+v", evalErr)
	}
}

func TestWrapEvaluationErrorNil(t *testing.T) {
	if err := wrapEvaluationError("expr", "a", "b", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestWrapEvaluatorErrorSkipsPrefixed(t *testing.T) {
	prefixed := errors.New("statemod: already tagged")
	if got := wrapEvaluatorError("expr", prefixed); got != prefixed {
		t.Fatalf("expected prefixed error to pass through, got %v", got)
	}

	plain := errors.New("plain failure")
	got := wrapEvaluatorError("expr", plain)
	if !errors.Is(got, plain) {
		t.Fatal("expected wrapping to preserve the cause")
	}
	if !strings.HasPrefix(got.Error(), "statemod:") {
		t.Fatalf("expected statemod prefix, got %q", got.Error())
	}
}

func TestEvaluationErrorRendering(t *testing.T) {
	err := &EvaluationError{Engine: "expr", Namespace: "cart", Err: errors.New("bad")}
	if !strings.Contains(err.Error(), "expr=<empty>") {
		t.Fatalf("expected empty expression marker, got %q", err.Error())
	}

	var nilErr *EvaluationError
	if nilErr.Error() != "<nil>" {
		t.Fatalf("expected <nil>, got %q", nilErr.Error())
	}
	if nilErr.Unwrap() != nil {
		t.Fatal("expected nil unwrap")
	}
}
