package visibility

// Evaluator decides whether an element is visible given its visibleIf rule
// and a set of sample answers.
type Evaluator interface {
	Eval(elementID, rule string, ctx Context) (bool, error)
}

// Context carries the inputs of an evaluation. Values holds answers keyed by
// question name; Extras lets callers inject anything else a rule may read
// through the `extras.` prefix.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(elementID, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(elementID, rule string, ctx Context) (bool, error) {
	return fn(elementID, rule, ctx)
}
