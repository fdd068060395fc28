package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vladocavric/survey-js/pkg/visibility"
)

// Expression is a parsed visibleIf rule.
//
// Supported syntax:
//   - references: `{name}` or a bare `name`
//   - comparisons: `=`, `==`, `!=`, `<>`, `<`, `<=`, `>`, `>=`
//   - emptiness: `{name} empty`, `{name} notempty`
//   - composition: `and`/`&&`, `or`/`||`, `not`/`!`, parentheses
//   - literals: quoted strings, numbers, true/false, null
//
// A bare reference evaluates to its truthiness.
type Expression struct {
	source string
	root   exprNode
	refs   []string
}

// Parse parses rule. An empty rule yields an expression that is always true.
func Parse(rule string) (*Expression, error) {
	trimmed := strings.TrimSpace(rule)
	out := &Expression{source: trimmed}
	if trimmed == "" {
		return out, nil
	}
	tokens, err := tokenize(trimmed)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return out, nil
	}
	stream := &tokenStream{tokens: tokens}
	root, err := parseOr(stream)
	if err != nil {
		return nil, err
	}
	if stream.pos < len(stream.tokens) {
		return nil, fmt.Errorf("visibility/expr: unexpected token %q", stream.tokens[stream.pos].raw)
	}
	out.root = root
	out.refs = stream.refs
	return out, nil
}

// String returns the trimmed source of the expression.
func (e *Expression) String() string { return e.source }

// References lists the identifiers the expression reads, in order of first
// appearance. References to extras are not included.
func (e *Expression) References() []string {
	return append([]string(nil), e.refs...)
}

// Eval evaluates the expression against ctx.
func (e *Expression) Eval(ctx visibility.Context) (bool, error) {
	if e == nil || e.root == nil {
		return true, nil
	}
	return e.root.eval(ctx)
}

// Evaluator implements visibility.Evaluator over parsed expressions.
type Evaluator struct{}

var _ visibility.Evaluator = (*Evaluator)(nil)

func New() *Evaluator { return &Evaluator{} }

func (e *Evaluator) Eval(elementID, rule string, ctx visibility.Context) (bool, error) {
	parsed, err := Parse(rule)
	if err != nil {
		return false, fmt.Errorf("%s: %w", elementID, err)
	}
	return parsed.Eval(ctx)
}

type exprNode interface {
	eval(ctx visibility.Context) (bool, error)
}

type exprOr struct {
	left  exprNode
	right exprNode
}

func (n exprOr) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.left.eval(ctx)
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}
	return n.right.eval(ctx)
}

type exprAnd struct {
	left  exprNode
	right exprNode
}

func (n exprAnd) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.left.eval(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return n.right.eval(ctx)
}

type exprNot struct {
	inner exprNode
}

func (n exprNot) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.inner.eval(ctx)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

type literalKind int

const (
	litString literalKind = iota
	litNumber
	litBool
	litNull
	litReference
)

type operand struct {
	kind literalKind
	raw  string
}

func (o operand) value(ctx visibility.Context) any {
	switch o.kind {
	case litReference:
		v, _ := lookup(ctx, o.raw)
		return v
	case litNull:
		return nil
	case litBool:
		return o.raw == "true"
	case litNumber:
		f, _ := strconv.ParseFloat(o.raw, 64)
		return f
	default:
		return o.raw
	}
}

type exprCompare struct {
	identifier string
	op         tokenKind
	right      operand
}

func (n exprCompare) eval(ctx visibility.Context) (bool, error) {
	left, _ := lookup(ctx, n.identifier)
	right := n.right.value(ctx)

	switch n.op {
	case tokenEq:
		return equal(left, right, n.right.kind), nil
	case tokenNeq:
		return !equal(left, right, n.right.kind), nil
	case tokenGt, tokenGte, tokenLt, tokenLte:
		l, lok := coerceNumber(left)
		r, rok := coerceNumber(right)
		if !lok || !rok {
			return false, nil
		}
		switch n.op {
		case tokenGt:
			return l > r, nil
		case tokenGte:
			return l >= r, nil
		case tokenLt:
			return l < r, nil
		default:
			return l <= r, nil
		}
	default:
		return false, fmt.Errorf("visibility/expr: unsupported operator for %q", n.identifier)
	}
}

func equal(left, right any, kind literalKind) bool {
	switch kind {
	case litNull:
		return left == nil
	case litBool:
		got, _ := coerceBool(left)
		return got == right.(bool)
	case litNumber:
		got, ok := coerceNumber(left)
		return ok && got == right.(float64)
	default:
		if right == nil {
			return left == nil
		}
		if want, ok := coerceNumber(right); ok {
			if got, ok := coerceNumber(left); ok {
				return got == want
			}
		}
		return coerceString(left) == coerceString(right)
	}
}

type exprEmpty struct {
	identifier string
	negate     bool
}

func (n exprEmpty) eval(ctx visibility.Context) (bool, error) {
	value, _ := lookup(ctx, n.identifier)
	empty := isEmpty(value)
	if n.negate {
		return !empty, nil
	}
	return empty, nil
}

// isEmpty treats a missing answer, blank text or an empty list as empty.
// Booleans and numbers are never empty.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

type exprTruthy struct {
	identifier string
}

func (n exprTruthy) eval(ctx visibility.Context) (bool, error) {
	value, ok := lookup(ctx, n.identifier)
	if !ok {
		return false, nil
	}
	return truthy(value), nil
}

type tokenStream struct {
	tokens []token
	pos    int
	refs   []string
}

func (s *tokenStream) reference(name string) {
	if strings.HasPrefix(strings.ToLower(name), "extras.") {
		return
	}
	for _, existing := range s.refs {
		if existing == name {
			return
		}
	}
	s.refs = append(s.refs, name)
}

func parseOr(stream *tokenStream) (exprNode, error) {
	left, err := parseAnd(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenOr) {
		right, err := parseAnd(stream)
		if err != nil {
			return nil, err
		}
		left = exprOr{left: left, right: right}
	}
	return left, nil
}

func parseAnd(stream *tokenStream) (exprNode, error) {
	left, err := parseUnary(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenAnd) {
		right, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		left = exprAnd{left: left, right: right}
	}
	return left, nil
}

func parseUnary(stream *tokenStream) (exprNode, error) {
	if stream.match(tokenNot) {
		inner, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		return exprNot{inner: inner}, nil
	}
	return parsePrimary(stream)
}

func parsePrimary(stream *tokenStream) (exprNode, error) {
	if stream.match(tokenLParen) {
		inner, err := parseOr(stream)
		if err != nil {
			return nil, err
		}
		if !stream.match(tokenRParen) {
			return nil, errors.New("visibility/expr: missing closing ')'")
		}
		return inner, nil
	}

	ident, ok := stream.consumeReference()
	if !ok {
		if stream.pos >= len(stream.tokens) {
			return nil, errors.New("visibility/expr: empty expression")
		}
		return nil, fmt.Errorf("visibility/expr: expected reference, got %q", stream.tokens[stream.pos].raw)
	}
	stream.reference(ident.raw)

	switch {
	case stream.match(tokenEmpty):
		return exprEmpty{identifier: ident.raw}, nil
	case stream.match(tokenNotEmpty):
		return exprEmpty{identifier: ident.raw, negate: true}, nil
	}
	for _, op := range []tokenKind{tokenEq, tokenNeq, tokenGt, tokenGte, tokenLt, tokenLte} {
		if !stream.match(op) {
			continue
		}
		right, err := stream.consumeOperand()
		if err != nil {
			return nil, err
		}
		return exprCompare{identifier: ident.raw, op: op, right: right}, nil
	}
	return exprTruthy{identifier: ident.raw}, nil
}

func (s *tokenStream) match(kind tokenKind) bool {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return false
	}
	s.pos++
	return true
}

func (s *tokenStream) consumeReference() (token, bool) {
	if s.pos >= len(s.tokens) {
		return token{}, false
	}
	tok := s.tokens[s.pos]
	if tok.kind != tokenReference && tok.kind != tokenIdentifier {
		return token{}, false
	}
	s.pos++
	return tok, true
}

func (s *tokenStream) consumeOperand() (operand, error) {
	if s.pos >= len(s.tokens) {
		return operand{}, errors.New("visibility/expr: missing operand")
	}
	tok := s.tokens[s.pos]
	s.pos++
	switch tok.kind {
	case tokenString:
		return operand{kind: litString, raw: tok.raw}, nil
	case tokenNumber:
		return operand{kind: litNumber, raw: tok.raw}, nil
	case tokenBool:
		return operand{kind: litBool, raw: tok.raw}, nil
	case tokenNull:
		return operand{kind: litNull}, nil
	case tokenReference:
		s.reference(tok.raw)
		return operand{kind: litReference, raw: tok.raw}, nil
	case tokenIdentifier:
		// Bare words on the right are strings, not references.
		return operand{kind: litString, raw: tok.raw}, nil
	default:
		return operand{}, fmt.Errorf("visibility/expr: expected operand, got %q", tok.raw)
	}
}

func lookup(ctx visibility.Context, key string) (any, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false
	}
	if strings.HasPrefix(strings.ToLower(key), "extras.") {
		return lookupMap(ctx.Extras, strings.TrimSpace(key[len("extras."):]))
	}
	return lookupMap(ctx.Values, key)
}

func lookupMap(values map[string]any, path string) (any, bool) {
	if len(values) == 0 || path == "" {
		return nil, false
	}
	// Generated names contain a dot, so the exact key wins over traversal.
	if v, ok := values[path]; ok {
		return v, true
	}
	var current any = values
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := m[part]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func coerceBool(value any) (bool, bool) {
	switch v := value.(type) {
	case nil:
		return false, false
	case bool:
		return v, true
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed, true
		}
		return strings.TrimSpace(v) != "", true
	default:
		return truthy(value), true
	}
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(value)
	}
}
