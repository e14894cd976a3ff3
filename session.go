package tablets

import (
	"errors"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Session is one run of the calculator: a configuration, plus tablets defined
// by lines of the form NAME(x)=expr, ending with a call of the form
// NAME(value).
type Session struct {
	cfg *Config
	reg *Registry
}

// NewSession creates a session with no tablets.
func NewSession(opts ...Option) *Session {
	return &Session{cfg: NewConfig(opts...), reg: NewRegistry()}
}

// Config returns the current configuration. It changes when a leading
// DECIMAL_PLACES definition sets the budget.
func (s *Session) Config() *Config {
	return s.cfg
}

// Registry returns the tablets defined so far.
func (s *Session) Registry() *Registry {
	return s.reg
}

// Context returns an evaluation context over the session's tablets.
func (s *Session) Context() *Context {
	return NewContext(s.cfg, s.reg)
}

// ParseDefinition parses a line of the form NAME(x)=expr. The name ends at the
// first open bracket, and the body is everything after the first equals sign.
func ParseDefinition(line string) (Tablet, error) {
	head, body, ok := strings.Cut(line, "=")
	if !ok {
		return Tablet{}, &DefinitionError{Text: line}
	}
	name, param, ok := strings.Cut(head, "(")
	name = strings.TrimSpace(name)
	if !ok || !isName(name) || strings.Join(strings.Fields(param), "") != "x)" {
		return Tablet{}, &DefinitionError{Text: line}
	}
	return Tablet{Name: name, Root: Parse(body)}, nil
}

// Define adds a tablet from a line of the form NAME(x)=expr. If the line is
// the first definition and defines DECIMAL_PLACES as an integer, it also sets
// the session's fractional-digit budget, and with it the sentinel.
func (s *Session) Define(line string) error {
	t, err := ParseDefinition(line)
	if err != nil {
		return err
	}
	if t.Name == placesName && s.reg.Len() == 0 {
		d, ok := literalInt(t.Root)
		if !ok || d < 1 || d > MaxPlaces {
			return &DefinitionError{Text: line}
		}
		s.cfg = s.cfg.With(Places(d))
	}
	s.reg.Add(t)
	return nil
}

// literalInt returns the value of an integer literal node.
func literalInt(n *Node) (int, bool) {
	if n.Kind() != KindNum {
		return 0, false
	}
	v, err := ParseDecimal(n.Text())
	if err != nil {
		return 0, false
	}
	return v.toInt()
}

// Call evaluates a line of the form NAME(value). Malformed lines, values that
// aren't decimal literals, and undefined names produce a Diagnostic.
func (s *Session) Call(line string) (Decimal, error) {
	src := strings.TrimSpace(line)
	open := strings.IndexByte(src, '(')
	if open < 0 || !strings.HasSuffix(src, ")") {
		return Decimal{}, &CallError{Text: line}
	}
	name := strings.TrimSpace(src[:open])
	if !isName(name) {
		return Decimal{}, &CallError{Text: line}
	}
	if _, ok := s.reg.Lookup(name); !ok && !(s.cfg.fast && IsPrimitive(name)) {
		return Decimal{}, &FunctionError{Name: name, Suggestion: closest(name, s.reg.Names())}
	}
	arg := strings.TrimSpace(src[open+1 : len(src)-1])
	x, err := ParseDecimal(arg)
	if err != nil {
		return Decimal{}, &InputValueError{Text: arg}
	}
	return s.Context().Call(name, x)
}

// Render turns the result of a call into output: the canonical decimal,
// "Undefined" for a *DomainError, or the message of a Diagnostic. Any other
// error is returned.
func Render(v Decimal, err error) (string, error) {
	var diag Diagnostic
	switch {
	case err == nil:
		return v.String(), nil
	case Undefined(err):
		return "Undefined", nil
	case errors.As(err, &diag):
		return diag.Error(), nil
	default:
		return "", err
	}
}

// Run runs a script: every line but the last is a definition, and the last is
// a call. Blank lines are skipped. The result is the rendered output of the
// call, or of the first diagnostic.
func Run(lines []string, opts ...Option) (string, error) {
	var script []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			script = append(script, line)
		}
	}
	if len(script) == 0 {
		return Render(Decimal{}, &CallError{})
	}
	s := NewSession(opts...)
	for _, line := range script[:len(script)-1] {
		if err := s.Define(line); err != nil {
			return Render(Decimal{}, err)
		}
	}
	return Render(s.Call(script[len(script)-1]))
}

// isName reports whether s is a letter followed by letters, digits, and
// underscores.
func isName(s string) bool {
	if s == "" {
		return false
	}
	l := lex(s)
	return l.scanIdent() == s && len(l.src) == len([]rune(s))
}

// closest finds the defined name that best matches a missing one.
func closest(name string, names []string) string {
	ranks := fuzzy.RankFindFold(name, names)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
