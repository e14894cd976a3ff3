package tablets

// Context is a context for evaluating trees: a configuration and the tablets
// that function nodes may call. Evaluation never modifies a Context, so one
// may be used from any number of goroutines at once, as long as nothing adds
// to its registry meanwhile.
type Context struct {
	cfg *Config
	reg *Registry
}

// NewContext creates an evaluation context. If cfg is nil, the default
// configuration is used. reg may be nil if no tablets are needed.
func NewContext(cfg *Config, reg *Registry) *Context {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Context{cfg: cfg, reg: reg}
}

// Config returns the configuration of the context.
func (ctx *Context) Config() *Config {
	return ctx.cfg
}

// Registry returns the tablets of the context.
func (ctx *Context) Registry() *Registry {
	return ctx.reg
}

// Eval evaluates a tree with the variable x bound to x.
//
// If the computation has no defined result, the error is a *DomainError.
// Trees that can't be evaluated at all produce a *NameError, *VariableError,
// *LiteralError, *OperatorError, or *DepthError. Both operands of an operator
// are always evaluated; when both fail, the worse error is reported.
func (ctx *Context) Eval(n *Node, x Decimal) (Decimal, error) {
	return ctx.eval(n, x, 0)
}

// Call applies the named tablet or primitive to x.
func (ctx *Context) Call(name string, x Decimal) (Decimal, error) {
	return ctx.call(name, x, 0)
}

func (ctx *Context) eval(n *Node, x Decimal, depth int) (Decimal, error) {
	if n == nil {
		return Decimal{}, nil
	}
	switch n.kind {
	case KindEmpty:
		return Decimal{}, nil
	case KindNum:
		return ParseDecimal(n.text)
	case KindVar:
		if n.text == "x" {
			return x, nil
		}
		v, err := ParseDecimal(n.text)
		if err != nil {
			return Decimal{}, &VariableError{Name: n.text}
		}
		return v, nil
	case KindParen:
		return ctx.eval(n.left, x, depth)
	case KindFun:
		v, err := ctx.eval(n.left, x, depth)
		if err != nil {
			return Decimal{}, err
		}
		for i := 0; i < n.repeat; i++ {
			v, err = ctx.call(n.text, v, depth)
			if err != nil {
				return Decimal{}, err
			}
		}
		return v, nil
	case KindOp:
		l, lerr := ctx.eval(n.left, x, depth)
		r, rerr := ctx.eval(n.right, x, depth)
		if err := worse(lerr, rerr); err != nil {
			return Decimal{}, err
		}
		switch n.op {
		case '+':
			return ctx.cfg.Add(l, r)
		case '-':
			return ctx.cfg.Sub(l, r)
		case '*':
			return ctx.cfg.Mul(l, r)
		case '/':
			return ctx.cfg.Quo(l, r)
		case '^':
			return ctx.cfg.Pow(l, r)
		default:
			return Decimal{}, &OperatorError{Op: n.op}
		}
	default:
		panic("tablets: invalid AST node " + n.kind.String())
	}
}

func (ctx *Context) call(name string, x Decimal, depth int) (Decimal, error) {
	if ctx.cfg.fast {
		if f := primitives[name]; f != nil {
			s := f(ctx.cfg, x)
			if s == degenerate {
				return Decimal{}, &DomainError{Op: name, X: x}
			}
			return ParseDecimal(s)
		}
	}
	root, ok := ctx.reg.Lookup(name)
	if !ok {
		return Decimal{}, &NameError{Name: name}
	}
	if ctx.cfg.depth > 0 && depth >= ctx.cfg.depth {
		return Decimal{}, &DepthError{Name: name, Depth: ctx.cfg.depth}
	}
	return ctx.eval(root, x, depth+1)
}

// worse picks the error to report from two operands. Program errors win over
// undefined results, and the left operand wins ties.
func worse(l, r error) error {
	switch {
	case l == nil:
		return r
	case r == nil, !Undefined(l):
		return l
	case !Undefined(r):
		return r
	default:
		return l
	}
}

// Eval is a shortcut to parse an expression and evaluate it at x with the
// tablets in reg.
func Eval(src string, x Decimal, reg *Registry, opts ...Option) (Decimal, error) {
	return NewContext(NewConfig(opts...), reg).Eval(Parse(src), x)
}
