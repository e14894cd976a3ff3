package tablets_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/zephyrtronium/tablets"
)

func TestEval(t *testing.T) {
	type xr struct {
		x, r string
	}
	cases := []struct {
		name string
		src  string
		r    []xr
	}{
		{"num", "1", []xr{{"0", "1"}}},
		{"trim", "1.50", []xr{{"0", "1.5"}}},
		{"neg-zero", "-0", []xr{{"0", "0"}}},
		{"empty", "", []xr{{"7", "0"}}},
		{"lenient", "1+", []xr{{"0", "1"}}},
		{"garbage", "2$3", []xr{{"0", "2"}}},
		{"ident", "x", []xr{{"4", "4"}, {"-4.5", "-4.5"}, {"0.000001", "0.000001"}}},
		{"plus", "+x", []xr{{"4", "4"}}},
		{"neg", "-x", []xr{{"4", "-4"}, {"-4", "4"}, {"0", "0"}}},
		{"precedence", "1+2*3", []xr{{"0", "7"}}},
		{"paren", "(1+2)*3", []xr{{"0", "9"}}},
		{"sub", "4-5-6", []xr{{"0", "-7"}}},
		{"div", "10/4", []xr{{"0", "2.5"}}},
		{"div-chain", "8/4/2", []xr{{"0", "1"}}},
		{"pow", "2^2^3", []xr{{"0", "256"}}},
		{"pow-grouped", "(2^2)^3", []xr{{"0", "64"}}},
		{"pow-neg-exp", "2^-2", []xr{{"0", "0.25"}}},
		{"pow-neg-base", "(-1)^2", []xr{{"0", "1"}}},
		{"pow-neg-literal", "-2^2", []xr{{"0", "4"}}},
		{"pow-zero-base", "0^2", []xr{{"0", "0"}}},
		{"sqrt", "x^0.5", []xr{{"4", "2"}, {"2.25", "1.5"}, {"0.0001", "0.01"}}},
		{"abs", "(x^2)^(1/2)", []xr{{"3", "3"}, {"-3", "3"}, {"-0.0024", "0.0024"}, {"11.9", "11.9"}}},
		{"square", "x^2", []xr{{"-3", "9"}, {"0.1", "0.01"}}},
		{"exact", "0.1+0.2", []xr{{"0", "0.3"}}},
		{"small", "10^-27", []xr{{"0", "0.000000000000000000000000001"}}},
		{"div-zero", "1/0", []xr{{"0", "Undefined"}}},
		{"div-zero-var", "x/(x-x)", []xr{{"3", "Undefined"}}},
		{"zero-pow-zero", "0^0", []xr{{"0", "Undefined"}}},
		{"zero-pow-neg", "0^-1", []xr{{"0", "Undefined"}}},
		{"neg-pow-frac", "(-1)^0.5", []xr{{"0", "Undefined"}}},
		{"neg-pow-frac-var", "x^(1/2)", []xr{{"-4", "Undefined"}, {"4", "2"}}},
		{"overflow", "10^10000", []xr{{"0", "Undefined"}}},
		{"underflow", "0.5^999999999", []xr{{"0", "0"}}},
		{"underflow-small", "0.5^5000", []xr{{"0", "0"}}},
		{"underflow-neg-exp", "x^-999999999", []xr{{"2", "0"}, {"-2", "0"}, {"0.5", "Undefined"}}},
		{"undefined-propagates", "1+2*(3/(x-1))", []xr{{"1", "Undefined"}, {"2", "7"}}},
	}
	ctx := tablets.NewContext(nil, nil)
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			a := tablets.Parse(c.src)
			for _, v := range c.r {
				got, err := tablets.Render(ctx.Eval(a, tablets.MustParse(v.x)))
				if err != nil {
					t.Errorf("%q at x=%s: unexpected error %v", c.src, v.x, err)
					continue
				}
				if got != v.r {
					t.Errorf("%q at x=%s: want %s, got %s", c.src, v.x, v.r, got)
				}
			}
		})
	}
}

func TestEvalDomainError(t *testing.T) {
	cases := []struct {
		src  string
		op   string
		x, y string
		msg  string
	}{
		{"1/0", "/", "1", "0", "undefined: 1 / 0"},
		{"0^0", "^", "0", "0", "undefined: 0 ^ 0"},
		{"(-8)^(1/3)", "^", "-8", "", ""},
		{"1/0+0^0", "/", "1", "0", ""},
	}
	ctx := tablets.NewContext(nil, nil)
	for _, c := range cases {
		_, err := ctx.Eval(tablets.Parse(c.src), tablets.Decimal{})
		var d *tablets.DomainError
		if !errors.As(err, &d) {
			t.Errorf("%q gave %#v, not a DomainError", c.src, err)
			continue
		}
		if !tablets.Undefined(err) {
			t.Errorf("%q gave DomainError but isn't Undefined", c.src)
		}
		if d.Op != c.op || d.X.String() != c.x {
			t.Errorf("%q gave wrong error: want %s with x=%s, got %s with x=%v", c.src, c.op, c.x, d.Op, d.X)
		}
		if c.y != "" && d.Y.String() != c.y {
			t.Errorf("%q gave wrong error: want y=%s, got %v", c.src, c.y, d.Y)
		}
		if c.msg != "" && err.Error() != c.msg {
			t.Errorf("%q gave wrong message: want %q, got %q", c.src, c.msg, err.Error())
		}
	}
}

func TestEvalFatal(t *testing.T) {
	reg := tablets.NewRegistry().Define("f", tablets.Parse("x+1"))
	cases := []struct {
		name string
		n    *tablets.Node
		// check reports whether the error is the right one.
		check func(error) bool
	}{
		{
			"variable",
			tablets.Parse("y"),
			func(err error) bool {
				var e *tablets.VariableError
				return errors.As(err, &e) && e.Name == "y"
			},
		},
		{
			"name",
			tablets.Parse("g(x)"),
			func(err error) bool {
				var e *tablets.NameError
				return errors.As(err, &e) && e.Name == "g"
			},
		},
		{
			"name-inside-tablet",
			tablets.Parse("f(g(x))"),
			func(err error) bool {
				var e *tablets.NameError
				return errors.As(err, &e) && e.Name == "g"
			},
		},
		{
			"operator",
			tablets.Op('%', tablets.Num("1"), tablets.Num("2")),
			func(err error) bool {
				var e *tablets.OperatorError
				return errors.As(err, &e) && e.Op == '%'
			},
		},
		{
			"literal",
			tablets.Num("1.2.3"),
			func(err error) bool {
				var e *tablets.LiteralError
				return errors.As(err, &e) && e.Text == "1.2.3"
			},
		},
		{
			"fatal-beats-undefined-left",
			tablets.Parse("y/0"),
			func(err error) bool {
				var e *tablets.VariableError
				return errors.As(err, &e)
			},
		},
		{
			"fatal-beats-undefined-right",
			tablets.Parse("1/0+y"),
			func(err error) bool {
				var e *tablets.VariableError
				return errors.As(err, &e)
			},
		},
		{
			"left-fatal-wins",
			tablets.Parse("y+z"),
			func(err error) bool {
				var e *tablets.VariableError
				return errors.As(err, &e) && e.Name == "y"
			},
		},
	}
	ctx := tablets.NewContext(nil, reg)
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			r, err := ctx.Eval(c.n, tablets.MustParse("1"))
			if err == nil {
				t.Fatalf("%v gave %v with no error", c.n, r)
			}
			if tablets.Undefined(err) {
				t.Errorf("%v gave domain error %v", c.n, err)
			}
			if !c.check(err) {
				t.Errorf("%v gave wrong error %#v", c.n, err)
			}
			if _, rerr := tablets.Render(r, err); rerr == nil {
				t.Errorf("%v rendered fatal error %v as output", c.n, err)
			}
		})
	}
}

func TestEvalBareLiteralVar(t *testing.T) {
	ctx := tablets.NewContext(nil, tablets.NewRegistry().Define("k", tablets.Parse("5")))
	r, err := ctx.Eval(tablets.Op('*', tablets.Var("1.5"), tablets.Var("x")), tablets.MustParse("2"))
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != "3" {
		t.Errorf("wrong result: want 3, got %v", r)
	}
	// Names that look like tablets are still variables.
	if _, err := ctx.Eval(tablets.Var("k"), tablets.Decimal{}); err == nil {
		t.Error("bare tablet name evaluated without error")
	}
}

func TestEvalRepeat(t *testing.T) {
	reg := tablets.NewRegistry().
		Define("f", tablets.Parse("x+1")).
		Define("g", tablets.Parse("f(x)*2"))
	cases := []struct {
		src string
		x   string
		r   string
	}{
		{"f^[3](x)", "5", "8"},
		{"f(f(f(x)))", "5", "8"},
		{"f^[1](x)", "5", "6"},
		{"f^[10](x)", "0", "10"},
		{"g^[2](x)", "0", "6"},
		{"f^[2](x*10)", "0.5", "7"},
		{"f^[2](x)^2", "1", "9"},
	}
	ctx := tablets.NewContext(nil, reg)
	for _, c := range cases {
		r, err := ctx.Eval(tablets.Parse(c.src), tablets.MustParse(c.x))
		if err != nil {
			t.Errorf("%q at %s: %v", c.src, c.x, err)
			continue
		}
		if r.String() != c.r {
			t.Errorf("%q at %s: want %s, got %v", c.src, c.x, c.r, r)
		}
	}
}

func TestEvalDepth(t *testing.T) {
	reg := tablets.NewRegistry().
		Define("loop", tablets.Parse("loop(x)")).
		Define("ping", tablets.Parse("pong(x)")).
		Define("pong", tablets.Parse("ping(x)+1")).
		Define("deep", tablets.Parse("f^[8](x)")).
		Define("f", tablets.Parse("x+1"))
	ctx := tablets.NewContext(tablets.NewConfig(tablets.MaxDepth(16)), reg)
	for _, name := range []string{"loop", "ping"} {
		_, err := ctx.Call(name, tablets.Decimal{})
		var d *tablets.DepthError
		if !errors.As(err, &d) {
			t.Errorf("%s gave %#v, not a DepthError", name, err)
			continue
		}
		if d.Depth != 16 {
			t.Errorf("%s gave depth %d", name, d.Depth)
		}
	}
	// Repeats are iterations, not nesting.
	r, err := ctx.Call("deep", tablets.Decimal{})
	if err != nil || r.String() != "8" {
		t.Errorf("deep gave %v, %v", r, err)
	}
}

func TestEvalDuplicateNames(t *testing.T) {
	one := tablets.NewRegistry().
		Define("f", tablets.Parse("x+1")).
		Define("f", tablets.Parse("x+2"))
	two := tablets.NewRegistry().
		Define("f", tablets.Parse("x+2")).
		Define("f", tablets.Parse("x+1"))
	cases := []struct {
		name string
		reg  *tablets.Registry
		r    string
	}{
		{"first-of-one-two", one, "1"},
		{"first-of-two-one", two, "2"},
	}
	for _, c := range cases {
		r, err := tablets.Eval("f(x)", tablets.Decimal{}, c.reg)
		if err != nil {
			t.Errorf("%s: %v", c.name, err)
			continue
		}
		if r.String() != c.r {
			t.Errorf("%s: want %s, got %v", c.name, c.r, r)
		}
		if n := c.reg.Names(); len(n) != 1 || n[0] != "f" {
			t.Errorf("%s: wrong names %q", c.name, n)
		}
		if c.reg.Len() != 2 {
			t.Errorf("%s: wrong length %d", c.name, c.reg.Len())
		}
	}
}

func TestEvalFastPrimitives(t *testing.T) {
	fast := tablets.NewContext(tablets.NewConfig(tablets.FastPrimitives(true)), nil)
	slow := tablets.NewContext(tablets.NewConfig(tablets.FastPrimitives(false)), nil)
	src := tablets.Parse("ABS(x-10)")
	r, err := fast.Eval(src, tablets.MustParse("3"))
	if err != nil || r.String() != "7" {
		t.Errorf("fast ABS gave %v, %v", r, err)
	}
	_, err = slow.Eval(src, tablets.MustParse("3"))
	var ne *tablets.NameError
	if !errors.As(err, &ne) || ne.Name != "ABS" {
		t.Errorf("slow ABS with no tablets gave %#v", err)
	}
	// Primitive names are case-sensitive.
	_, err = fast.Eval(tablets.Parse("abs(x)"), tablets.MustParse("3"))
	if !errors.As(err, &ne) || ne.Name != "abs" {
		t.Errorf("lowercase abs gave %#v", err)
	}
	// A degenerate primitive result is undefined.
	_, err = fast.Eval(tablets.Parse("GE0(x)"), fast.Config().Sentinel())
	if !tablets.Undefined(err) {
		t.Errorf("GE0 of sentinel gave %#v", err)
	}
}

func TestEvalConcurrent(t *testing.T) {
	cfg := tablets.NewConfig(tablets.FastPrimitives(false))
	ctx := tablets.NewContext(cfg, tablets.Library(cfg))
	xs := []string{"0.1", "2.5", "9.99", "-3", "4.2"}
	want := []string{"0", "2", "9", "0", "4"}
	var wg sync.WaitGroup
	errs := make([]error, len(xs))
	got := make([]string, len(xs))
	for i := range xs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := ctx.Call("FLOOR1", tablets.MustParse(xs[i]))
			got[i], errs[i] = r.String(), err
		}(i)
	}
	wg.Wait()
	for i := range xs {
		if errs[i] != nil || got[i] != want[i] {
			t.Errorf("FLOOR1(%s): want %s, got %s, %v", xs[i], want[i], got[i], errs[i])
		}
	}
}

func TestEvalShortcut(t *testing.T) {
	r, err := tablets.Eval("x*2", tablets.MustParse("1.5"), nil)
	if err != nil || r.String() != "3" {
		t.Errorf("x*2 at 1.5 gave %v, %v", r, err)
	}
	r, err = tablets.Eval("2^x", tablets.MustParse("3"), nil, tablets.Places(2))
	if err != nil || r.String() != "8" {
		t.Errorf("2^x at 3 gave %v, %v", r, err)
	}
	if _, err := tablets.Eval("1/0", tablets.Decimal{}, nil); !strings.HasPrefix(err.Error(), "undefined") {
		t.Errorf("1/0 gave %v", err)
	}
}
