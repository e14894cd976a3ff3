package tablets

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"-0", "0"},
		{"-0.000", "0"},
		{"12", "12"},
		{"100", "100"},
		{"1.2300", "1.23"},
		{".5", "0.5"},
		{"-.5", "-0.5"},
		{"2.", "2"},
		{"1e3", "1000"},
		{"1e-3", "0.001"},
		{"0.000001", "0.000001"},
		{"-0.0000000000000000000000000001", "-0.0000000000000000000000000001"},
		{"123456789012345678901234567890.5", "123456789012345678901234567890.5"},
	}
	for _, c := range cases {
		d, err := ParseDecimal(c.in)
		if err != nil {
			t.Errorf("parsing %q: %v", c.in, err)
			continue
		}
		if got := d.String(); got != c.want {
			t.Errorf("parsing %q: want %s, got %s", c.in, c.want, got)
		}
	}
	for _, in := range []string{"", "abc", "1.2.3", "--1", "NaN", "Inf", "-Infinity", "1e", "x"} {
		_, err := ParseDecimal(in)
		var le *LiteralError
		if !errors.As(err, &le) {
			t.Errorf("parsing %q gave %#v, not a LiteralError", in, err)
			continue
		}
		if le.Text != in {
			t.Errorf("parsing %q gave error for %q", in, le.Text)
		}
	}
}

func TestDecimalMethods(t *testing.T) {
	var z Decimal
	if z.String() != "0" || !z.IsZero() || z.Sign() != 0 || !z.IsInt() {
		t.Errorf("zero value isn't zero: %s", z)
	}
	if got := MustParse("1.50").Text(); got != "1.50" {
		t.Errorf("text keeps digits: want 1.50, got %s", got)
	}
	if got := MustParse("-2.5").Abs().String(); got != "2.5" {
		t.Errorf("abs: got %s", got)
	}
	if got := MustParse("2.5").Neg().String(); got != "-2.5" {
		t.Errorf("neg: got %s", got)
	}
	if MustParse("2.0").Cmp(MustParse("2")) != 0 || MustParse("1").Cmp(MustParse("2")) != -1 {
		t.Error("wrong comparison")
	}
	ints := map[string]bool{"2": true, "2.0": true, "-0": true, "2.5": false, "1e3": true, "1e-3": false}
	for s, want := range ints {
		if got := MustParse(s).IsInt(); got != want {
			t.Errorf("IsInt(%s): want %t, got %t", s, want, got)
		}
	}
	toints := []struct {
		s  string
		n  int
		ok bool
	}{
		{"42", 42, true},
		{"42.000", 42, true},
		{"-7", -7, true},
		{"2.5", 0, false},
		{"1e30", 0, false},
	}
	for _, c := range toints {
		n, ok := MustParse(c.s).toInt()
		if n != c.n || ok != c.ok {
			t.Errorf("toInt(%s): want %d, %t; got %d, %t", c.s, c.n, c.ok, n, ok)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	MustParse("one")
}

func TestConfigArith(t *testing.T) {
	cfg := NewConfig()
	small := NewConfig(Places(2))
	type op func(*Config, Decimal, Decimal) (Decimal, error)
	cases := []struct {
		name string
		cfg  *Config
		f    op
		x, y string
		// want is the result, or a prefix of it if it ends in "...".
		want string
	}{
		{"add", cfg, (*Config).Add, "0.1", "0.2", "0.3"},
		{"sub", cfg, (*Config).Sub, "1", "1.5", "-0.5"},
		{"sub-zero", cfg, (*Config).Sub, "1", "1", "0"},
		{"mul", cfg, (*Config).Mul, "1.5", "-4", "-6"},
		{"quo", cfg, (*Config).Quo, "1", "8", "0.125"},
		{"quo-rounded", small, (*Config).Quo, "1", "3", "0.333333333"},
		{"pow-int", cfg, (*Config).Pow, "2", "10", "1024"},
		{"pow-neg-int", cfg, (*Config).Pow, "2", "-3", "0.125"},
		{"pow-neg-base", cfg, (*Config).Pow, "-2", "3", "-8"},
		{"pow-sqrt", cfg, (*Config).Pow, "2", "0.5", "1.414213562373095048801688724..."},
		{"pow-real", cfg, (*Config).Pow, "2", "0.25", "1.189207115002721066717499970..."},
		{"pow-real-exact", cfg, (*Config).Pow, "4", "1.5", "8"},
		{"pow-zero-base", cfg, (*Config).Pow, "0", "3", "0"},
		{"pow-zero-exp", cfg, (*Config).Pow, "5", "0", "1"},
		{"div-zero", cfg, (*Config).Quo, "1", "0", "Undefined"},
		{"div-zero-zero", cfg, (*Config).Quo, "0", "0", "Undefined"},
		{"zero-pow-zero", cfg, (*Config).Pow, "0", "0", "Undefined"},
		{"zero-pow-neg", cfg, (*Config).Pow, "0", "-2", "Undefined"},
		{"neg-pow-frac", cfg, (*Config).Pow, "-8", "0.5", "Undefined"},
		{"mul-overflow", cfg, (*Config).Mul, "1e600", "1e600", "Undefined"},
		{"pow-overflow", cfg, (*Config).Pow, "10", "1001", "Undefined"},
		{"pow-underflow", cfg, (*Config).Pow, "0.5", "999999999", "0"},
		{"pow-underflow-neg-base", cfg, (*Config).Pow, "-0.5", "999999999", "0"},
		{"pow-underflow-neg-exp", cfg, (*Config).Pow, "10", "-2000", "0"},
		{"pow-overflow-neg-exp", cfg, (*Config).Pow, "0.1", "-1001", "Undefined"},
	}
	for _, c := range cases {
		r, err := c.f(c.cfg, MustParse(c.x), MustParse(c.y))
		got, rerr := Render(r, err)
		if rerr != nil {
			t.Errorf("%s(%s, %s): unexpected error %v", c.name, c.x, c.y, rerr)
			continue
		}
		if want, ok := strings.CutSuffix(c.want, "..."); ok {
			if !strings.HasPrefix(got, want) {
				t.Errorf("%s(%s, %s): want %s, got %s", c.name, c.x, c.y, c.want, got)
			}
			continue
		}
		if got != c.want {
			t.Errorf("%s(%s, %s): want %s, got %s", c.name, c.x, c.y, c.want, got)
		}
	}
}
