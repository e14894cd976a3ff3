package tablets

import (
	"math/big"
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/zephyrtronium/bigfloat"
)

// Decimal is an immutable arbitrary-precision decimal value. The zero value is
// zero. Arithmetic on decimals goes through a Config, which decides the
// precision of results.
type Decimal struct {
	v *apd.Decimal
}

var (
	zero apd.Decimal
	half = apd.New(5, -1)
)

// log2of10 converts decimal digits to bits.
const log2of10 = 3.321928094887362

// NewDecimal returns coeff × 10^exp.
func NewDecimal(coeff int64, exp int32) Decimal {
	return Decimal{apd.New(coeff, exp)}
}

// ParseDecimal parses a finite decimal literal such as "12", "-0.5", ".25", or
// "1e-3". The value is exact; no rounding happens until arithmetic.
func ParseDecimal(s string) (Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil || d.Form != apd.Finite {
		return Decimal{}, &LiteralError{Text: s}
	}
	return Decimal{d}, nil
}

// MustParse is like ParseDecimal but panics if s is not a decimal literal.
func MustParse(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Decimal) dec() *apd.Decimal {
	if d.v == nil {
		return &zero
	}
	return d.v
}

// String returns the canonical form of d: plain notation with trailing
// fractional zeros removed. Negative zero is "0".
func (d Decimal) String() string {
	var r apd.Decimal
	r.Reduce(d.dec())
	s := r.Text('f')
	if s == "-0" {
		return "0"
	}
	return s
}

// Text returns d in plain notation with every stored digit.
func (d Decimal) Text() string {
	return d.dec().Text('f')
}

// Cmp compares d and x and returns -1, 0, or +1.
func (d Decimal) Cmp(x Decimal) int {
	return d.dec().Cmp(x.dec())
}

// Sign returns -1, 0, or +1 according to the sign of d.
func (d Decimal) Sign() int {
	return d.dec().Sign()
}

// IsZero reports whether d is zero of either sign.
func (d Decimal) IsZero() bool {
	return d.dec().IsZero()
}

// IsInt reports whether d has no fractional part.
func (d Decimal) IsInt() bool {
	var integ, frac apd.Decimal
	d.dec().Modf(&integ, &frac)
	return frac.IsZero()
}

// Abs returns |d|.
func (d Decimal) Abs() Decimal {
	return Decimal{new(apd.Decimal).Abs(d.dec())}
}

// Neg returns -d.
func (d Decimal) Neg() Decimal {
	return Decimal{new(apd.Decimal).Neg(d.dec())}
}

// Add returns x + y. The result is undefined if it leaves the exponent range.
func (c *Config) Add(x, y Decimal) (Decimal, error) {
	r := new(apd.Decimal)
	if _, err := c.arith.Add(r, x.dec(), y.dec()); err != nil {
		return Decimal{}, &DomainError{Op: "+", X: x, Y: y}
	}
	return Decimal{r}, nil
}

// Sub returns x - y.
func (c *Config) Sub(x, y Decimal) (Decimal, error) {
	r := new(apd.Decimal)
	if _, err := c.arith.Sub(r, x.dec(), y.dec()); err != nil {
		return Decimal{}, &DomainError{Op: "-", X: x, Y: y}
	}
	return Decimal{r}, nil
}

// Mul returns x * y.
func (c *Config) Mul(x, y Decimal) (Decimal, error) {
	r := new(apd.Decimal)
	if _, err := c.arith.Mul(r, x.dec(), y.dec()); err != nil {
		return Decimal{}, &DomainError{Op: "*", X: x, Y: y}
	}
	return Decimal{r}, nil
}

// Quo returns x / y. Division by zero is undefined.
func (c *Config) Quo(x, y Decimal) (Decimal, error) {
	if y.IsZero() {
		return Decimal{}, &DomainError{Op: "/", X: x, Y: y}
	}
	r := new(apd.Decimal)
	if _, err := c.arith.Quo(r, x.dec(), y.dec()); err != nil {
		return Decimal{}, &DomainError{Op: "/", X: x, Y: y}
	}
	return Decimal{r}, nil
}

// Pow returns x^y. It is undefined when x is zero and y is not positive, and
// when x is negative and y has a fractional part. Results too small for the
// exponent range are zero.
func (c *Config) Pow(x, y Decimal) (Decimal, error) {
	switch {
	case x.IsZero() && y.Sign() <= 0:
		return Decimal{}, &DomainError{Op: "^", X: x, Y: y}
	case x.IsZero():
		return Decimal{}, nil
	case x.Sign() < 0 && !y.IsInt():
		return Decimal{}, &DomainError{Op: "^", X: x, Y: y}
	}
	r := new(apd.Decimal)
	var err error
	switch {
	case y.IsInt():
		_, err = c.arith.Pow(r, x.dec(), y.dec())
	case y.dec().Cmp(half) == 0:
		_, err = c.arith.Sqrt(r, x.dec())
	default:
		err = c.realpow(r, x.dec(), y.dec())
	}
	if err != nil {
		if shrinks(x, y) {
			// Underflow past the exponent range rounds to zero.
			return Decimal{}, nil
		}
		return Decimal{}, &DomainError{Op: "^", X: x, Y: y}
	}
	return Decimal{r}, nil
}

// shrinks reports whether |x^y| < 1.
func shrinks(x, y Decimal) bool {
	m := x.Abs().Cmp(NewDecimal(1, 0))
	return m < 0 && y.Sign() > 0 || m > 0 && y.Sign() < 0
}

// realpow sets z to x^y for positive x and non-integral y, computing in binary
// with enough guard bits to round correctly to the working precision in
// nearly all cases.
func (c *Config) realpow(z, x, y *apd.Decimal) error {
	bits := uint(float64(c.prec)*log2of10) + 64
	fx, ok := new(big.Float).SetPrec(bits).SetString(x.Text('f'))
	if !ok {
		return &LiteralError{Text: x.Text('f')}
	}
	fy, ok := new(big.Float).SetPrec(bits).SetString(y.Text('f'))
	if !ok {
		return &LiteralError{Text: y.Text('f')}
	}
	r := bigfloat.Pow(new(big.Float).SetPrec(bits), fx, fy)
	if r.IsInf() {
		return &DomainError{Op: "^", X: Decimal{x}, Y: Decimal{y}}
	}
	s := r.Text('e', int(c.prec)+2)
	if _, _, err := z.SetString(s); err != nil {
		return &LiteralError{Text: s}
	}
	_, err := c.arith.Round(z, z)
	return err
}

// toInt returns d as an int if it is integral and fits.
func (d Decimal) toInt() (int, bool) {
	if !d.IsInt() {
		return 0, false
	}
	n, err := strconv.Atoi(d.String())
	if err != nil {
		return 0, false
	}
	return n, true
}
