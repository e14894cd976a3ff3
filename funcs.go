package tablets

import (
	"strconv"
	"strings"
)

// degenerate is the result of a primitive whose argument sits on a boundary,
// where the arithmetic version divides by zero.
const degenerate = "NaN"

// primitives are the native routines for the reserved names. Each gives the
// same result as the tablet of the same name in Library.
var primitives = map[string]func(*Config, Decimal) string{
	"ABS":    (*Config).ABS,
	"GE0":    (*Config).GE0,
	"IS0":    (*Config).IS0,
	"FLOOR1": (*Config).FLOOR1,
	"RIGHT":  (*Config).RIGHT,
	"LEFT":   (*Config).LEFT,
}

// IsPrimitive reports whether name is reserved for a native primitive.
func IsPrimitive(name string) bool {
	return primitives[name] != nil
}

// ABS returns |x|.
func (c *Config) ABS(x Decimal) string {
	return x.Abs().String()
}

// GE0 classifies x against the sentinel b: "1" if x > b, "0" if x < b, and
// "NaN" if x is b.
func (c *Config) GE0(x Decimal) string {
	switch x.Cmp(c.sentinel) {
	case 1:
		return "1"
	case -1:
		return "0"
	}
	return degenerate
}

// IS0 returns "1" if b < x < 1+b, "0" if x is outside that band, and "NaN" on
// either edge.
func (c *Config) IS0(x Decimal) string {
	lo, hi := x.Cmp(c.bounds[0]), x.Cmp(c.bounds[1])
	switch {
	case lo < 0, hi > 0:
		return "0"
	case lo > 0 && hi < 0:
		return "1"
	}
	return degenerate
}

// FLOOR1 returns the integer part of x as a digit for b < x < 10+b. Below b,
// and above 10+b, the result is "0"; the arithmetic version has no way to see
// past ten, so large inputs alias to zero. On any boundary k+b, the result is
// "NaN".
func (c *Config) FLOOR1(x Decimal) string {
	if x.Cmp(c.bounds[0]) < 0 || x.Cmp(c.bounds[10]) > 0 {
		return "0"
	}
	for k := 0; k < 10; k++ {
		if x.Cmp(c.bounds[k]) > 0 && x.Cmp(c.bounds[k+1]) < 0 {
			return strconv.Itoa(k)
		}
	}
	return degenerate
}

// RIGHT rotates the fractional digits of x, padded to D places, one place to
// the left: the first fractional digit becomes the last. For x in [0, 1) this
// is x*10 with the digit that crosses the point moved to the far right.
func (c *Config) RIGHT(x Decimal) string {
	if c.shiftDegenerate(x) {
		return degenerate
	}
	return c.rotate(x, true)
}

// LEFT rotates the fractional digits of x, padded to D places, one place to
// the right, undoing RIGHT.
func (c *Config) LEFT(x Decimal) string {
	if c.shiftDegenerate(x) {
		return degenerate
	}
	return c.rotate(x, false)
}

// shiftDegenerate reports whether the arithmetic version of a digit shift is
// undefined at x, which is when FLOOR1(x*10) is.
func (c *Config) shiftDegenerate(x Decimal) bool {
	x10, err := c.Mul(x, NewDecimal(10, 0))
	return err != nil || c.FLOOR1(x10) == degenerate
}

// rotate rotates the padded fractional digits of x by one place. A fractional
// part longer than D rotates as it is.
func (c *Config) rotate(x Decimal, left bool) string {
	ip, fp, _ := strings.Cut(x.String(), ".")
	digits := []byte(fp)
	for len(digits) < c.places {
		digits = append(digits, '0')
	}
	r := make([]byte, 0, len(digits))
	if left {
		r = append(append(r, digits[1:]...), digits[0])
	} else {
		r = append(append(r, digits[len(digits)-1]), digits[:len(digits)-1]...)
	}
	fp = strings.TrimRight(string(r), "0")
	switch {
	case fp != "":
		return ip + "." + fp
	case ip == "-0":
		return "0"
	default:
		return ip
	}
}
