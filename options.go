package tablets

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

const (
	// DefaultPlaces is the number of fractional digits a session works with
	// unless configured otherwise.
	DefaultPlaces = 27
	// MaxPlaces is the largest fractional-digit budget a session accepts.
	MaxPlaces = 100
	// DefaultExpRange bounds the adjusted exponent of every result.
	DefaultExpRange = 1000
)

// Config is the configuration of a session: the fractional-digit budget, the
// boundary constants derived from it, and evaluator settings. A Config is
// immutable once created and is safe to share between goroutines.
type Config struct {
	places   int
	prec     uint32
	precset  bool
	exprange int32
	fast     bool
	depth    int

	arith    apd.Context
	sentinel Decimal
	tiny     Decimal
	// bounds[k] is k plus the sentinel.
	bounds [11]Decimal
}

// Option is an option used when creating a Config.
type Option interface {
	option()
}

type (
	placesopt int
	precopt   uint32
	rangeopt  int32
	fastopt   bool
	depthopt  int
)

func (placesopt) option() {}
func (precopt) option()   {}
func (rangeopt) option()  {}
func (fastopt) option()   {}
func (depthopt) option()  {}

// Places sets the fractional-digit budget D. The sentinel boundary is
// -0.{D zeros}1. Panics when creating a Config if d is not in [1, MaxPlaces].
func Places(d int) Option {
	return placesopt(d)
}

// Precision sets the number of significant digits kept by arithmetic. If not
// given, the precision is three digits per fractional place, plus three. The
// precision must be at least D+3 so that the boundaries around 0 through 10
// are exact. A precision set this way survives later changes to D as long as
// it stays at least D+3; past that, the default for the new D applies.
func Precision(p uint32) Option {
	return precopt(p)
}

// ExpRange bounds the adjusted exponent of results to ±n. Results above the
// range are undefined and results below it round to zero. The range is raised
// to at least D+2 so that the boundary constants are representable.
func ExpRange(n int32) Option {
	return rangeopt(n)
}

// FastPrimitives sets whether calls to the reserved primitive names use native
// routines instead of looking up tablets.
func FastPrimitives(on bool) Option {
	return fastopt(on)
}

// MaxDepth limits how deeply tablet calls may nest during one evaluation. Zero
// means no limit, in which case a tablet that calls itself recurses until the
// goroutine stack is exhausted.
func MaxDepth(n int) Option {
	return depthopt(n)
}

// NewConfig creates a configuration. Without options, it uses DefaultPlaces,
// DefaultExpRange, fast primitives, and no depth limit.
func NewConfig(opts ...Option) *Config {
	c := Config{
		places:   DefaultPlaces,
		exprange: DefaultExpRange,
		fast:     true,
	}
	return c.With(opts...)
}

// With creates a copy of c with opts applied. Boundary constants are derived
// again, so a new fractional-digit budget also moves the sentinel.
func (c *Config) With(opts ...Option) *Config {
	n := Config{
		places:   c.places,
		exprange: c.exprange,
		fast:     c.fast,
		precset:  c.precset,
		depth:    c.depth,
	}
	var prec uint32
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case placesopt:
			n.places = int(opt)
		case precopt:
			prec = uint32(opt)
			n.precset = true
		case rangeopt:
			n.exprange = int32(opt)
		case fastopt:
			n.fast = bool(opt)
		case depthopt:
			n.depth = int(opt)
		default:
			panic("tablets: unknown option type")
		}
	}
	if n.places < 1 || n.places > MaxPlaces {
		panic("tablets: places " + strconv.Itoa(n.places) + " out of range")
	}
	if n.exprange < int32(n.places)+2 {
		n.exprange = int32(n.places) + 2
	}
	if prec == 0 {
		prec = uint32(3*n.places + 3)
		if n.precset && c.prec >= uint32(n.places)+3 {
			prec = c.prec
		}
		n.precset = n.precset && prec == c.prec
	}
	if prec < uint32(n.places)+3 {
		panic("tablets: precision " + strconv.FormatUint(uint64(prec), 10) + " too small for " + strconv.Itoa(n.places) + " places")
	}
	n.prec = prec
	n.arith = apd.Context{
		Precision:   prec,
		MaxExponent: n.exprange,
		MinExponent: -n.exprange,
		Traps:       apd.SystemOverflow | apd.SystemUnderflow | apd.Overflow | apd.DivisionUndefined | apd.DivisionByZero | apd.DivisionImpossible | apd.InvalidOperation,
		Rounding:    apd.RoundHalfEven,
	}
	n.sentinel = MustParse(sentinelText(n.places))
	n.tiny = Decimal{apd.New(1, -int32(n.places))}
	for k := range n.bounds {
		b, err := n.Add(NewDecimal(int64(k), 0), n.sentinel)
		if err != nil {
			panic("tablets: deriving boundaries: " + err.Error())
		}
		n.bounds[k] = b
	}
	return &n
}

// sentinelText is -0.{d zeros}1.
func sentinelText(d int) string {
	return "-0." + strings.Repeat("0", d) + "1"
}

// Places returns the fractional-digit budget.
func (c *Config) Places() int {
	return c.places
}

// Precision returns the number of significant digits kept by arithmetic.
func (c *Config) Precision() uint32 {
	return c.prec
}

// ExpRange returns the bound on the adjusted exponent of results.
func (c *Config) ExpRange() int32 {
	return c.exprange
}

// Fast returns whether reserved primitive names use native routines.
func (c *Config) Fast() bool {
	return c.fast
}

// Depth returns the tablet nesting limit, or 0 if there is none.
func (c *Config) Depth() int {
	return c.depth
}

// Sentinel returns the boundary constant, the negative of one unit past the
// last fractional place.
func (c *Config) Sentinel() Decimal {
	return c.sentinel
}

// Tiny returns one unit in the last fractional place, 10^-D.
func (c *Config) Tiny() Decimal {
	return c.tiny
}
