package tablets

import "strconv"

// placesName is the tablet holding the fractional-digit budget. A session
// treats a leading definition of it as configuration.
const placesName = "DECIMAL_PLACES"

// LibraryDefinitions returns the primitives, and the tablets they are built
// from, as definitions that use nothing but arithmetic, for a budget of d
// fractional places. Each definition may call those before it.
//
// H(x) is 1 for positive x and 0 for negative x by way of |x| = (x^2)^(1/2),
// and undefined at zero. Shifting its argument by a tenth of TINY puts the
// undefined point on the sentinel, which gives GE0; everything else is sums
// and products of GE0.
func LibraryDefinitions(d int) []string {
	defs := []string{
		placesName + "(x)=" + strconv.Itoa(d),
		"ABS(x)=(x^2)^(1/2)",
		"H(x)=(x+ABS(x))/(2*x)",
		"TINY(x)=10^(-" + placesName + "(x))",
		"GE0(x)=H(x+TINY(x)/10)",
		"LT1(x)=1-GE0(x-1)",
		"IS0(x)=GE0(x)*LT1(x)",
	}
	floor := "IS1(x)"
	for k := 1; k <= 9; k++ {
		s := strconv.Itoa(k)
		defs = append(defs, "IS"+s+"(x)=IS0(x-"+s+")")
		if k > 1 {
			floor += "+" + s + "*IS" + s + "(x)"
		}
	}
	defs = append(defs,
		"FLOOR1(x)="+floor,
		"RIGHT(x)=x*10-FLOOR1(x*10)+FLOOR1(x*10)*TINY(x)",
	)
	// Rotating d digits right once is rotating them left d-1 times.
	if d > 1 {
		defs = append(defs, "LEFT(x)=RIGHT^["+strconv.Itoa(d-1)+"](x)")
	} else {
		defs = append(defs, "LEFT(x)=x")
	}
	return defs
}

// Library returns a registry of the tablets in LibraryDefinitions for the
// budget of cfg.
func Library(cfg *Config) *Registry {
	r := NewRegistry()
	for _, def := range LibraryDefinitions(cfg.Places()) {
		t, err := ParseDefinition(def)
		if err != nil {
			panic("tablets: bad library definition: " + err.Error())
		}
		r.Add(t)
	}
	return r
}
