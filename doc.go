// Package tablets implements a calculator for expressions of one variable over
// arbitrary-precision decimals.
//
// An expression is written much like arithmetic in your notes: "x^2+3*x-1",
// "(x+ABS(x))/(2*x)". Named expressions, or tablets, are stored in a Registry
// and called from other expressions like functions of x. "F^[3](x)" applies F
// three times, feeding each result back in.
//
// The interesting tablets are the ones that compare without comparisons. Using
// only + - * / ^ and a boundary constant a hair below zero, the package builds
// GE0 (is x at least zero), IS0 (is x in [0, 1)), FLOOR1 (the integer part of
// x in [0, 10)), and RIGHT and LEFT, which rotate the fractional digits of x.
// Library returns those definitions as tablets; the native versions in this
// package compute the same results without walking trees.
//
// Parsing never fails. Characters the parser doesn't understand become empty
// subexpressions, which evaluate to zero.
package tablets
