package tablets

import (
	"strconv"
	"strings"
)

// Node is a node in the syntax tree of an expression. Nodes are immutable once
// built and own their children; a tree has no shared or cyclic links. A nil
// *Node behaves like an empty node.
type Node struct {
	kind NodeKind
	// op is the operator of KindOp nodes.
	op byte
	// text is the literal text of KindNum, the name of KindVar and KindFun.
	text string
	// repeat is the application count of KindFun.
	repeat int
	// left is the lhs of KindOp, the argument of KindFun, or the contents of
	// KindParen. right is the rhs of KindOp.
	left  *Node
	right *Node
}

// NodeKind identifies the variant of a Node.
type NodeKind int8

const (
	KindEmpty NodeKind = iota // nothing; evaluates to zero
	KindOp                    // binary operator
	KindNum                   // decimal literal
	KindVar                   // x, or a literal evaluated at evaluation time
	KindFun                   // tablet or primitive call
	KindParen                 // explicit grouping
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=NodeKind -trimprefix=Kind
//go:generate go mod tidy

// Op creates a binary operator node. op should be one of Operators.
func Op(op byte, left, right *Node) *Node {
	return &Node{kind: KindOp, op: op, left: left, right: right}
}

// Num creates a literal node. The text is kept as written and only parsed
// into a Decimal during evaluation.
func Num(text string) *Node {
	return &Node{kind: KindNum, text: text}
}

// Var creates a variable node.
func Var(name string) *Node {
	return &Node{kind: KindVar, text: name}
}

// Fun creates a node applying the function name to arg, repeat times. Panics
// if repeat is less than 1.
func Fun(name string, repeat int, arg *Node) *Node {
	if repeat < 1 {
		panic("tablets: repeat count " + strconv.Itoa(repeat) + " for " + name)
	}
	return &Node{kind: KindFun, text: name, repeat: repeat, left: arg}
}

// Paren creates an explicit grouping of inner.
func Paren(inner *Node) *Node {
	return &Node{kind: KindParen, left: inner}
}

// Empty creates an empty node.
func Empty() *Node {
	return &Node{}
}

// Kind returns the variant of n.
func (n *Node) Kind() NodeKind {
	if n == nil {
		return KindEmpty
	}
	return n.kind
}

// Operator returns the operator of an operator node, or 0.
func (n *Node) Operator() byte {
	if n == nil {
		return 0
	}
	return n.op
}

// Text returns the literal text of a number, or the name of a variable or
// function.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.text
}

// Repeat returns the application count of a function node, or 0.
func (n *Node) Repeat() int {
	if n == nil {
		return 0
	}
	return n.repeat
}

// Left returns the left operand of an operator node, the argument of a
// function node, or the contents of a grouping.
func (n *Node) Left() *Node {
	if n == nil {
		return nil
	}
	return n.left
}

// Right returns the right operand of an operator node.
func (n *Node) Right() *Node {
	if n == nil {
		return nil
	}
	return n.right
}

// String renders n as an expression that parses back to an equivalent tree.
// Parentheses appear only where precedence or associativity needs them, and
// for explicit groupings inside an operator.
func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b, 0)
	return b.String()
}

// fmt writes n in a context requiring at least precedence prec.
func (n *Node) fmt(b *strings.Builder, prec int8) {
	if n == nil {
		return
	}
	switch n.kind {
	case KindEmpty:
		// Nothing.
	case KindOp:
		p := binop(n.op)
		lp, rp := p.prec, p.prec
		if p.right {
			lp++
		} else {
			rp++
		}
		paren := p.prec < prec
		if paren {
			b.WriteByte('(')
		}
		n.left.fmt(b, lp)
		b.WriteByte(n.op)
		n.right.fmt(b, rp)
		if paren {
			b.WriteByte(')')
		}
	case KindNum, KindVar:
		b.WriteString(n.text)
	case KindFun:
		b.WriteString(n.text)
		if n.repeat > 1 {
			b.WriteString("^[")
			b.WriteString(strconv.Itoa(n.repeat))
			b.WriteByte(']')
		}
		b.WriteByte('(')
		n.left.fmt(b, 0)
		b.WriteByte(')')
	case KindParen:
		if prec > 0 {
			b.WriteByte('(')
			defer b.WriteByte(')')
		}
		n.left.fmt(b, 0)
	default:
		panic("tablets: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// LevelOrder lays out the first four levels of a tree in heap order: the
// children of slot i are in 2i+1 and 2i+2. Operators fill both children,
// function arguments go right, and grouped contents go left under "()".
// Empty slots are "".
func LevelOrder(n *Node) [15]string {
	var r [15]string
	type slot struct {
		i int
		n *Node
	}
	q := []slot{{0, n}}
	for len(q) > 0 {
		s := q[0]
		q = q[1:]
		if s.i >= len(r) || s.n == nil {
			continue
		}
		switch s.n.kind {
		case KindOp:
			r[s.i] = string(s.n.op)
			q = append(q, slot{2*s.i + 1, s.n.left}, slot{2*s.i + 2, s.n.right})
		case KindNum, KindVar:
			r[s.i] = s.n.text
		case KindFun:
			r[s.i] = s.n.text
			if s.n.repeat > 1 {
				r[s.i] += "^[" + strconv.Itoa(s.n.repeat) + "]"
			}
			q = append(q, slot{2*s.i + 2, s.n.left})
		case KindParen:
			r[s.i] = "()"
			q = append(q, slot{2*s.i + 1, s.n.left})
		}
	}
	return r
}
