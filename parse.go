package tablets

// Expr = Sum
// Sum = Product { ('+' | '-') Product }
// Product = Power { ('*' | '/') Power }
// Power = Unary [ '^' Power ]
// Unary = '+' Unary | '-' number | '-' Unary | Atom
// Atom = '(' Sum [')'] | number | name [ '^' '[' count ']' ] '(' Sum [')'] | name

// Parse parses an expression. Whitespace is ignored everywhere, including
// inside numbers and names.
//
// Parse never fails. Where the parser finds something it doesn't understand,
// it produces an empty node, which evaluates to zero; anything left over after
// the expression is ignored. So "1+" is 1, ")" is 0, and "2$3" is 2. A missing
// close bracket is implied at the end of the input.
func Parse(src string) *Node {
	l := lex(src)
	return parseSum(l)
}

func parseSum(l *lexer) *Node {
	return parseLeft(l, sumprec, parseProduct)
}

func parseProduct(l *lexer) *Node {
	return parseLeft(l, prodprec, parsePower)
}

// parseLeft parses a chain of left-associative operators of precedence prec.
func parseLeft(l *lexer, prec int8, operand func(*lexer) *Node) *Node {
	n := operand(l)
	for {
		op, ok := l.peekOp()
		if !ok || binop(op).prec != prec {
			return n
		}
		l.advance()
		n = Op(op, n, operand(l))
	}
}

// parsePower parses exponentiation, which is right-associative:
// 2^3^2 is 2^(3^2).
func parsePower(l *lexer) *Node {
	n := parseUnary(l)
	if l.peek() != '^' {
		return n
	}
	l.advance()
	return Op('^', n, parsePower(l))
}

// parseUnary parses signs. A minus directly before a number is part of the
// literal; otherwise -a is 0-a.
func parseUnary(l *lexer) *Node {
	switch l.peek() {
	case '+':
		l.advance()
		return parseUnary(l)
	case '-':
		if r := l.peekAt(1); isDigit(r) || r == '.' {
			mark := l.pos
			l.advance()
			if num := l.scanNum(); num != "" {
				return Num("-" + num)
			}
			l.pos = mark
		}
		l.advance()
		return Op('-', Num("0"), parseUnary(l))
	}
	return parseAtom(l)
}

func parseAtom(l *lexer) *Node {
	r := l.peek()
	switch {
	case r == '(':
		l.advance()
		n := parseSum(l)
		l.accept(')')
		return Paren(n)
	case isDigit(r), r == '.':
		if num := l.scanNum(); num != "" {
			return Num(num)
		}
	case r != eof:
		name := l.scanIdent()
		if name == "" {
			break
		}
		mark := l.pos
		repeat, ok := l.scanRepeat()
		if !ok {
			repeat = 1
		}
		if l.accept('(') {
			arg := parseSum(l)
			l.accept(')')
			return Fun(name, repeat, arg)
		}
		// A repeat count without an argument list is not a call.
		l.pos = mark
		return Var(name)
	}
	return Empty()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

const (
	sumprec  = 2
	prodprec = 3
	powprec  = 4
)

// binop gets the binary operator for an operator byte. If there is no such
// operator, the result has prec 0.
func binop(op byte) operator {
	switch op {
	case '+', '-':
		return operator{sumprec, false}
	case '*', '/':
		return operator{prodprec, false}
	case '^':
		return operator{powprec, true}
	default:
		return operator{}
	}
}
