package formula

import "strconv"

// Token kinds produced by the tokenizer.
type tokenKind int

const (
	tokNumber tokenKind = iota
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	num  float64
}

// tokenize splits a whitelisted arithmetic string into tokens.
// Returns false on a malformed number.
func tokenize(s string) ([]token, bool) {
	var tokens []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '+':
			tokens = append(tokens, token{kind: tokPlus})
			i++
		case c == '-':
			tokens = append(tokens, token{kind: tokMinus})
			i++
		case c == '*':
			tokens = append(tokens, token{kind: tokStar})
			i++
		case c == '/':
			tokens = append(tokens, token{kind: tokSlash})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokLParen})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokRParen})
			i++
		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
				i++
			}
			f, err := strconv.ParseFloat(s[start:i], 64)
			if err != nil {
				return nil, false
			}
			tokens = append(tokens, token{kind: tokNumber, num: f})
		default:
			return nil, false
		}
	}
	return tokens, true
}

// AST nodes. The tree is tiny: numbers, unary minus, binary operators.
type node interface {
	eval() (float64, bool)
}

type numberNode float64

func (n numberNode) eval() (float64, bool) { return float64(n), true }

type negateNode struct {
	operand node
}

func (n negateNode) eval() (float64, bool) {
	v, ok := n.operand.eval()
	return -v, ok
}

type binaryNode struct {
	op          tokenKind
	left, right node
}

func (n binaryNode) eval() (float64, bool) {
	l, ok := n.left.eval()
	if !ok {
		return 0, false
	}
	r, ok := n.right.eval()
	if !ok {
		return 0, false
	}
	switch n.op {
	case tokPlus:
		return l + r, true
	case tokMinus:
		return l - r, true
	case tokStar:
		return l * r, true
	case tokSlash:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	default:
		return 0, false
	}
}

// parser is a recursive-descent parser over the token stream.
//
// Grammar:
//
//	expression = term { ("+" | "-") term }
//	term       = factor { ("*" | "/") factor }
//	factor     = number | "(" expression ")" | "-" factor
//
// Making unary minus an explicit factor production removes the ambiguity
// a split-on-operator approach has to special-case.
type parser struct {
	tokens []token
	pos    int
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() (token, bool) {
	if p.atEnd() {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) parseExpression() (node, bool) {
	left, ok := p.parseTerm()
	if !ok {
		return nil, false
	}
	for {
		t, ok := p.peek()
		if !ok || (t.kind != tokPlus && t.kind != tokMinus) {
			return left, true
		}
		p.pos++
		right, ok := p.parseTerm()
		if !ok {
			return nil, false
		}
		left = binaryNode{op: t.kind, left: left, right: right}
	}
}

func (p *parser) parseTerm() (node, bool) {
	left, ok := p.parseFactor()
	if !ok {
		return nil, false
	}
	for {
		t, ok := p.peek()
		if !ok || (t.kind != tokStar && t.kind != tokSlash) {
			return left, true
		}
		p.pos++
		right, ok := p.parseFactor()
		if !ok {
			return nil, false
		}
		left = binaryNode{op: t.kind, left: left, right: right}
	}
}

func (p *parser) parseFactor() (node, bool) {
	t, ok := p.next()
	if !ok {
		return nil, false
	}
	switch t.kind {
	case tokNumber:
		return numberNode(t.num), true
	case tokMinus:
		operand, ok := p.parseFactor()
		if !ok {
			return nil, false
		}
		return negateNode{operand: operand}, true
	case tokLParen:
		inner, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		closing, ok := p.next()
		if !ok || closing.kind != tokRParen {
			return nil, false
		}
		return inner, true
	default:
		return nil, false
	}
}
