package parser

import (
	"fmt"
	"math"
	"strconv"

	"github.com/KimNorgaard/go-xmljson/ast"
	"github.com/KimNorgaard/go-xmljson/errors"
	"github.com/KimNorgaard/go-xmljson/internal/lexer"
	"github.com/KimNorgaard/go-xmljson/token"
)

type prefixParseFn func() ast.Expression

// Parser holds the state of the parser.
type Parser struct {
	l      *lexer.Lexer
	errors errors.ParseErrors

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Type]prefixParseFn
}

// New creates a new parser.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.NULL, p.parseNullLiteral)
	p.registerPrefix(token.LBRACK, p.parseArrayLiteral)
	p.registerPrefix(token.LBRACE, p.parseObjectLiteral)
	p.registerPrefix(token.NEW, p.parseConstructorLiteral)
	p.registerPrefix(token.ILLEGAL, p.parseIllegal)

	// Read two tokens, so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns the syntax errors encountered during parsing, or nil.
func (p *Parser) Errors() errors.ParseErrors {
	return p.errors
}

// Parse parses a single value and returns it wrapped in a Document. An
// input holding only whitespace and comments yields a Document with a nil
// Value.
func (p *Parser) Parse() *ast.Document {
	document := &ast.Document{}

	if p.curTokenIs(token.EOF) {
		return document
	}

	document.Value = p.parseExpression()

	if !p.curTokenIs(token.EOF) {
		p.errorf("unexpected token after main value: %s ('%s')", p.curToken.Type, p.curToken.Literal)
	}

	return document
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	for p.curTokenIs(token.COMMENT) {
		p.nextToken()
	}
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, errors.ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    p.curToken.Line,
		Column:  p.curToken.Column,
	})
}

func (p *Parser) parseExpression() ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		p.nextToken()
		return nil
	}
	return prefix()
}

// The contract for all parse functions is that they are entered with p.curToken
// being the first token of the construct, and they must return with p.curToken
// pointing to the token *after* the construct.

func (p *Parser) parseIdentifier() ast.Expression {
	var f float64
	switch p.curToken.Literal {
	case "NaN":
		f = math.NaN()
	case "Infinity":
		f = math.Inf(1)
	case "-Infinity":
		f = math.Inf(-1)
	default:
		// A malformed number is lexed as an identifier; anything else is a
		// bare word, which is only legal as an object key.
		lit := p.curToken.Literal
		if len(lit) > 0 && (lit[0] == '-' || (lit[0] >= '0' && lit[0] <= '9')) {
			p.errorf("invalid number format: %s", lit)
		} else {
			p.errorf("unexpected identifier: %s", lit)
		}
		p.nextToken()
		return nil
	}
	lit := &ast.FloatLiteral{Token: p.curToken, Value: f}
	p.nextToken()
	return lit
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Token: p.curToken}
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		// Out-of-range integers degrade to floats rather than failing.
		f, ferr := strconv.ParseFloat(p.curToken.Literal, 64)
		if ferr != nil {
			p.errorf("could not parse %q as integer: %s", p.curToken.Literal, err)
			p.nextToken()
			return nil
		}
		fl := &ast.FloatLiteral{Token: p.curToken, Value: f}
		p.nextToken()
		return fl
	}
	lit.Value = value
	p.nextToken()
	return lit
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	lit := &ast.FloatLiteral{Token: p.curToken}
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf("could not parse %q as float: %s", p.curToken.Literal, err)
		p.nextToken()
		return nil
	}
	lit.Value = value
	p.nextToken()
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	expr := &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
	p.nextToken()
	return expr
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	expr := &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
	p.nextToken()
	return expr
}

func (p *Parser) parseNullLiteral() ast.Expression {
	expr := &ast.NullLiteral{Token: p.curToken}
	p.nextToken()
	return expr
}

func (p *Parser) parseIllegal() ast.Expression {
	p.errorf("illegal token encountered: %s", p.curToken.Literal)
	p.nextToken()
	return nil
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	array := &ast.ArrayLiteral{Token: p.curToken}
	p.nextToken() // Consume '['

	elems, ok := p.parseExpressionList(token.RBRACK)
	if !ok {
		return nil
	}
	array.Elements = elems
	p.nextToken() // Consume ']'
	return array
}

func (p *Parser) parseConstructorLiteral() ast.Expression {
	ctor := &ast.ConstructorLiteral{Token: p.curToken}
	p.nextToken() // Consume 'new'

	if !p.curTokenIs(token.IDENT) {
		p.errorf("expected constructor name after 'new', got %s", p.curToken.Type)
		return nil
	}
	ctor.Name = p.curToken.Literal
	p.nextToken()

	if !p.curTokenIs(token.LPAREN) {
		p.errorf("expected '(' after constructor name, got %s", p.curToken.Type)
		return nil
	}
	p.nextToken() // Consume '('

	args, ok := p.parseExpressionList(token.RPAREN)
	if !ok {
		return nil
	}
	ctor.Arguments = args
	p.nextToken() // Consume ')'
	return ctor
}

// parseExpressionList parses comma-separated values up to end and leaves
// p.curToken on end. A trailing comma is accepted.
func (p *Parser) parseExpressionList(end token.Type) ([]ast.Expression, bool) {
	list := []ast.Expression{}
	for !p.curTokenIs(end) {
		if p.curTokenIs(token.EOF) {
			p.errorf("unterminated list, expected '%s' got %s", end, p.curToken.Type)
			return nil, false
		}
		expr := p.parseExpression()
		if expr == nil {
			return nil, false
		}
		list = append(list, expr)

		switch {
		case p.curTokenIs(token.COMMA):
			p.nextToken()
		case !p.curTokenIs(end):
			p.errorf("expected ',' or '%s', got %s", end, p.curToken.Type)
			return nil, false
		}
	}
	return list, true
}

// parseObjectLiteral keeps repeated keys in the order written; they name
// sibling elements when the object is converted to markup.
func (p *Parser) parseObjectLiteral() ast.Expression {
	obj := &ast.ObjectLiteral{Token: p.curToken, Pairs: []*ast.PairExpression{}}
	p.nextToken() // Consume '{'

	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.errorf("unterminated object literal, expected '}' got %s", p.curToken.Type)
			return nil
		}
		pair := p.parsePair()
		if pair == nil {
			return nil
		}
		obj.Pairs = append(obj.Pairs, pair)

		switch {
		case p.curTokenIs(token.COMMA):
			p.nextToken()
		case !p.curTokenIs(token.RBRACE):
			p.errorf("expected ',' or '}' after object member, got %s", p.curToken.Type)
			return nil
		}
	}
	p.nextToken() // Consume '}'
	return obj
}

func (p *Parser) parsePair() *ast.PairExpression {
	pair := &ast.PairExpression{Token: p.curToken}
	switch p.curToken.Type {
	case token.STRING, token.IDENT, token.INT, token.TRUE, token.FALSE, token.NULL, token.NEW:
		pair.Key = p.curToken.Literal
		p.nextToken()
	default:
		p.errorf("invalid token for object key: %s ('%s')", p.curToken.Type, p.curToken.Literal)
		return nil
	}

	if !p.curTokenIs(token.COLON) {
		p.errorf("expected ':' after key, got %s", p.curToken.Type)
		return nil
	}
	p.nextToken() // Consume ':'

	pair.Value = p.parseExpression()
	if pair.Value == nil {
		return nil
	}
	return pair
}

func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) noPrefixParseFnError(t token.Type) {
	p.errorf("no prefix parse function for %s ('%s') found", t, p.curToken.Literal)
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}
