package kicadsexp

import (
	"fmt"
	"io"
)

// SyntaxError reports malformed input: unbalanced parentheses or an
// unterminated string. Pos points at the offending token, or at the opening
// parenthesis / quote that was never closed.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("kicadsexp: %s at %s", e.Msg, e.Pos)
}

// Parser parses S-expressions from a lexer
type Parser struct {
	lexer   *Lexer
	current Token
	start   Pos // first token of the expression last returned by Next
}

// NewParser creates a new parser from an io.Reader
func NewParser(r io.Reader) *Parser {
	return &Parser{
		lexer: NewLexer(r),
	}
}

// ParseAll parses all top-level S-expressions from the input
func (p *Parser) ParseAll() ([]Sexp, error) {
	var result []Sexp

	for {
		expr, err := p.Next()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return nil, err
		}
		result = append(result, expr)
	}
}

// Next parses the next top-level S-expression. It returns io.EOF when the
// input is exhausted, which lets callers stream very large libraries one
// symbol at a time.
func (p *Parser) Next() (Sexp, error) {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return nil, err
	}
	p.current = tok
	p.start = tok.Pos

	if p.current.Type == TokenEOF {
		return nil, io.EOF
	}
	return p.parseExpr()
}

// Pos returns where the expression last returned by Next starts. Atoms
// carry no position of their own, so this is the only way to locate one.
func (p *Parser) Pos() Pos {
	return p.start
}

// parseExpr parses a single S-expression
func (p *Parser) parseExpr() (Sexp, error) {
	switch p.current.Type {
	case TokenLeftParen:
		return p.parseList()

	case TokenSymbol:
		return Symbol(p.current.Value), nil

	case TokenString:
		return String(p.current.Value), nil

	case TokenRightParen:
		return nil, &SyntaxError{Pos: p.current.Pos, Msg: "unexpected ')'"}

	case TokenEOF:
		return nil, &SyntaxError{Pos: p.current.Pos, Msg: "unexpected EOF"}

	default:
		return nil, &SyntaxError{Pos: p.current.Pos, Msg: fmt.Sprintf("unexpected %v", p.current.Type)}
	}
}

// parseList parses a list: ( ... )
func (p *Parser) parseList() (Sexp, error) {
	// Current token should be '('
	if p.current.Type != TokenLeftParen {
		return nil, &SyntaxError{Pos: p.current.Pos, Msg: fmt.Sprintf("expected '(', got %v", p.current.Type)}
	}
	open := p.current.Pos

	var elements []Sexp

	// Read elements until we hit ')'
	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return nil, err
		}
		p.current = tok

		if p.current.Type == TokenRightParen {
			break
		}

		if p.current.Type == TokenEOF {
			return nil, &SyntaxError{
				Pos: open,
				Msg: fmt.Sprintf("unexpected EOF at line %d: '(' is never closed", p.current.Pos.Line),
			}
		}

		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
	}

	return &List{elements: elements, pos: open}, nil
}
