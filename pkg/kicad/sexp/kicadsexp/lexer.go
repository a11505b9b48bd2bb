package kicadsexp

import (
	"bufio"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLeftParen
	TokenRightParen
	TokenSymbol
	TokenString
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	case TokenSymbol:
		return "atom"
	case TokenString:
		return "string"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

// Pos is a location in the source text. Offset is in bytes from the start of
// the input; Line and Column are 1-based, Column counted in runes.
type Pos struct {
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, column %d (offset %d)", p.Line, p.Column, p.Offset)
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
	Pos   Pos
}

// Lexer tokenizes S-expressions from an io.Reader
type Lexer struct {
	reader *bufio.Reader
	peeked bool
	ch     rune // peeked rune, valid when peeked is set
	size   int  // encoded length of ch in the input
	pos    Pos  // position of the next unread rune
}

// NewLexer creates a new lexer
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(r),
		pos:    Pos{Line: 1, Column: 1},
	}
}

// NextToken reads the next token from the input
func (l *Lexer) NextToken() (Token, error) {
	// Skip whitespace
	for {
		ch, err := l.peek()
		if err != nil {
			if err == io.EOF {
				return Token{Type: TokenEOF, Pos: l.pos}, nil
			}
			return Token{}, err
		}
		if !unicode.IsSpace(ch) {
			break
		}
		l.read()
	}

	start := l.pos
	ch, _ := l.peek()

	switch ch {
	case '(':
		l.read()
		return Token{Type: TokenLeftParen, Value: "(", Pos: start}, nil

	case ')':
		l.read()
		return Token{Type: TokenRightParen, Value: ")", Pos: start}, nil

	case '"':
		return l.readString(start)

	default:
		return l.readSymbol(start)
	}
}

// peek looks at the next rune without consuming it
func (l *Lexer) peek() (rune, error) {
	if l.peeked {
		return l.ch, nil
	}

	ch, size, err := l.reader.ReadRune()
	if err != nil {
		return 0, err
	}

	l.peeked, l.ch, l.size = true, ch, size
	return ch, nil
}

// read consumes and returns the next rune, advancing the position by the
// number of bytes it occupied in the input
func (l *Lexer) read() (rune, error) {
	if _, err := l.peek(); err != nil {
		return 0, err
	}
	ch, size := l.ch, l.size
	l.peeked = false

	l.pos.Offset += size
	if ch == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	return ch, nil
}

// invalid reports whether the peeked rune is a byte that is not UTF-8
func (l *Lexer) invalid() bool {
	return l.peeked && l.ch == utf8.RuneError && l.size == 1
}

// readString reads a quoted string starting at start
func (l *Lexer) readString(start Pos) (Token, error) {
	// Consume opening quote
	l.read()

	var result []rune
	for {
		at := l.pos
		if _, err := l.peek(); err == nil && l.invalid() {
			return Token{}, &SyntaxError{Pos: at, Msg: "invalid UTF-8 in string"}
		}
		ch, err := l.read()
		if err != nil {
			if err == io.EOF {
				return Token{}, &SyntaxError{Pos: start, Msg: "unterminated string"}
			}
			return Token{}, err
		}

		if ch == '"' {
			break
		}

		if ch == '\\' {
			at := l.pos
			if _, err := l.peek(); err == nil && l.invalid() {
				return Token{}, &SyntaxError{Pos: at, Msg: "invalid UTF-8 in string"}
			}
			next, err := l.read()
			if err != nil {
				if err == io.EOF {
					return Token{}, &SyntaxError{Pos: start, Msg: "unterminated string"}
				}
				return Token{}, err
			}
			switch next {
			case 'n':
				result = append(result, '\n')
			case 't':
				result = append(result, '\t')
			case 'r':
				result = append(result, '\r')
			default:
				// \\ and \" and unknown escapes keep the escaped rune
				result = append(result, next)
			}
			continue
		}

		result = append(result, ch)
	}

	return Token{Type: TokenString, Value: string(result), Pos: start}, nil
}

// readSymbol reads an unquoted atom (identifier, number, etc.)
func (l *Lexer) readSymbol(start Pos) (Token, error) {
	var result []rune

	for {
		ch, err := l.peek()
		if err != nil {
			if err == io.EOF {
				break
			}
			return Token{}, err
		}

		// Stop at delimiters
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			break
		}

		l.read()
		result = append(result, ch)
	}

	return Token{Type: TokenSymbol, Value: string(result), Pos: start}, nil
}
