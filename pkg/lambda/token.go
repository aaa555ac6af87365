package lambda

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
)

// MaxNameLen is the longest identifier kept; longer ones are truncated.
const MaxNameLen = 64

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenLParen
	TokenRParen
	TokenBackslash
	TokenDot
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "IDENT"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenBackslash:
		return "BACKSLASH"
	case TokenDot:
		return "DOT"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     Pos
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	return t.Literal
}

// FormatTokens renders a token list as "TYPE(literal) ..." for debugging.
func FormatTokens(tokens []Token) string {
	return strings.Join(lo.Map(tokens, func(t Token, _ int) string {
		if t.Type == TokenIdent {
			return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
		}
		return t.Type.String()
	}), " ")
}

// Lexer scans program text into tokens.
type Lexer struct {
	rd   io.ByteReader
	pos  Pos
	peek int // -1 when empty
	stop int // terminator byte, -1 for none
	done bool
}

// NewLexer returns a lexer reading r until end of input.
func NewLexer(r io.Reader) *Lexer {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Lexer{rd: br, pos: Pos{Line: 1, Col: 1}, peek: -1, stop: -1}
}

func (l *Lexer) readByte() (byte, bool, error) {
	if l.peek >= 0 {
		c := byte(l.peek)
		l.peek = -1
		return c, true, nil
	}
	if l.done {
		return 0, false, nil
	}
	c, err := l.rd.ReadByte()
	if err == io.EOF {
		l.done = true
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading program: %w", err)
	}
	if l.stop >= 0 && int(c) == l.stop {
		l.done = true
		return 0, false, nil
	}
	return c, true, nil
}

func (l *Lexer) advance(c byte) {
	l.pos.Offset++
	if c == '\n' {
		l.pos.Line++
		l.pos.Col = 1
	} else {
		l.pos.Col++
	}
}

// Next returns the next token, or a TokenEOF token at end of input.
func (l *Lexer) Next() (Token, error) {
	for {
		c, ok, err := l.readByte()
		if err != nil {
			return Token{}, err
		}
		if !ok {
			return Token{Type: TokenEOF, Pos: l.pos}, nil
		}
		start := l.pos
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance(c)
			continue
		case c == '(':
			l.advance(c)
			return Token{Type: TokenLParen, Literal: "(", Pos: start}, nil
		case c == ')':
			l.advance(c)
			return Token{Type: TokenRParen, Literal: ")", Pos: start}, nil
		case c == '\\':
			l.advance(c)
			return Token{Type: TokenBackslash, Literal: "\\", Pos: start}, nil
		case c == '.':
			l.advance(c)
			return Token{Type: TokenDot, Literal: ".", Pos: start}, nil
		case isAlnum(c):
			return l.ident(c, start)
		default:
			return Token{}, newError(KindLexical, start, "unexpected character %q", rune(c))
		}
	}
}

func (l *Lexer) ident(first byte, start Pos) (Token, error) {
	var b strings.Builder
	b.WriteByte(first)
	l.advance(first)
	for {
		c, ok, err := l.readByte()
		if err != nil {
			return Token{}, err
		}
		if !ok {
			break
		}
		if !isAlnum(c) {
			l.peek = int(c)
			break
		}
		l.advance(c)
		if b.Len() < MaxNameLen {
			b.WriteByte(c)
		}
	}
	return Token{Type: TokenIdent, Literal: b.String(), Pos: start}, nil
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// All drains the lexer. The returned slice does not include TokenEOF.
func (l *Lexer) All() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Tokenize scans a whole program.
func Tokenize(src string) ([]Token, error) {
	return NewLexer(strings.NewReader(src)).All()
}

// LexUntil scans r up to (and consuming) the first stop byte or end of input.
func LexUntil(r io.ByteReader, stop byte) ([]Token, error) {
	l := &Lexer{rd: r, pos: Pos{Line: 1, Col: 1}, peek: -1, stop: int(stop)}
	return l.All()
}
