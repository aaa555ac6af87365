package lambda

import (
	"errors"
	"fmt"
)

// DefaultMaxDepth bounds parser recursion; deeper nesting is reported as a
// resource error instead of exhausting the goroutine stack.
const DefaultMaxDepth = 10000

// Parser is a backtracking recursive-descent parser over a token slice:
//
//	<expr>   ::= <var> | <lambda> | <appl>
//	<var>    ::= IDENT
//	<lambda> ::= ( \ <var> . <expr> )
//	<appl>   ::= ( <expr> <expr> )
//
// Every variable is resolved to the identifier of its binder while parsing.
type Parser struct {
	tokens   []Token
	scope    *Scope
	depth    int
	MaxDepth int
}

// NewParser returns a parser over tokens. A nil scope gets a fresh, empty one.
func NewParser(tokens []Token, scope *Scope) *Parser {
	if scope == nil {
		scope = NewScope()
	}
	return &Parser{tokens: tokens, scope: scope, MaxDepth: DefaultMaxDepth}
}

// Scope returns the scope table the parser resolves names against.
func (p *Parser) Scope() *Scope {
	return p.scope
}

// mismatch means an alternative did not match at pos. It is the only error
// that makes parseExpr try the next alternative.
type mismatch struct {
	pos   int
	want  TokenType
	found Token
	eof   bool
}

func (m *mismatch) Error() string {
	if m.eof {
		return "unexpected end of input"
	}
	return fmt.Sprintf("expected %s, found %q", m.want, m.found)
}

// Parse parses one expression and requires every token to be consumed.
func (p *Parser) Parse() (Term, error) {
	t, next, err := p.parseExpr(0)
	if err != nil {
		var m *mismatch
		if errors.As(err, &m) {
			return nil, &Error{Kind: KindBadParse, Msg: m.Error(), Pos: p.posAt(m.pos)}
		}
		return nil, err
	}
	if next != len(p.tokens) {
		return nil, newError(KindBadParse, p.posAt(next),
			"unconsumed tokens: consumed %d of %d", next, len(p.tokens))
	}
	return t, nil
}

// At returns the token at index i.
func (p *Parser) At(i int) (Token, error) {
	if i < 0 || i >= len(p.tokens) {
		return Token{}, newError(KindOutOfBounds, Pos{}, "token index %d of %d", i, len(p.tokens))
	}
	return p.tokens[i], nil
}

func (p *Parser) posAt(i int) Pos {
	if i < len(p.tokens) {
		return p.tokens[i].Pos
	}
	if len(p.tokens) == 0 {
		return Pos{Line: 1, Col: 1}
	}
	last := p.tokens[len(p.tokens)-1]
	pos := last.Pos
	pos.Offset += len(last.Literal)
	pos.Col += len(last.Literal)
	return pos
}

func (p *Parser) expect(i int, want TokenType) (Token, error) {
	tok, err := p.At(i)
	if errors.Is(err, ErrOutOfBounds) {
		return Token{}, &mismatch{pos: i, want: want, eof: true}
	}
	if err != nil {
		return Token{}, err
	}
	if tok.Type != want {
		return Token{}, &mismatch{pos: i, want: want, found: tok}
	}
	return tok, nil
}

// parseExpr tries var, lambda and appl at pos, in that order. It returns the
// term and the index of the first token after it.
func (p *Parser) parseExpr(pos int) (Term, int, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.MaxDepth > 0 && p.depth > p.MaxDepth {
		return nil, pos, newError(KindResource, p.posAt(pos), "nesting deeper than %d", p.MaxDepth)
	}

	var furthest *mismatch
	for _, alt := range []func(int) (Term, int, error){p.parseRef, p.parseLambda, p.parseAppl} {
		t, next, err := alt(pos)
		if err == nil {
			return t, next, nil
		}
		var m *mismatch
		if !errors.As(err, &m) {
			return nil, pos, err
		}
		if furthest == nil || m.pos > furthest.pos {
			furthest = m
		}
	}
	return nil, pos, furthest
}

// parseRef parses a variable in reference position.
func (p *Parser) parseRef(pos int) (Term, int, error) {
	tok, err := p.expect(pos, TokenIdent)
	if err != nil {
		return nil, pos, err
	}
	id, ok := p.scope.Lookup(tok.Literal)
	if !ok {
		return nil, pos, &Error{Kind: KindUnbound, Msg: tok.Literal, Pos: tok.Pos}
	}
	return NewVar(id, tok.Literal), pos + 1, nil
}

// parseDecl parses a variable in declaration position and gives it a fresh
// identifier.
func (p *Parser) parseDecl(pos int) (*Var, error) {
	tok, err := p.expect(pos, TokenIdent)
	if err != nil {
		return nil, err
	}
	return NewVar(NewIdent(), tok.Literal), nil
}

func (p *Parser) parseLambda(pos int) (Term, int, error) {
	i := pos
	if _, err := p.expect(i, TokenLParen); err != nil {
		return nil, pos, err
	}
	i++
	if _, err := p.expect(i, TokenBackslash); err != nil {
		return nil, pos, err
	}
	i++
	bound, err := p.parseDecl(i)
	if err != nil {
		return nil, pos, err
	}
	defer p.scope.Enter(bound.Name, bound.ID)()
	i++
	if _, err := p.expect(i, TokenDot); err != nil {
		return nil, pos, err
	}
	i++
	body, i, err := p.parseExpr(i)
	if err != nil {
		return nil, pos, err
	}
	if _, err := p.expect(i, TokenRParen); err != nil {
		return nil, pos, err
	}
	return NewAbs(*bound, body), i + 1, nil
}

func (p *Parser) parseAppl(pos int) (Term, int, error) {
	if _, err := p.expect(pos, TokenLParen); err != nil {
		return nil, pos, err
	}
	fun, i, err := p.parseExpr(pos + 1)
	if err != nil {
		return nil, pos, err
	}
	arg, i, err := p.parseExpr(i)
	if err != nil {
		return nil, pos, err
	}
	if _, err := p.expect(i, TokenRParen); err != nil {
		return nil, pos, err
	}
	return NewApp(fun, arg), i + 1, nil
}

// ParseTokens parses a token slice with a fresh scope.
func ParseTokens(tokens []Token) (Term, error) {
	return NewParser(tokens, nil).Parse()
}

// Parse parses a lambda term from a string.
func Parse(input string) (Term, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}
