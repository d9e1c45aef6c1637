// Package parse classifies the token stream from internal/tokenize into
// the Cell trees internal/eval runs: word-family detection, number/path
// segmentation, and the bracket/paren nesting that builds block!/group!
// series. This is an external collaborator to the evaluator core (spec.md
// explicitly places "source text lexing... path traversal algorithms" out
// of the core's scope), grounded on the teacher's internal/parse/parse.go
// classification rules but simplified: this repo's evaluator treats `+`
// `-` `*` `/` as ordinary (enfix) actions, so there is no infix-to-prefix
// rewrite here the way the teacher's parser performs -- the parser just
// emits cells in source order and the evaluator's lookahead does the rest
// (spec.md §4.2).
package parse

import (
	"strconv"
	"strings"

	"github.com/renc-lang/rcore/internal/tokenize"
	"github.com/renc-lang/rcore/internal/value"
	"github.com/renc-lang/rcore/internal/verror"
)

// Parse scans input and classifies it into a slice of top-level cells,
// each bound to ctx (nil leaves cells unbound; the caller typically binds
// with a fresh bind.Context before evaluating).
func Parse(input string, ctx value.Context) ([]value.Cell, error) {
	toks, err := tokenize.NewTokenizer(input).Tokenize()
	if err != nil {
		return nil, verror.NewSyntaxError(verror.ErrIDInvalidSyntax, [3]string{err.Error(), "", ""})
	}
	p := &parser{toks: toks, ctx: ctx}
	cells, err := p.parseUntil(tokenize.TokenEOF)
	if err != nil {
		return nil, err
	}
	return cells, nil
}

type parser struct {
	toks []tokenize.Token
	pos  int
	ctx  value.Context
}

func (p *parser) peek() tokenize.Token {
	if p.pos >= len(p.toks) {
		return tokenize.Token{Type: tokenize.TokenEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) next() tokenize.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

// parseUntil consumes cells until it sees a token of the given closing
// type (TokenEOF for the top level, TokenRBracket/TokenRParen for nested
// block!/group! bodies), leaving the closer itself unconsumed.
func (p *parser) parseUntil(closer tokenize.TokenType) ([]value.Cell, error) {
	var cells []value.Cell
	for {
		tok := p.peek()
		if tok.Type == closer {
			return cells, nil
		}
		if tok.Type == tokenize.TokenEOF {
			return nil, verror.NewSyntaxError(verror.ErrIDUnclosedBlock, [3]string{"", "", ""})
		}
		cell, err := p.parseOne()
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
}

func (p *parser) parseOne() (value.Cell, error) {
	tok := p.next()
	switch tok.Type {
	case tokenize.TokenLBracket:
		elems, err := p.parseUntil(tokenize.TokenRBracket)
		if err != nil {
			return value.Void(), err
		}
		if p.peek().Type != tokenize.TokenRBracket {
			return value.Void(), verror.NewSyntaxError(verror.ErrIDUnclosedBlock, [3]string{"", "", ""})
		}
		p.next()
		return value.Block(elems).WithSpecifier(p.ctx), nil

	case tokenize.TokenLParen:
		elems, err := p.parseUntil(tokenize.TokenRParen)
		if err != nil {
			return value.Void(), err
		}
		if p.peek().Type != tokenize.TokenRParen {
			return value.Void(), verror.NewSyntaxError(verror.ErrIDUnclosedParen, [3]string{"", "", ""})
		}
		p.next()
		return value.Group(elems).WithSpecifier(p.ctx), nil

	case tokenize.TokenRBracket, tokenize.TokenRParen:
		return value.Void(), verror.NewSyntaxError(verror.ErrIDInvalidSyntax, [3]string{"unexpected closing bracket", "", ""})

	case tokenize.TokenString:
		return value.Str(tok.Value), nil

	case tokenize.TokenBinary:
		b, err := decodeHex(tok.Value)
		if err != nil {
			return value.Void(), verror.NewSyntaxError(verror.ErrIDInvalidLiteral, [3]string{tok.Value, "", ""})
		}
		return value.Binary(b), nil

	case tokenize.TokenLiteral:
		return p.classify(tok.Value)

	default:
		return value.Void(), verror.NewSyntaxError(verror.ErrIDUnexpectedEOF, [3]string{"", "", ""})
	}
}

func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		s = "0" + s
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}

// classify turns one literal run into the correct cell kind: logic/none/
// null/blank keywords, lit-word escapes, issue `#tag`, get-word/get-path
// `:word`, set-word/set-path `word:`, path `a/b/c`, integer, decimal, or
// a plain word -- in that priority order (spec.md §3's kind list).
func (p *parser) classify(lit string) (value.Cell, error) {
	switch lit {
	case "true":
		return value.Logic(true), nil
	case "false":
		return value.Logic(false), nil
	case "none", "null":
		return value.Null(), nil
	case "_":
		return value.Blank(), nil
	}

	if quotes := leadingQuotes(lit); quotes > 0 {
		inner, err := p.classify(lit[quotes:])
		if err != nil {
			return value.Void(), err
		}
		for range quotes {
			inner = inner.Escape()
		}
		return inner, nil
	}

	if strings.HasPrefix(lit, "#") && len(lit) > 1 {
		return value.Issue(lit[1:]), nil
	}

	if strings.HasPrefix(lit, ":") && len(lit) > 1 {
		return p.wordish(lit[1:], kindGet)
	}

	if lit != ":" && strings.HasSuffix(lit, ":") && len(lit) > 1 {
		return p.wordish(lit[:len(lit)-1], kindSet)
	}

	if lit != "/" && strings.Contains(lit, "/") {
		return p.wordish(lit, kindPlain)
	}

	if n, ok := parseInteger(lit); ok {
		return value.Integer(n), nil
	}
	if d, ok := parseDecimal(lit); ok {
		return value.Decimal(d), nil
	}

	return value.Word(lit).WithSpecifier(p.ctx), nil
}

type wordishKind int

const (
	kindPlain wordishKind = iota
	kindGet
	kindSet
)

// wordish builds a word or path cell (in the given set/get/plain flavor)
// from body, splitting on '/' into path segments when body contains one.
func (p *parser) wordish(body string, kind wordishKind) (value.Cell, error) {
	if !strings.Contains(body, "/") {
		switch kind {
		case kindGet:
			return value.GetWordCell(body).WithSpecifier(p.ctx), nil
		case kindSet:
			return value.SetWordCell(body).WithSpecifier(p.ctx), nil
		default:
			return value.Word(body).WithSpecifier(p.ctx), nil
		}
	}

	parts := strings.Split(body, "/")
	segs := make([]value.Cell, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return value.Void(), verror.NewSyntaxError(verror.ErrIDInvalidSyntax, [3]string{"empty path segment in: " + body, "", ""})
		}
		if n, ok := parseInteger(part); ok {
			segs = append(segs, value.Integer(n))
			continue
		}
		segs = append(segs, value.Word(part).WithSpecifier(p.ctx))
	}
	switch kind {
	case kindGet:
		return value.GetPath(segs).WithSpecifier(p.ctx), nil
	case kindSet:
		return value.SetPath(segs).WithSpecifier(p.ctx), nil
	default:
		return value.Path(segs).WithSpecifier(p.ctx), nil
	}
}

func leadingQuotes(lit string) int {
	n := 0
	for n < len(lit) && lit[n] == '\'' {
		n++
	}
	if n == len(lit) {
		return 0
	}
	return n
}

func parseInteger(lit string) (int64, bool) {
	if lit == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseDecimal(lit string) (float64, bool) {
	if !strings.ContainsAny(lit, ".eE") {
		return 0, false
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
