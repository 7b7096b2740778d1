package jsast

import (
	"sort"
	"strings"
)

// TokenType classifies a lexical token.
type TokenType int

const (
	TokenPunctuator TokenType = iota
	TokenKeyword
	TokenIdentifier
	TokenString
	TokenNumeric
	TokenBoolean
	TokenNull
	TokenTemplate
	TokenRegularExpression
	TokenJSX
	TokenLineComment
	TokenBlockComment
)

// Token is an immutable lexical unit of the source.
type Token struct {
	Type  TokenType
	Value string
	rng   Range
	loc   Loc
}

func (t *Token) Range() Range { return t.rng }
func (t *Token) Loc() Loc     { return t.loc }

// IsComment reports whether t is a line or block comment.
func (t *Token) IsComment() bool {
	return t.Type == TokenLineComment || t.Type == TokenBlockComment
}

// IsPunctuator reports whether t is the punctuator value.
func (t *Token) IsPunctuator(value string) bool {
	return t != nil && t.Type == TokenPunctuator && t.Value == value
}

// SourceCode gives rules read access to the text and tokens of one file.
type SourceCode struct {
	Text     string
	Program  *Program
	Parents  *Parents
	tokens   []*Token
	comments []*Token
	all      []*Token
	lines    []int
}

// NewSourceCode indexes text and an ordered token stream. Comment tokens may be
// interleaved with the others.
func NewSourceCode(text string, program *Program, stream []*Token) *SourceCode {
	sc := &SourceCode{
		Text:    text,
		Program: program,
		all:     stream,
		lines:   []int{0},
	}
	for _, t := range stream {
		if t.IsComment() {
			sc.comments = append(sc.comments, t)
		} else {
			sc.tokens = append(sc.tokens, t)
		}
	}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			sc.lines = append(sc.lines, i+1)
		}
	}
	if program != nil {
		sc.Parents = BuildParents(program)
	}
	return sc
}

// Comments returns every comment token in source order.
func (sc *SourceCode) Comments() []*Token { return sc.comments }

// AllTokens returns every non-comment token in source order.
func (sc *SourceCode) AllTokens() []*Token { return sc.tokens }

// Lines returns the source split into lines without terminators.
func (sc *SourceCode) Lines() []string { return strings.Split(sc.Text, "\n") }

// LineStart returns the byte offset of the first character of the 1-based line.
func (sc *SourceCode) LineStart(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(sc.lines) {
		return len(sc.Text)
	}
	return sc.lines[line-1]
}

// PositionAt converts a byte offset into a Position.
func (sc *SourceCode) PositionAt(offset int) Position {
	line := sort.Search(len(sc.lines), func(i int) bool { return sc.lines[i] > offset })
	return Position{Line: line, Column: offset - sc.lines[line-1]}
}

// TextOf returns the source text of x.
func (sc *SourceCode) TextOf(x Located) string {
	r := x.Range()
	return sc.Text[r.Start:r.End]
}

// TextRange returns the source between two byte offsets.
func (sc *SourceCode) TextRange(r Range) string {
	if r.Start < 0 || r.End > len(sc.Text) || r.Start > r.End {
		return ""
	}
	return sc.Text[r.Start:r.End]
}

// TokenOption tunes a token query.
type TokenOption func(*tokenQuery)

type tokenQuery struct {
	comments bool
	filter   func(*Token) bool
}

// IncludeComments makes a query consider comment tokens.
func IncludeComments() TokenOption {
	return func(q *tokenQuery) { q.comments = true }
}

// Where restricts a query to tokens accepted by f.
func Where(f func(*Token) bool) TokenOption {
	return func(q *tokenQuery) { q.filter = f }
}

// Punctuator matches punctuator tokens with the given value.
func Punctuator(value string) TokenOption {
	return Where(func(t *Token) bool { return t.IsPunctuator(value) })
}

func (sc *SourceCode) query(opts []TokenOption) ([]*Token, func(*Token) bool) {
	var q tokenQuery
	for _, o := range opts {
		o(&q)
	}
	stream := sc.tokens
	if q.comments {
		stream = sc.all
	}
	accept := q.filter
	if accept == nil {
		accept = func(*Token) bool { return true }
	}
	return stream, accept
}

// TokenBefore returns the nearest token ending at or before the start of x, or
// nil at the start of the file.
func (sc *SourceCode) TokenBefore(x Located, opts ...TokenOption) *Token {
	stream, accept := sc.query(opts)
	start := x.Range().Start
	i := sort.Search(len(stream), func(i int) bool { return stream[i].rng.End > start })
	for i--; i >= 0; i-- {
		if accept(stream[i]) {
			return stream[i]
		}
	}
	return nil
}

// TokenAfter returns the nearest token starting at or after the end of x, or
// nil at the end of the file.
func (sc *SourceCode) TokenAfter(x Located, opts ...TokenOption) *Token {
	stream, accept := sc.query(opts)
	end := x.Range().End
	i := sort.Search(len(stream), func(i int) bool { return stream[i].rng.Start >= end })
	for ; i < len(stream); i++ {
		if accept(stream[i]) {
			return stream[i]
		}
	}
	return nil
}

// Tokens returns the tokens inside x that satisfy opts.
func (sc *SourceCode) Tokens(x Located, opts ...TokenOption) []*Token {
	r := x.Range()
	return sc.tokensIn(r.Start, r.End, opts)
}

// TokensBetween returns the tokens strictly between a and b.
func (sc *SourceCode) TokensBetween(a, b Located, opts ...TokenOption) []*Token {
	return sc.tokensIn(a.Range().End, b.Range().Start, opts)
}

func (sc *SourceCode) tokensIn(start, end int, opts []TokenOption) []*Token {
	stream, accept := sc.query(opts)
	i := sort.Search(len(stream), func(i int) bool { return stream[i].rng.Start >= start })
	var out []*Token
	for ; i < len(stream) && stream[i].rng.End <= end; i++ {
		if accept(stream[i]) {
			out = append(out, stream[i])
		}
	}
	return out
}

// FirstToken returns the first token of x that satisfies opts.
func (sc *SourceCode) FirstToken(x Located, opts ...TokenOption) *Token {
	toks := sc.Tokens(x, opts...)
	if len(toks) == 0 {
		return nil
	}
	return toks[0]
}

// LastToken returns the last token of x that satisfies opts.
func (sc *SourceCode) LastToken(x Located, opts ...TokenOption) *Token {
	toks := sc.Tokens(x, opts...)
	if len(toks) == 0 {
		return nil
	}
	return toks[len(toks)-1]
}

// CommentsIn reports whether any comment lies strictly between the two offsets.
func (sc *SourceCode) CommentsIn(r Range) bool {
	for _, c := range sc.comments {
		if c.rng.Start >= r.Start && c.rng.End <= r.End {
			return true
		}
	}
	return false
}
