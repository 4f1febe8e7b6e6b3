// Package tokenizer turns PHP source text into a token.Stream. It covers the
// subset of the grammar the fixer rules navigate: tags, comments, strings,
// variables, keywords, and punctuation. Whitespace and comments are emitted
// as tokens so the stream renders back to the exact input bytes.
package tokenizer

import (
	"strings"

	"github.com/walteh/phpfix/pkg/token"
	"gitlab.com/tozd/go/errors"
)

var keywords = map[string]token.Kind{
	"break":    token.Break,
	"case":     token.Case,
	"clone":    token.Clone,
	"continue": token.Continue,
	"echo":     token.Echo,
	"else":     token.Else,
	"foreach":  token.Foreach,
	"function": token.Function,
	"if":       token.If,
	"new":      token.New,
	"print":    token.Print,
	"return":   token.Return,
	"switch":   token.Switch,
	"while":    token.While,
	"yield":    token.Yield,
}

var punctuation = map[byte]token.Kind{
	'(': token.OpenParen,
	')': token.CloseParen,
	'{': token.OpenBrace,
	'}': token.CloseBrace,
	'[': token.OpenBracket,
	']': token.CloseBracket,
	';': token.Semicolon,
	',': token.Comma,
}

// Longest first so "===" wins over "==" wins over "=".
var operators = []string{
	"===", "!==", "<=>", "<<=", ">>=", "**=", "??=",
	"==", "!=", "<>", "<=", ">=", "&&", "||", "??", "++", "--",
	"+=", "-=", "*=", "/=", ".=", "%=", "**", "<<", ">>",
	"+", "-", "*", "/", "%", ".", "=", "<", ">", "!", "&", "|", "^", "~", "@",
}

type scanner struct {
	src    string
	pos    int
	tokens []token.Token
}

// Tokenize scans src and returns the resulting stream. The only failure
// modes are unterminated strings and unterminated block comments.
func Tokenize(src string) (*token.Stream, error) {
	s := &scanner{src: src}
	if err := s.run(); err != nil {
		return nil, err
	}
	return token.NewStream(s.tokens), nil
}

func (s *scanner) run() error {
	for s.pos < len(s.src) {
		if err := s.scanHTML(); err != nil {
			return err
		}
	}
	return nil
}

// scanHTML consumes inline HTML up to the next open tag, then hands off to
// the PHP scanner until the matching close tag.
func (s *scanner) scanHTML() error {
	start := s.pos
	idx := strings.Index(s.src[s.pos:], "<?")
	if idx < 0 {
		s.emit(token.InlineHTML, s.src[s.pos:], start)
		s.pos = len(s.src)
		return nil
	}
	if idx > 0 {
		s.emit(token.InlineHTML, s.src[s.pos:s.pos+idx], start)
		s.pos += idx
	}
	tagStart := s.pos
	if strings.HasPrefix(s.src[s.pos:], "<?php") {
		s.pos += len("<?php")
	} else if strings.HasPrefix(s.src[s.pos:], "<?=") {
		s.pos += len("<?=")
	} else {
		// "<?" short open tag
		s.pos += len("<?")
	}
	s.emit(token.OpenTag, s.src[tagStart:s.pos], tagStart)
	return s.scanPHP()
}

func (s *scanner) scanPHP() error {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case isSpace(c):
			s.scanWhitespace()
		case strings.HasPrefix(s.src[s.pos:], "?>"):
			s.emit(token.CloseTag, "?>", s.pos)
			s.pos += 2
			return nil
		case strings.HasPrefix(s.src[s.pos:], "//") || c == '#':
			s.scanLineComment()
		case strings.HasPrefix(s.src[s.pos:], "/*"):
			if err := s.scanBlockComment(); err != nil {
				return err
			}
		case c == '\'' || c == '"':
			if err := s.scanString(c); err != nil {
				return err
			}
		case c == '$':
			s.scanVariable()
		case isDigit(c):
			s.scanNumber()
		case isIdentStart(c):
			s.scanIdent()
		case punctuation[c] != token.Illegal:
			s.emit(punctuation[c], string(c), s.pos)
			s.pos++
		default:
			s.scanOperator()
		}
	}
	return nil
}

func (s *scanner) scanWhitespace() {
	start := s.pos
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
	s.emit(token.Whitespace, s.src[start:s.pos], start)
}

func (s *scanner) scanLineComment() {
	start := s.pos
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		// a close tag ends a line comment as well
		if strings.HasPrefix(s.src[s.pos:], "?>") {
			break
		}
		s.pos++
	}
	s.emit(token.LineComment, s.src[start:s.pos], start)
}

func (s *scanner) scanBlockComment() error {
	start := s.pos
	end := strings.Index(s.src[s.pos+2:], "*/")
	if end < 0 {
		return errors.Errorf("unterminated block comment at offset %d", start)
	}
	s.pos += 2 + end + 2
	s.emit(token.BlockComment, s.src[start:s.pos], start)
	return nil
}

func (s *scanner) scanString(quote byte) error {
	start := s.pos
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case quote:
			s.pos++
			s.emit(token.String, s.src[start:s.pos], start)
			return nil
		}
		s.pos++
	}
	return errors.Errorf("unterminated string at offset %d", start)
}

func (s *scanner) scanVariable() {
	start := s.pos
	s.pos++
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
	s.emit(token.Variable, s.src[start:s.pos], start)
}

func (s *scanner) scanNumber() {
	start := s.pos
	for s.pos < len(s.src) && (isDigit(s.src[s.pos]) || s.src[s.pos] == '.' ||
		s.src[s.pos] == '_' || s.src[s.pos] == 'x' || s.src[s.pos] == 'e' ||
		isHexLetter(s.src[s.pos])) {
		s.pos++
	}
	s.emit(token.Number, s.src[start:s.pos], start)
}

func (s *scanner) scanIdent() {
	start := s.pos
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
	text := s.src[start:s.pos]
	kind := token.Ident
	if k, ok := keywords[strings.ToLower(text)]; ok {
		kind = k
	}
	s.emit(kind, text, start)
}

func (s *scanner) scanOperator() {
	rest := s.src[s.pos:]
	switch {
	case strings.HasPrefix(rest, "->"):
		s.emit(token.Arrow, "->", s.pos)
		s.pos += 2
		return
	case strings.HasPrefix(rest, "=>"):
		s.emit(token.DoubleArrow, "=>", s.pos)
		s.pos += 2
		return
	case strings.HasPrefix(rest, "::"):
		s.emit(token.DoubleColon, "::", s.pos)
		s.pos += 2
		return
	}
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			s.emit(token.Operator, op, s.pos)
			s.pos += len(op)
			return
		}
	}
	switch s.src[s.pos] {
	case ':':
		s.emit(token.Colon, ":", s.pos)
		s.pos++
	case '?':
		s.emit(token.Question, "?", s.pos)
		s.pos++
	default:
		s.emit(token.Illegal, string(s.src[s.pos]), s.pos)
		s.pos++
	}
}

func (s *scanner) emit(kind token.Kind, text string, offset int) {
	s.tokens = append(s.tokens, token.Token{Kind: kind, Text: text, Offset: offset})
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexLetter(c byte) bool {
	return (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
