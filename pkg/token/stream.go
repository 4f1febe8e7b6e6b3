package token

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Stream is an ordered token sequence owned by a single fix pass. Mutating
// operations rebuild the backing slice so removals never leave callers
// holding indices into a half-shifted sequence; every operation reports how
// the length changed and preserves the relative order of surviving tokens.
type Stream struct {
	tokens []Token
}

// NewStream wraps tokens in a Stream. The slice is owned by the stream
// afterwards.
func NewStream(tokens []Token) *Stream {
	return &Stream{tokens: tokens}
}

// Len returns the number of tokens in the stream.
func (s *Stream) Len() int {
	return len(s.tokens)
}

// At returns the token at index i.
func (s *Stream) At(i int) Token {
	return s.tokens[i]
}

// Tokens returns the backing slice for read-only iteration.
func (s *Stream) Tokens() []Token {
	return s.tokens
}

// Render concatenates the raw text of every token. For a stream produced by
// the tokenizer this reproduces the input bytes exactly.
func (s *Stream) Render() string {
	var b strings.Builder
	for _, t := range s.tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// ContainsKind reports whether any token in the stream has one of the given
// kinds. Used as a cheap pre-filter before a full scan.
func (s *Stream) ContainsKind(kinds ...Kind) bool {
	for _, t := range s.tokens {
		if t.IsAnyKind(kinds...) {
			return true
		}
	}
	return false
}

// PrevMeaningful returns the index of the nearest token before i that is
// neither whitespace nor a comment. The second result is false when no such
// token exists.
func (s *Stream) PrevMeaningful(i int) (int, bool) {
	for j := i - 1; j >= 0; j-- {
		if s.tokens[j].IsMeaningful() {
			return j, true
		}
	}
	return 0, false
}

// NextMeaningful returns the index of the nearest token after i that is
// neither whitespace nor a comment. The second result is false when no such
// token exists.
func (s *Stream) NextMeaningful(i int) (int, bool) {
	for j := i + 1; j < len(s.tokens); j++ {
		if s.tokens[j].IsMeaningful() {
			return j, true
		}
	}
	return 0, false
}

// FindMatchingClose returns the index of the ")" balancing the "(" at
// openIndex, accounting for nesting. The input is expected to be balanced;
// an unbalanced stream is a violation of the tokenizer's contract and is
// reported as an error.
func (s *Stream) FindMatchingClose(openIndex int) (int, error) {
	if openIndex < 0 || openIndex >= len(s.tokens) || s.tokens[openIndex].Kind != OpenParen {
		return 0, errors.Errorf("token at index %d is not an opening parenthesis", openIndex)
	}
	depth := 0
	for j := openIndex; j < len(s.tokens); j++ {
		switch s.tokens[j].Kind {
		case OpenParen:
			depth++
		case CloseParen:
			depth--
			if depth == 0 {
				return j, nil
			}
		}
	}
	return 0, errors.Errorf("unbalanced parenthesis at offset %d", s.tokens[openIndex].Offset)
}

// RemoveAndMergeWhitespace removes the token at i. If the removal leaves two
// whitespace tokens adjacent they are merged into one: a single space when
// neither side held a newline, the concatenated text otherwise, so line
// structure survives. Returns the number of tokens the stream lost (1 or 2).
func (s *Stream) RemoveAndMergeWhitespace(i int) int {
	removed := 1
	out := make([]Token, 0, len(s.tokens)-1)
	out = append(out, s.tokens[:i]...)

	if i > 0 && i+1 < len(s.tokens) && s.tokens[i-1].IsWhitespace() && s.tokens[i+1].IsWhitespace() {
		merged := out[len(out)-1]
		merged.Text = mergeWhitespaceText(s.tokens[i-1].Text, s.tokens[i+1].Text)
		out[len(out)-1] = merged
		out = append(out, s.tokens[i+2:]...)
		removed = 2
	} else {
		out = append(out, s.tokens[i+1:]...)
	}

	s.tokens = out
	return removed
}

// SetText rewrites the raw text of the token at i, keeping its kind and
// offset.
func (s *Stream) SetText(i int, text string) {
	s.tokens[i].Text = text
}

// ReplaceWithSpace swaps the token at i for a single space. Used when
// deleting the token outright would concatenate its neighbors into a
// different token.
func (s *Stream) ReplaceWithSpace(i int) {
	s.tokens[i] = Token{Kind: Whitespace, Text: " ", Offset: s.tokens[i].Offset}
}

func mergeWhitespaceText(left, right string) string {
	if strings.Contains(left, "\n") || strings.Contains(right, "\n") {
		return left + right
	}
	return " "
}
