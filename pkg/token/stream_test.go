package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/phpfix/pkg/token"
)

func ws(text string) token.Token {
	return token.Token{Kind: token.Whitespace, Text: text}
}

func tok(kind token.Kind, text string) token.Token {
	return token.Token{Kind: kind, Text: text}
}

func TestStream_Navigation(t *testing.T) {
	s := token.NewStream([]token.Token{
		tok(token.Return, "return"),
		ws(" "),
		tok(token.BlockComment, "/* c */"),
		tok(token.OpenParen, "("),
		tok(token.Number, "1"),
		tok(token.CloseParen, ")"),
		ws(" "),
		tok(token.Semicolon, ";"),
	})

	prev, ok := s.PrevMeaningful(3)
	require.True(t, ok)
	assert.Equal(t, 0, prev, "whitespace and comments are skipped")

	next, ok := s.NextMeaningful(5)
	require.True(t, ok)
	assert.Equal(t, 7, next)

	_, ok = s.PrevMeaningful(0)
	assert.False(t, ok)

	_, ok = s.NextMeaningful(7)
	assert.False(t, ok)
}

func TestStream_FindMatchingClose(t *testing.T) {
	s := token.NewStream([]token.Token{
		tok(token.OpenParen, "("),
		tok(token.Ident, "foo"),
		tok(token.OpenParen, "("),
		tok(token.Number, "1"),
		tok(token.CloseParen, ")"),
		tok(token.CloseParen, ")"),
	})

	closeIdx, err := s.FindMatchingClose(0)
	require.NoError(t, err)
	assert.Equal(t, 5, closeIdx, "nested pair is skipped")

	closeIdx, err = s.FindMatchingClose(2)
	require.NoError(t, err)
	assert.Equal(t, 4, closeIdx)
}

func TestStream_FindMatchingClose_Errors(t *testing.T) {
	s := token.NewStream([]token.Token{
		tok(token.OpenParen, "("),
		tok(token.Number, "1"),
	})

	_, err := s.FindMatchingClose(0)
	require.Error(t, err, "unbalanced stream is an upstream contract violation")

	_, err = s.FindMatchingClose(1)
	require.Error(t, err, "index must hold an opening parenthesis")
}

func TestStream_RemoveAndMergeWhitespace(t *testing.T) {
	tests := []struct {
		name        string
		tokens      []token.Token
		remove      int
		wantRemoved int
		want        string
	}{
		{
			name:        "plain removal",
			tokens:      []token.Token{tok(token.Number, "1"), tok(token.CloseParen, ")"), tok(token.Semicolon, ";")},
			remove:      1,
			wantRemoved: 1,
			want:        "1;",
		},
		{
			name:        "adjacent spaces merge to one",
			tokens:      []token.Token{tok(token.Return, "return"), ws(" "), tok(token.OpenParen, "("), ws(" "), tok(token.Number, "1")},
			remove:      2,
			wantRemoved: 2,
			want:        "return 1",
		},
		{
			name:        "newline survives the merge",
			tokens:      []token.Token{tok(token.Return, "return"), ws(" "), tok(token.OpenParen, "("), ws("\n\t"), tok(token.Number, "1")},
			remove:      2,
			wantRemoved: 2,
			want:        "return \n\t1",
		},
		{
			name:        "removal at the end",
			tokens:      []token.Token{tok(token.Number, "1"), tok(token.CloseParen, ")")},
			remove:      1,
			wantRemoved: 1,
			want:        "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := token.NewStream(tt.tokens)
			removed := s.RemoveAndMergeWhitespace(tt.remove)
			assert.Equal(t, tt.wantRemoved, removed)
			assert.Equal(t, tt.want, s.Render())
		})
	}
}

func TestStream_ReplaceWithSpace(t *testing.T) {
	s := token.NewStream([]token.Token{
		tok(token.Return, "return"),
		tok(token.OpenParen, "("),
		tok(token.Number, "1"),
	})
	s.ReplaceWithSpace(1)
	assert.Equal(t, "return 1", s.Render())
	assert.Equal(t, token.Whitespace, s.At(1).Kind)
}

func TestStream_ContainsKind(t *testing.T) {
	s := token.NewStream([]token.Token{
		tok(token.Return, "return"),
		ws(" "),
		tok(token.Number, "1"),
	})
	assert.True(t, s.ContainsKind(token.Return))
	assert.True(t, s.ContainsKind(token.Break, token.Number))
	assert.False(t, s.ContainsKind(token.Break, token.Clone))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Return", token.Return.String())
	assert.Equal(t, "Whitespace", token.Whitespace.String())
	assert.Equal(t, "Kind(999)", token.Kind(999).String())
}

func TestToken_Predicates(t *testing.T) {
	assert.True(t, ws(" ").IsWhitespace())
	assert.True(t, tok(token.LineComment, "// x").IsComment())
	assert.True(t, tok(token.BlockComment, "/* x */").IsComment())
	assert.False(t, ws(" ").IsMeaningful())
	assert.True(t, tok(token.Return, "return").IsMeaningful())
	assert.True(t, token.Return.IsKeyword())
	assert.False(t, token.OpenParen.IsKeyword())
}
