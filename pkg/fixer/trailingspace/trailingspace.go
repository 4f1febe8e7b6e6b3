// Package trailingspace removes whitespace at the end of lines. It runs
// after the higher-priority rules so any line-end whitespace their splices
// leave behind is cleaned up in the same pass.
package trailingspace

import (
	"context"
	"regexp"
	"strings"

	"github.com/walteh/phpfix/pkg/fixer"
	"github.com/walteh/phpfix/pkg/token"
)

var trailingRun = regexp.MustCompile(`[ \t]+(\r?\n)`)

// Fixer is the trailing-whitespace rule.
type Fixer struct{}

var _ fixer.Fixer = (*Fixer)(nil)

// New returns the rule. It has no options.
func New() *Fixer {
	return &Fixer{}
}

// Name implements fixer.Fixer.
func (f *Fixer) Name() string {
	return "no_trailing_whitespace"
}

// Priority implements fixer.Fixer; it runs after the splicing rules.
func (f *Fixer) Priority() int {
	return 0
}

// Description implements fixer.Fixer.
func (f *Fixer) Description() fixer.Metadata {
	return fixer.Metadata{
		Summary: "Removes whitespace at the end of lines.",
		Samples: []fixer.Sample{
			{Before: "<?php\n$a = 1;   \n", After: "<?php\n$a = 1;\n"},
		},
	}
}

// IsCandidate implements fixer.Fixer.
func (f *Fixer) IsCandidate(stream *token.Stream) bool {
	return stream.ContainsKind(token.Whitespace)
}

// Fix implements fixer.Fixer.
func (f *Fixer) Fix(ctx context.Context, file string, stream *token.Stream) error {
	for i := 0; i < stream.Len(); i++ {
		t := stream.At(i)
		if !t.IsWhitespace() {
			continue
		}
		text := trailingRun.ReplaceAllString(t.Text, "$1")
		if i == stream.Len()-1 {
			// whitespace-only run at the end of the embedded code
			text = strings.TrimRight(text, " \t")
		}
		if text == t.Text {
			continue
		}
		if text == "" {
			stream.RemoveAndMergeWhitespace(i)
			i--
			continue
		}
		stream.SetText(i, text)
	}
	return nil
}
