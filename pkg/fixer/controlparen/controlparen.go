// Package controlparen removes parentheses that wrap the expression of a
// control-flow statement where the grammar does not require them, e.g.
// `return (1 + 2);` becomes `return 1 + 2;`. Parentheses that are doing
// work, such as a call argument list or a ternary inside `clone`, are left
// alone.
package controlparen

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/phpfix/pkg/fixer"
	"github.com/walteh/phpfix/pkg/token"
	"gitlab.com/tozd/go/errors"
)

// Capabilities describes what the target PHP version supports. It is
// resolved once at construction; the table never consults it again.
type Capabilities struct {
	// Yield enables the yield statement entry (PHP >= 5.5)
	Yield bool
}

// DefaultCapabilities enables every statement in the table.
func DefaultCapabilities() Capabilities {
	return Capabilities{Yield: true}
}

// Fixer is the redundant-control-parentheses rule.
type Fixer struct {
	table   []statement
	enabled map[string]bool
}

var _ fixer.Fixer = (*Fixer)(nil)
var _ fixer.Configurable = (*Fixer)(nil)

// New constructs the rule for the given capabilities. All statements are
// enabled until Configure narrows the set.
func New(caps Capabilities) *Fixer {
	table := make([]statement, 0, len(statements))
	for _, st := range statements {
		if st.name == "yield" && !caps.Yield {
			continue
		}
		table = append(table, st)
	}
	enabled := make(map[string]bool, len(statements))
	for _, st := range statements {
		enabled[st.name] = true
	}
	return &Fixer{table: table, enabled: enabled}
}

// Name implements fixer.Fixer.
func (f *Fixer) Name() string {
	return "no_unneeded_control_parentheses"
}

// Priority implements fixer.Fixer. The rule must run before
// no_trailing_whitespace so that whitespace its splices leave behind at
// line ends is cleaned up in the same run.
func (f *Fixer) Priority() int {
	return 30
}

// Description implements fixer.Fixer.
func (f *Fixer) Description() fixer.Metadata {
	return fixer.Metadata{
		Summary: "Removes unneeded parentheses around control statements.",
		Samples: []fixer.Sample{
			{Before: "<?php while ($x) { break (2); }", After: "<?php while ($x) { break 2; }"},
			{Before: "<?php $b = clone($a);", After: "<?php $b = clone $a;"},
			{Before: "<?php echo (\"foo\");", After: "<?php echo \"foo\";"},
			{Before: "<?php return (1 + 2);", After: "<?php return 1 + 2;"},
			{Before: "<?php switch ($a) { case($x); }", After: "<?php switch ($a) { case $x; }"},
			{Before: "<?php yield ($a);", After: "<?php yield $a;"},
		},
	}
}

// Configure implements fixer.Configurable. The "statements" option narrows
// which table entries are considered; unknown statement names are a
// configuration error.
func (f *Fixer) Configure(opts map[string]any) error {
	for key, value := range opts {
		if key != "statements" {
			return errors.Errorf("unknown option %q for rule %q", key, f.Name())
		}
		names, err := stringSlice(value)
		if err != nil {
			return errors.Errorf("option %q for rule %q: %w", key, f.Name(), err)
		}
		enabled := make(map[string]bool, len(names))
		for _, name := range names {
			if !isKnownStatement(name) {
				return errors.Errorf("unknown statement %q for rule %q", name, f.Name())
			}
			enabled[name] = true
		}
		f.enabled = enabled
	}
	return nil
}

// IsCandidate implements fixer.Fixer: true iff the stream contains at least
// one keyword an enabled statement anchors on.
func (f *Fixer) IsCandidate(stream *token.Stream) bool {
	var kinds []token.Kind
	for _, st := range f.table {
		if f.enabled[st.name] {
			kinds = append(kinds, st.lookupKinds...)
		}
	}
	return stream.ContainsKind(kinds...)
}

// Fix implements fixer.Fixer. One left-to-right scan; every confirmed match
// is spliced immediately and the scan continues past the opening
// parenthesis that was just resolved, so shrunk indices are never reused.
func (f *Fixer) Fix(ctx context.Context, file string, stream *token.Stream) error {
	logger := zerolog.Ctx(ctx)
	for i := 0; i < stream.Len(); i++ {
		if stream.At(i).Kind != token.OpenParen {
			continue
		}
		anchorIdx, ok := stream.PrevMeaningful(i)
		if !ok {
			continue
		}
		anchor := stream.At(anchorIdx)
		for _, st := range f.table {
			if !f.enabled[st.name] || !anchor.IsAnyKind(st.lookupKinds...) {
				continue
			}
			matched, err := f.tryStatement(stream, st, i)
			if err != nil {
				return errors.Errorf("fixing %s: %w", file, err)
			}
			if matched {
				logger.Debug().
					Str("statement", st.name).
					Int("offset", anchor.Offset).
					Msg("removed redundant parentheses")
				// the splice may have shifted the following tokens onto
				// index i; step back so the next iteration re-examines it
				// (the resolved "(" itself is gone, so this cannot loop)
				i--
				break
			}
		}
	}
	return nil
}

// tryStatement validates the successor and forbidden-interior constraints
// for the parenthesis pair opening at openIdx and splices it out when they
// hold.
func (f *Fixer) tryStatement(stream *token.Stream, st statement, openIdx int) (bool, error) {
	closeIdx, err := stream.FindMatchingClose(openIdx)
	if err != nil {
		return false, err
	}

	succIdx, ok := stream.NextMeaningful(closeIdx)
	if !ok || !stream.At(succIdx).IsAnyKind(st.neededSuccessors...) {
		// the parentheses are needed, e.g. a call argument list
		return false, nil
	}

	for j := openIdx + 1; j < closeIdx; j++ {
		for _, forbidden := range st.forbiddenContents {
			if stream.At(j).IsValue(forbidden) {
				return false, nil
			}
		}
	}

	f.splice(stream, openIdx, closeIdx)
	return true, nil
}

// splice removes the parenthesis pair. The closing token goes first so the
// opening index stays valid. Deleting the opening parenthesis outright when
// the anchor abuts it would concatenate `return` and the expression into
// one token, so that case substitutes a space instead.
func (f *Fixer) splice(stream *token.Stream, openIdx, closeIdx int) {
	stream.RemoveAndMergeWhitespace(closeIdx)
	if openIdx > 0 && !stream.At(openIdx-1).IsMeaningful() {
		stream.RemoveAndMergeWhitespace(openIdx)
	} else {
		stream.ReplaceWithSpace(openIdx)
	}
}

func isKnownStatement(name string) bool {
	for _, st := range statements {
		if st.name == name {
			return true
		}
	}
	return false
}

func stringSlice(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Errorf("expected string, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.Errorf("expected list of strings, got %T", value)
	}
}
