// Package fixer defines the contract for token-stream rewriting rules and
// the runner that sequences them over a file.
package fixer

import (
	"context"
	"sort"

	"github.com/walteh/phpfix/pkg/token"
	"gitlab.com/tozd/go/errors"
)

// Sample is a before/after source pair used purely for documentation.
type Sample struct {
	Before string
	After  string
}

// Metadata is the human-readable description of a rule. It is not
// behaviorally load-bearing.
type Metadata struct {
	Summary string
	Samples []Sample
}

// Fixer is a single rewriting rule over a token stream.
type Fixer interface {
	// Name is the rule's unique configuration name
	Name() string
	// Priority orders rules within a run; higher runs first
	Priority() int
	// Description returns documentation metadata
	Description() Metadata
	// IsCandidate is a cheap pre-filter; when it returns false the runner
	// skips Fix for this stream entirely
	IsCandidate(stream *token.Stream) bool
	// Fix mutates the stream in place; zero mutations is the normal
	// no-op outcome, not an error
	Fix(ctx context.Context, file string, stream *token.Stream) error
}

// Configurable is implemented by rules that accept options. Configure is
// called once before any pass; an unrecognized option is a configuration
// error and the pass is not run.
type Configurable interface {
	Configure(opts map[string]any) error
}

// Registry holds the known rules by name.
type Registry struct {
	byName map[string]Fixer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]Fixer{}}
}

// Register adds a rule. Registering two rules with the same name is an
// error.
func (r *Registry) Register(f Fixer) error {
	if _, ok := r.byName[f.Name()]; ok {
		return errors.Errorf("rule %q is already registered", f.Name())
	}
	r.byName[f.Name()] = f
	return nil
}

// Lookup returns the rule with the given name.
func (r *Registry) Lookup(name string) (Fixer, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// All returns every registered rule ordered by descending priority, ties
// broken by name so the run order is deterministic.
func (r *Registry) All() []Fixer {
	out := make([]Fixer, 0, len(r.byName))
	for _, f := range r.byName {
		out = append(out, f)
	}
	sortFixers(out)
	return out
}

func sortFixers(fixers []Fixer) {
	sort.SliceStable(fixers, func(i, j int) bool {
		if fixers[i].Priority() != fixers[j].Priority() {
			return fixers[i].Priority() > fixers[j].Priority()
		}
		return fixers[i].Name() < fixers[j].Name()
	})
}
