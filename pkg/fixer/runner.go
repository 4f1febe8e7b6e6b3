package fixer

import (
	"context"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/walteh/phpfix/pkg/position"
	"github.com/walteh/phpfix/pkg/token"
)

// Change records one rule having modified one file. Line and Character
// locate the first byte at which the rendered output diverged from the
// input.
type Change struct {
	Rule string
	File string
	position.Place
}

// Runner applies an ordered set of rules to a file's token stream.
type Runner struct {
	fixers []Fixer
	runID  uuid.UUID
}

// NewRunner returns a runner over the given rules, ordered by descending
// priority. The slice is copied.
func NewRunner(fixers []Fixer) *Runner {
	ordered := make([]Fixer, len(fixers))
	copy(ordered, fixers)
	sortFixers(ordered)
	return &Runner{fixers: ordered, runID: uuid.New()}
}

// RunID identifies this runner's lifetime in logs.
func (r *Runner) RunID() uuid.UUID {
	return r.runID
}

// Fixers returns the rules in run order.
func (r *Runner) Fixers() []Fixer {
	return r.fixers
}

// Without returns a runner over the same run id minus the named rules.
// Used when a per-file convention opts a file out of a rule.
func (r *Runner) Without(names ...string) *Runner {
	skip := map[string]bool{}
	for _, name := range names {
		skip[name] = true
	}
	kept := make([]Fixer, 0, len(r.fixers))
	for _, f := range r.fixers {
		if !skip[f.Name()] {
			kept = append(kept, f)
		}
	}
	return &Runner{fixers: kept, runID: r.runID}
}

// Fix runs every rule over the stream in priority order. A failing rule
// does not stop the remaining rules; all failures are aggregated. The
// returned changes name each rule that modified the file.
func (r *Runner) Fix(ctx context.Context, file string, stream *token.Stream) ([]Change, error) {
	logger := zerolog.Ctx(ctx).With().
		Stringer("run_id", r.runID).
		Str("file", file).
		Logger()
	ctx = logger.WithContext(ctx)

	var changes []Change
	var errs *multierror.Error
	for _, f := range r.fixers {
		if !f.IsCandidate(stream) {
			logger.Trace().Str("rule", f.Name()).Msg("not a candidate, skipping")
			continue
		}
		before := stream.Render()
		if err := f.Fix(ctx, file, stream); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		after := stream.Render()
		if after == before {
			continue
		}
		place := position.Resolve(before, firstDivergence(before, after))
		changes = append(changes, Change{Rule: f.Name(), File: file, Place: place})
		logger.Debug().
			Str("rule", f.Name()).
			Int("line", place.Line).
			Int("col", place.Character).
			Msg("rule modified file")
	}
	return changes, errs.ErrorOrNil()
}

func firstDivergence(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
