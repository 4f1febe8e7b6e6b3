package fixer_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/phpfix/pkg/fixer"
	"github.com/walteh/phpfix/pkg/token"
	"gitlab.com/tozd/go/errors"
)

// stubFixer records the order it ran in and optionally rewrites or fails.
type stubFixer struct {
	name     string
	priority int
	ran      *[]string
	fail     bool
	rewrite  string
}

func (s *stubFixer) Name() string                  { return s.name }
func (s *stubFixer) Priority() int                 { return s.priority }
func (s *stubFixer) Description() fixer.Metadata   { return fixer.Metadata{Summary: s.name} }
func (s *stubFixer) IsCandidate(*token.Stream) bool { return true }

func (s *stubFixer) Fix(ctx context.Context, file string, stream *token.Stream) error {
	*s.ran = append(*s.ran, s.name)
	if s.fail {
		return errors.Errorf("rule %s failed", s.name)
	}
	if s.rewrite != "" {
		stream.SetText(0, s.rewrite)
	}
	return nil
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: io.Discard, NoColor: true}).Level(zerolog.WarnLevel)
	return logger.WithContext(context.Background())
}

func singleTokenStream(text string) *token.Stream {
	return token.NewStream([]token.Token{{Kind: token.Ident, Text: text}})
}

func TestRunner_PriorityOrder(t *testing.T) {
	var ran []string
	runner := fixer.NewRunner([]fixer.Fixer{
		&stubFixer{name: "last", priority: 0, ran: &ran},
		&stubFixer{name: "first", priority: 30, ran: &ran},
		&stubFixer{name: "middle", priority: 10, ran: &ran},
	})

	_, err := runner.Fix(testContext(t), "a.php", singleTokenStream("x"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "middle", "last"}, ran)
}

func TestRunner_TieBreaksOnName(t *testing.T) {
	var ran []string
	runner := fixer.NewRunner([]fixer.Fixer{
		&stubFixer{name: "banana", priority: 5, ran: &ran},
		&stubFixer{name: "apple", priority: 5, ran: &ran},
	})

	_, err := runner.Fix(testContext(t), "a.php", singleTokenStream("x"))
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "banana"}, ran)
}

func TestRunner_RecordsChanges(t *testing.T) {
	var ran []string
	runner := fixer.NewRunner([]fixer.Fixer{
		&stubFixer{name: "noop", priority: 10, ran: &ran},
		&stubFixer{name: "writer", priority: 5, ran: &ran, rewrite: "y"},
	})

	changes, err := runner.Fix(testContext(t), "a.php", singleTokenStream("x"))
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "writer", changes[0].Rule)
	assert.Equal(t, "a.php", changes[0].File)
}

func TestRunner_AggregatesErrors(t *testing.T) {
	var ran []string
	runner := fixer.NewRunner([]fixer.Fixer{
		&stubFixer{name: "bad", priority: 10, ran: &ran, fail: true},
		&stubFixer{name: "good", priority: 5, ran: &ran, rewrite: "y"},
	})

	changes, err := runner.Fix(testContext(t), "a.php", singleTokenStream("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule bad failed")
	assert.Equal(t, []string{"bad", "good"}, ran, "a failing rule does not stop the rest")
	assert.Len(t, changes, 1)
}

func TestRunner_Without(t *testing.T) {
	var ran []string
	runner := fixer.NewRunner([]fixer.Fixer{
		&stubFixer{name: "keep", priority: 10, ran: &ran},
		&stubFixer{name: "drop", priority: 5, ran: &ran},
	})

	derived := runner.Without("drop")
	assert.Equal(t, runner.RunID(), derived.RunID())

	_, err := derived.Fix(testContext(t), "a.php", singleTokenStream("x"))
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, ran)
}

func TestRegistry(t *testing.T) {
	var ran []string
	registry := fixer.NewRegistry()
	require.NoError(t, registry.Register(&stubFixer{name: "a", priority: 1, ran: &ran}))
	require.NoError(t, registry.Register(&stubFixer{name: "b", priority: 2, ran: &ran}))

	err := registry.Register(&stubFixer{name: "a", priority: 3, ran: &ran})
	require.Error(t, err, "duplicate names are rejected")

	_, ok := registry.Lookup("a")
	assert.True(t, ok)
	_, ok = registry.Lookup("missing")
	assert.False(t, ok)

	all := registry.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Name(), "higher priority first")
}
