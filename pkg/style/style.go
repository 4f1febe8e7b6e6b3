// Package style resolves per-file output conventions from .editorconfig.
package style

import (
	"github.com/editorconfig/editorconfig-core-go/v2"
	"gitlab.com/tozd/go/errors"
)

// Conventions are the output settings phpfix honors when writing a file.
type Conventions struct {
	// InsertFinalNewline ensures the written file ends with a newline
	InsertFinalNewline bool
	// TrimTrailingWhitespace gates the no_trailing_whitespace rule
	TrimTrailingWhitespace bool
}

// DefaultConventions apply when no .editorconfig declares otherwise.
func DefaultConventions() Conventions {
	return Conventions{InsertFinalNewline: true, TrimTrailingWhitespace: true}
}

// Resolve returns the conventions for the file at path, walking up to the
// nearest .editorconfig definitions the way editors do.
func Resolve(path string) (Conventions, error) {
	def, err := editorconfig.GetDefinitionForFilename(path)
	if err != nil {
		return DefaultConventions(), errors.Errorf("resolving editorconfig for %s: %w", path, err)
	}

	conv := DefaultConventions()
	if def.InsertFinalNewline != nil {
		conv.InsertFinalNewline = *def.InsertFinalNewline
	}
	if def.TrimTrailingWhitespace != nil {
		conv.TrimTrailingWhitespace = *def.TrimTrailingWhitespace
	}
	return conv, nil
}

// Apply adjusts rendered output to the conventions. Only the final-newline
// setting affects bytes; trailing-whitespace trimming is a rule, not a
// write-time rewrite.
func (c Conventions) Apply(rendered string) string {
	if c.InsertFinalNewline && rendered != "" && rendered[len(rendered)-1] != '\n' {
		return rendered + "\n"
	}
	return rendered
}
