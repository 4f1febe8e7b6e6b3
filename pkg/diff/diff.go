// Package diff renders readable diffs for check mode and test failures.
package diff

import (
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/kylelemons/godebug/diff"
)

// Strings returns a line diff from before to after, with "-"/"+" markers,
// or "" when the inputs are equal.
func Strings(before, after string) string {
	return diff.Diff(before, after)
}

// ExportedOnly pretty-prints want and got with unexported fields hidden and
// diffs the renderings. Meant for test failure output on structured values.
func ExportedOnly[T any](want T, got T) string {
	printer := pp.New()
	printer.SetExportedOnly(true)
	printer.SetColoringEnabled(false)
	d := diff.Diff(printer.Sprint(got), printer.Sprint(want))
	if d == "" {
		return ""
	}
	var str strings.Builder
	str.WriteString("\n\nto convert ACTUAL -> EXPECTED:\n\n")
	str.WriteString(d)
	return str.String()
}
