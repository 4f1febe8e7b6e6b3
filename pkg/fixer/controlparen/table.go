package controlparen

import "github.com/walteh/phpfix/pkg/token"

// statement describes one keyword-parenthesis pattern: the keyword kinds
// that anchor it, the token kinds that must follow the closing parenthesis
// for the parentheses to be redundant, and token values that veto the
// rewrite when found inside the span.
type statement struct {
	name              string
	lookupKinds       []token.Kind
	neededSuccessors  []token.Kind
	forbiddenContents []string
}

// The table is the single source of truth for which parentheses are
// removable. It is manually curated against PHP's grammar; the clone entry
// keeps its parentheses around ternaries because `clone($a ? $b : $c)`
// changes meaning without them. Order matters: for a given anchor the first
// satisfying entry wins.
var statements = []statement{
	{
		name:             "break",
		lookupKinds:      []token.Kind{token.Break},
		neededSuccessors: []token.Kind{token.Semicolon},
	},
	{
		name:              "clone",
		lookupKinds:       []token.Kind{token.Clone},
		neededSuccessors:  []token.Kind{token.Semicolon, token.Colon, token.Comma, token.CloseParen},
		forbiddenContents: []string{"?", ":"},
	},
	{
		name:             "continue",
		lookupKinds:      []token.Kind{token.Continue},
		neededSuccessors: []token.Kind{token.Semicolon},
	},
	{
		name:             "echo_print",
		lookupKinds:      []token.Kind{token.Echo, token.Print},
		neededSuccessors: []token.Kind{token.Semicolon, token.CloseTag},
	},
	{
		name:             "return",
		lookupKinds:      []token.Kind{token.Return},
		neededSuccessors: []token.Kind{token.Semicolon, token.CloseTag},
	},
	{
		name:             "switch_case",
		lookupKinds:      []token.Kind{token.Case},
		neededSuccessors: []token.Kind{token.Semicolon, token.Colon},
	},
	{
		name:             "yield",
		lookupKinds:      []token.Kind{token.Yield},
		neededSuccessors: []token.Kind{token.Semicolon, token.CloseParen},
	},
}

// StatementNames returns the configuration names of every statement in the
// table, in table order.
func StatementNames() []string {
	names := make([]string, 0, len(statements))
	for _, st := range statements {
		names = append(names, st.name)
	}
	return names
}
