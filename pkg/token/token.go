// Package token defines the lexical token model shared by the tokenizer and
// the fixer rules. Whitespace and comments are first-class tokens so that a
// stream can be rendered back to byte-identical source text.
package token

import "fmt"

// Kind is the semantic category of a token.
type Kind int

const (
	// Illegal is the default for unrecognized input
	Illegal Kind = iota

	// InlineHTML is raw text outside of <?php ... ?> regions
	InlineHTML
	// OpenTag is "<?php" or "<?="
	OpenTag
	// CloseTag is "?>"
	CloseTag

	// Whitespace is a run of spaces, tabs, and newlines
	Whitespace
	// LineComment is a "//" or "#" comment including the leading marker
	LineComment
	// BlockComment is a "/* ... */" comment
	BlockComment

	// Variable is a "$name" token
	Variable
	// Ident is an identifier that is not a recognized keyword
	Ident
	// Number is an integer or float literal
	Number
	// String is a single- or double-quoted string literal including quotes
	String

	// OpenParen is "("
	OpenParen
	// CloseParen is ")"
	CloseParen
	// OpenBrace is "{"
	OpenBrace
	// CloseBrace is "}"
	CloseBrace
	// OpenBracket is "["
	OpenBracket
	// CloseBracket is "]"
	CloseBracket
	// Semicolon is ";"
	Semicolon
	// Colon is ":"
	Colon
	// Comma is ","
	Comma
	// Question is "?"
	Question
	// Arrow is "->"
	Arrow
	// DoubleArrow is "=>"
	DoubleArrow
	// DoubleColon is "::"
	DoubleColon
	// Operator is any other operator or punctuation character sequence
	Operator

	keywordBegin
	// Break is the "break" keyword
	Break
	// Case is the "case" keyword
	Case
	// Clone is the "clone" keyword
	Clone
	// Continue is the "continue" keyword
	Continue
	// Echo is the "echo" keyword
	Echo
	// Else is the "else" keyword
	Else
	// Foreach is the "foreach" keyword
	Foreach
	// Function is the "function" keyword
	Function
	// If is the "if" keyword
	If
	// New is the "new" keyword
	New
	// Print is the "print" keyword
	Print
	// Return is the "return" keyword
	Return
	// Switch is the "switch" keyword
	Switch
	// While is the "while" keyword
	While
	// Yield is the "yield" keyword
	Yield
	keywordEnd
)

var kindNames = map[Kind]string{
	Illegal:      "Illegal",
	InlineHTML:   "InlineHTML",
	OpenTag:      "OpenTag",
	CloseTag:     "CloseTag",
	Whitespace:   "Whitespace",
	LineComment:  "LineComment",
	BlockComment: "BlockComment",
	Variable:     "Variable",
	Ident:        "Ident",
	Number:       "Number",
	String:       "String",
	OpenParen:    "OpenParen",
	CloseParen:   "CloseParen",
	OpenBrace:    "OpenBrace",
	CloseBrace:   "CloseBrace",
	OpenBracket:  "OpenBracket",
	CloseBracket: "CloseBracket",
	Semicolon:    "Semicolon",
	Colon:        "Colon",
	Comma:        "Comma",
	Question:     "Question",
	Arrow:        "Arrow",
	DoubleArrow:  "DoubleArrow",
	DoubleColon:  "DoubleColon",
	Operator:     "Operator",
	Break:        "Break",
	Case:         "Case",
	Clone:        "Clone",
	Continue:     "Continue",
	Echo:         "Echo",
	Else:         "Else",
	Foreach:      "Foreach",
	Function:     "Function",
	If:           "If",
	New:          "New",
	Print:        "Print",
	Return:       "Return",
	Switch:       "Switch",
	While:        "While",
	Yield:        "Yield",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether the kind is one of the keyword kinds.
func (k Kind) IsKeyword() bool {
	return k > keywordBegin && k < keywordEnd
}

// Token is the smallest lexical unit of source text.
type Token struct {
	// Kind is the semantic category
	Kind Kind
	// Text is the raw source text of the token
	Text string
	// Offset is the byte offset of the token in the original source
	Offset int
}

// IsWhitespace reports whether the token is pure whitespace.
func (t Token) IsWhitespace() bool {
	return t.Kind == Whitespace
}

// IsComment reports whether the token is a line or block comment.
func (t Token) IsComment() bool {
	return t.Kind == LineComment || t.Kind == BlockComment
}

// IsMeaningful reports whether the token is neither whitespace nor a comment.
func (t Token) IsMeaningful() bool {
	return !t.IsWhitespace() && !t.IsComment()
}

// IsAnyKind reports whether the token's kind is among kinds.
func (t Token) IsAnyKind(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// IsValue reports whether the token's raw text equals s.
func (t Token) IsValue(s string) bool {
	return t.Text == s
}
