package grammar

import "github.com/ardnew/fol/pkg"

// Sentinel errors.
var (
	// ErrSyntax reports input the grammar rejects. Refined values carry the
	// line, column, found and expected attributes and a caret snippet.
	ErrSyntax = pkg.NewError("syntax error")
	// ErrNesting reports input nested deeper than the configured limit.
	ErrNesting = pkg.NewError("nesting too deep")
	// ErrLexicon reports an unusable lexicon document.
	ErrLexicon = pkg.NewError("invalid lexicon")
)
