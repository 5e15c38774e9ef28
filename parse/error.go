package parse

import "github.com/ardnew/fol/pkg"

// Sentinel errors.
var (
	ErrParse               = pkg.NewError("parse failure")
	ErrAmbiguousOperator   = pkg.NewError("inconsistent infix operators")
	ErrMultipleExpressions = pkg.NewError("expected exactly one expression")
	ErrMaxDepth            = pkg.NewError("expression nested too deeply")
	ErrArityMismatch       = pkg.NewError("symbol applied with wrong arity")

	// ErrUnknownRule and ErrMalformedTree indicate a parse tree the lowering
	// does not understand: a mismatch between the grammar and this package.
	ErrUnknownRule   = pkg.NewDefect("unknown parse tree rule")
	ErrMalformedTree = pkg.NewDefect("malformed parse tree")
)
