package fol

import "github.com/ardnew/fol/pkg"

// Sentinel errors. Refined values carry attributes describing the offending
// node or input and still match with errors.Is.
var (
	ErrIndexOutOfRange = pkg.NewError("child index out of range")
	ErrInvalidArity    = pkg.NewError("invalid arity")
	ErrKindMismatch    = pkg.NewError("unexpected expression kind")
	ErrInvalidKind     = pkg.NewError("invalid expression kind")
	ErrInvalidIdent    = pkg.NewError("invalid identifier")
	ErrDecode          = pkg.NewError("decode expression")

	// ErrInvalidGlue is a defect: every Glue value produced by this package
	// is valid, so an unknown one means corrupted input or a programming
	// error.
	ErrInvalidGlue = pkg.NewDefect("invalid glue option")
)
