package suite

import "github.com/ardnew/fol/pkg"

// Sentinel errors.
var (
	ErrKeyNotFound     = pkg.NewError("key not found")
	ErrIndexOutOfRange = pkg.NewError("index out of range")
	ErrNotContainer    = pkg.NewError("value is not a mapping or sequence")
	ErrDecode          = pkg.NewError("decode suite")
	ErrUnknownError    = pkg.NewError("unknown expected error")
	ErrAssert          = pkg.NewError("invalid assertion")
	ErrFailed          = pkg.NewError("case failed")
)
