package repl

import "github.com/ardnew/fol/pkg"

var (
	ErrOutOfBounds     = pkg.NewError("history index out of range")
	ErrUnknownCommand  = pkg.NewError("unknown command (try :help)")
	ErrUsage           = pkg.NewError("usage")
	ErrNothingToCheck  = pkg.NewError("no formula parsed yet")
	ErrUnknownViewMode = pkg.NewError("unknown mode (render, tree)")
)
