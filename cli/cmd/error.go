package cmd

import "github.com/ardnew/fol/pkg"

var (
	ErrReadInput   = pkg.NewError("read input")
	ErrNoInput     = pkg.NewError("no formulas in input")
	ErrNotEqual    = pkg.NewError("formulas are not equal")
	ErrSuiteFailed = pkg.NewError("test suite failed")
	ErrYAMLMarshal = pkg.NewError("marshal YAML")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")

	ErrNoKongContext = pkg.NewDefect("kong context missing")
)
