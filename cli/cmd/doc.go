// Package cmd implements the fol subcommands: parse, fmt, eq, test, init and
// repl.
//
// Commands receive their shared state through the context passed by kong:
// the parser built from the command-line flags ([WithParser]), the files
// named by --source ([WithSources]) and the kong context itself
// ([WithContext]). Output goes to [WithOutput], stdout by default.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
