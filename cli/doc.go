// Package cli contains the command line interface for fol.
//
// # Usage
//
//	fol [flags] [parse] FORMULA...
//	fol fmt (symbol|display|tree|json|yaml|cst) FORMULA...
//	fol eq A B
//	fol test [SUITE]
//	fol init [--force]
//	fol repl
//
// Formulas given as arguments are joined with newlines and parsed as one
// input, so "P(x); Q(y)" and two separate arguments both yield two
// expressions. Without arguments, input is read from --source files or
// stdin.
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory ($XDG_CONFIG_HOME/fol on Linux) and from config.json next to it.
// YAML keys are flag names; hyphens may be written as underscores:
//
//	log-level: debug
//	max_depth: 64
//	arity:
//	  f: 2
//
// The same file may hold a test suite under parts.test, which "fol test"
// runs when no suite file is named. "fol init" writes the current flag
// values to config.yaml.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (json, text)
//   - --log-time-layout: timestamp layout (RFC3339, Kitchen, none, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize output
//
// # Parser Options
//
//   - --lexicon: YAML lexicon replacing the built-in grammar tokens
//   - --max-depth: maximum depth of a parsed expression
//   - --max-nesting: maximum grammar nesting, 0 for no limit
//   - --arity NAME=N: require symbol NAME to take N terms
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o fol .
//
// The profiling flags are:
//
//   - --pprof-mode: enable profiling (see [profile.Modes])
//   - --pprof-dir: profile output directory (default: ~/.cache/fol/pprof)
package cli
