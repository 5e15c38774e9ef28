package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/fol/suite"
)

// resolve is a [kong.ConfigurationLoader] reading flag defaults from a YAML
// document:
//
//	log-level: debug
//	log_format: json
//	max-depth: 64
//	arity:
//	  f: 2
//	  P: 1
//
// Flag names may spell hyphens as underscores. Keys that are not flags are
// ignored, so the same file may also hold a test suite under parts.test.
// Command-line flags override values from the file.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}

	return config{doc: doc}, nil
}

// config implements [kong.Resolver] over a decoded YAML document.
type config struct {
	doc map[string]any
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	for _, key := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
		if v, err := suite.Lookup(c.doc, key); err == nil {
			return flagText(v), nil
		}
	}

	return nil, nil
}

// flagText converts a decoded YAML value to the textual form kong parses from
// the command line. Sequences join with "," and mappings become "k=v;k=v",
// the default separators of kong's slice and map decoders.
func flagText(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			parts = append(parts, fmt.Sprint(flagText(e)))
		}

		return strings.Join(parts, ",")
	case map[string]any:
		parts := make([]string, 0, len(v))
		for _, k := range slices.Sorted(maps.Keys(v)) {
			parts = append(parts, k+"="+fmt.Sprint(flagText(v[k])))
		}

		return strings.Join(parts, ";")
	default:
		return fmt.Sprint(v)
	}
}
