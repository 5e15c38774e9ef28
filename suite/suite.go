package suite

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// DefaultPath locates the cases inside a configuration document.
//
//nolint:gochecknoglobals
var DefaultPath = []string{"parts", "test"}

// Case is one end-to-end check of the parser and renderer. Only Name and
// Input are required; every other field adds a check when set.
type Case struct {
	// Outer overrides the root bracket flag for the Symbol and Display
	// checks.
	Outer *bool `yaml:"outer,omitempty"`
	// Count parses Input as a list and checks its length. Symbol and
	// Display then hold the renders joined by "; ".
	Count *int `yaml:"count,omitempty"`
	// Depth is the expected formula depth.
	Depth   *int   `yaml:"depth,omitempty"`
	Name    string `yaml:"name"`
	Input   string `yaml:"input"`
	Symbol  string `yaml:"symbol,omitempty"`
	Display string `yaml:"display,omitempty"`
	// Equal is another input that must parse to an equal formula.
	Equal string `yaml:"equal,omitempty"`
	// Error names the failure Input must produce; see [Errors].
	Error string `yaml:"error,omitempty"`
	// Assert is a boolean expression over the parsed formula; see [Env].
	Assert string `yaml:"assert,omitempty"`
}

// Load reads a YAML document from r and decodes the cases found at path, or
// at [DefaultPath] if path is empty.
func Load(ctx context.Context, r io.Reader, path ...string) ([]Case, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	var doc any
	if err := yaml.UnmarshalContext(ctx, data, &doc); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	if len(path) == 0 {
		path = DefaultPath
	}

	node, err := Lookup(doc, path...)
	if err != nil {
		return nil, err
	}

	return Decode(ctx, node)
}

// Decode converts a decoded YAML sequence of case mappings into cases.
// Unknown fields and cases without a name or input are rejected.
func Decode(ctx context.Context, node any) ([]Case, error) {
	if _, ok := node.([]any); !ok {
		return nil, ErrDecode.With(slog.String("reason", "cases are not a sequence"))
	}

	data, err := yaml.MarshalContext(ctx, node)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	var cases []Case
	if err := yaml.UnmarshalContext(ctx, data, &cases, yaml.DisallowUnknownField()); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	for i, c := range cases {
		if strings.TrimSpace(c.Name) == "" {
			return nil, ErrDecode.With(slog.Int("case", i), slog.String("reason", "missing name"))
		}

		if c.Error != "" {
			if _, ok := Errors[c.Error]; !ok {
				return nil, ErrUnknownError.With(
					slog.String("case", c.Name),
					slog.String("error", c.Error),
				)
			}
		}
	}

	return cases, nil
}
