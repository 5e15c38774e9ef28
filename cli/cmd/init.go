package cmd

import (
	"context"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/fol/log"
	"github.com/ardnew/fol/profile"
)

// defaultConfigIndent is the indent width of the generated YAML file.
const defaultConfigIndent = 2

// Init writes the current flag values to the YAML configuration file.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx, err := kongContextFrom(ctx)
	if err != nil {
		return err
	}

	confPath := kongVar(ctx, ConfigIdentifier)
	if confPath == "" {
		return ErrWriteConfig.With(slog.String("reason", "no configuration path"))
	}

	fail := func(err error) error {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	var doc yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || skipFlag(flag.Name) {
			continue
		}

		val := ktx.FlagValue(flag)
		if val == nil || reflect.ValueOf(val).IsZero() {
			continue
		}

		doc = append(doc, yaml.MapItem{Key: flag.Name, Value: val})
	}

	data, err := yaml.MarshalWithOptions(doc, yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return fail(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("flags", len(doc)),
	)

	return nil
}

// skipFlag reports flags that make no sense as stored defaults.
func skipFlag(name string) bool {
	return slices.Contains([]string{"help", "source"}, name) ||
		strings.HasPrefix(name, profile.Tag)
}
