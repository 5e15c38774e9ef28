package suite

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Lookup walks doc, a decoded YAML or JSON document, along path. Mapping
// levels are indexed by key and sequence levels by decimal position.
func Lookup(doc any, path ...string) (any, error) {
	cur := doc

	for i, key := range path {
		where := slog.String("path", strings.Join(path[:i+1], "."))

		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[key]
			if !ok {
				return nil, ErrKeyNotFound.With(where, slog.String("key", key))
			}

			cur = next

		case map[any]any:
			next, ok := v[key]
			if !ok {
				return nil, ErrKeyNotFound.With(where, slog.String("key", key))
			}

			cur = next

		case []any:
			n, err := strconv.Atoi(key)
			if err != nil || n < 0 || n >= len(v) {
				return nil, ErrIndexOutOfRange.With(
					where,
					slog.String("index", key),
					slog.Int("length", len(v)),
				)
			}

			cur = v[n]

		default:
			return nil, ErrNotContainer.With(where, slog.String("type", fmt.Sprintf("%T", cur)))
		}
	}

	return cur, nil
}
