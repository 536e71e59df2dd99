// Package tomldoc implements config.Loader for option specifications written
// in TOML, the format of the `*_options.toml` files:
//
//	id     = "base"
//	name   = "Base"
//	header = "options/base_options.h"
//
//	[[option]]
//	  name     = "mode"
//	  category = "regular"
//	  long     = "mode=MODE"
//	  type     = "Mode"
//	  help     = "select the mode"
//	  help_mode = "Modes."
//	[[option.mode.FAST]]
//	  name = "fast"
//
// TOML tables are unordered maps once decoded, but mode values must keep
// their declaration order. The loader recovers it from the decoder's key
// metadata.
package tomldoc

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/specialistvlad/optgen/internal/config"
	"github.com/specialistvlad/optgen/internal/ctxlog"
)

// Loader is the TOML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new TOML specification loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and decodes the TOML file at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read TOML file %s: %w", path, err)
	}
	return l.LoadSource(ctx, path, src)
}

// LoadSource decodes src as if it had been read from path.
func (l *Loader) LoadSource(ctx context.Context, path string, src []byte) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("TOML loader started.", "path", path)

	var raw map[string]any
	md, err := toml.Decode(string(src), &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML file %s: %w", path, err)
	}

	order := keyOrder(md)
	doc, err := toDocument(path, "", raw, order)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}

	logger.Debug("TOML document translated.", "path", path, "attributes", doc.Len())
	return doc, nil
}

// keyOrder maps an indexed table path (e.g. "option[1].mode") to the names
// of its children in the order they first appear in the file. Elements of
// arrays of tables are told apart by counting their `[[...]]` headers.
func keyOrder(md toml.MetaData) map[string][]string {
	order := make(map[string][]string)
	seen := make(map[string]struct{})
	counters := make(map[string]int)

	for _, key := range md.Keys() {
		var parts []string
		for i, name := range key {
			parent := strings.Join(parts, ".")
			if _, ok := seen[parent+"\x00"+name]; !ok {
				seen[parent+"\x00"+name] = struct{}{}
				order[parent] = append(order[parent], name)
			}

			seg := name
			if md.Type(key[:i+1]...) == "ArrayHash" {
				counterKey := parent + "." + name
				if i == len(key)-1 {
					counters[counterKey]++
				}
				seg = fmt.Sprintf("%s[%d]", name, max(counters[counterKey]-1, 0))
			}
			parts = append(parts, seg)
		}
	}
	return order
}

func toDocument(file, path string, table map[string]any, order map[string][]string) (*config.Document, error) {
	doc := config.NewDocument(config.Pos{File: file})
	pos := config.Pos{File: file}

	for _, key := range orderedKeys(table, order[path]) {
		childPath := key
		if path != "" {
			childPath = path + "." + key
		}

		switch v := table[key].(type) {
		case map[string]any:
			child, err := toDocument(file, childPath, v, order)
			if err != nil {
				return nil, err
			}
			doc.Set(key, child, pos)

		case []map[string]any:
			children := make([]*config.Document, 0, len(v))
			for i, elem := range v {
				child, err := toDocument(file, fmt.Sprintf("%s[%d]", childPath, i), elem, order)
				if err != nil {
					return nil, err
				}
				children = append(children, child)
			}
			doc.Set(key, children, pos)

		case []any:
			value, err := toList(file, childPath, v, order)
			if err != nil {
				return nil, err
			}
			doc.Set(key, value, pos)

		case string, bool, int64, float64:
			doc.Set(key, v, pos)

		default:
			return nil, fmt.Errorf("%q: values of type %T are not allowed", childPath, v)
		}
	}
	return doc, nil
}

// toList converts an inline array. Arrays made only of inline tables become
// repeated tables; everything else must be a flat list of scalars.
func toList(file, path string, values []any, order map[string][]string) (any, error) {
	tables := make([]*config.Document, 0, len(values))
	scalars := make([]any, 0, len(values))
	for i, elem := range values {
		switch e := elem.(type) {
		case map[string]any:
			child, err := toDocument(file, fmt.Sprintf("%s[%d]", path, i), e, order)
			if err != nil {
				return nil, err
			}
			tables = append(tables, child)
		case string, bool, int64, float64:
			scalars = append(scalars, e)
		default:
			return nil, fmt.Errorf("%q: list elements of type %T are not allowed", path, e)
		}
	}
	switch {
	case len(tables) > 0 && len(scalars) > 0:
		return nil, fmt.Errorf("%q: lists may not mix tables and scalars", path)
	case len(tables) > 0:
		return tables, nil
	default:
		return scalars, nil
	}
}

// orderedKeys returns the keys of table, first in the recorded order and
// then any remaining ones sorted, so output never depends on map iteration.
func orderedKeys(table map[string]any, recorded []string) []string {
	keys := make([]string, 0, len(table))
	used := make(map[string]struct{}, len(table))
	for _, k := range recorded {
		if _, ok := table[k]; ok {
			if _, dup := used[k]; !dup {
				keys = append(keys, k)
				used[k] = struct{}{}
			}
		}
	}
	var rest []string
	for k := range table {
		if _, ok := used[k]; !ok {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}
