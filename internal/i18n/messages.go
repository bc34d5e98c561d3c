package i18n

import (
	"errors"
	"fmt"
	"strings"
)

// Messages is the tree of one namespace: string leaves under nested maps.
type Messages map[string]any

// Catalog maps namespace keys, or their flat aliases, to message trees.
// A catalog is built per request and must not be modified once returned.
type Catalog map[string]Messages

var (
	errKeyNotFound = errors.New("key not found")
	errNotString   = errors.New("value is not a string")
)

// Lookup resolves a dotted key ("actions.viewAll") to its string leaf.
func (m Messages) Lookup(key string) (string, error) {
	if key == "" {
		return "", errKeyNotFound
	}
	var node any = map[string]any(m)
	for _, part := range strings.Split(key, ".") {
		children, ok := asTree(node)
		if !ok {
			return "", fmt.Errorf("%w: %q", errKeyNotFound, key)
		}
		node, ok = children[part]
		if !ok {
			return "", fmt.Errorf("%w: %q", errKeyNotFound, key)
		}
	}
	value, ok := node.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q holds %T", errNotString, key, node)
	}
	return value, nil
}

// Has reports whether key resolves to a string leaf.
func (m Messages) Has(key string) bool {
	_, err := m.Lookup(key)
	return err == nil
}

// Flatten returns every string leaf keyed by its dotted path.
func (m Messages) Flatten() map[string]string {
	out := make(map[string]string)
	flattenInto(out, "", map[string]any(m))
	return out
}

func flattenInto(out map[string]string, prefix string, tree map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch value := v.(type) {
		case string:
			out[key] = value
		default:
			if children, ok := asTree(value); ok {
				flattenInto(out, key, children)
			}
		}
	}
}

// Namespace returns the tree stored under name. When the exact key is absent
// the dotted name is walked through the catalog, so "pages.cars" also finds
// {"pages": {"cars": ...}}.
func (c Catalog) Namespace(name string) (Messages, bool) {
	if tree, ok := c[name]; ok {
		return tree, true
	}
	head, rest, found := strings.Cut(name, ".")
	if !found {
		return nil, false
	}
	root, ok := c[head]
	if !ok {
		return nil, false
	}
	var node any = map[string]any(root)
	for _, part := range strings.Split(rest, ".") {
		children, ok := asTree(node)
		if !ok {
			return nil, false
		}
		if node, ok = children[part]; !ok {
			return nil, false
		}
	}
	tree, ok := asTree(node)
	return Messages(tree), ok
}

func asTree(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Messages:
		return t, true
	default:
		return nil, false
	}
}
