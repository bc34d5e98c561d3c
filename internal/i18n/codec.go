package i18n

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for a document extension without a codec.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// UnmarshalFunc decodes a document into v.
type UnmarshalFunc func(data []byte, v any) error

// Codec pairs a file extension with its decoder.
type Codec struct {
	Ext       string
	Unmarshal UnmarshalFunc
}

// DefaultCodecs lists the document formats probed for each namespace, in order.
func DefaultCodecs() []Codec {
	return []Codec{
		{Ext: "json", Unmarshal: json.Unmarshal},
		{Ext: "yaml", Unmarshal: yaml.Unmarshal},
		{Ext: "yml", Unmarshal: yaml.Unmarshal},
		{Ext: "toml", Unmarshal: toml.Unmarshal},
	}
}

// Decode parses a message document. The root must be an object; an empty or
// null document decodes to an empty tree.
func Decode(codec Codec, data []byte) (Messages, error) {
	if codec.Unmarshal == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, codec.Ext)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Messages{}, nil
	}
	var raw any
	if err := codec.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", codec.Ext, err)
	}
	if raw == nil {
		return Messages{}, nil
	}
	tree, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode %s: document root is %T, want object", codec.Ext, raw)
	}
	return Messages(tree), nil
}

// normalize converts decoder specific map types into map[string]any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalize(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	default:
		return v
	}
}
