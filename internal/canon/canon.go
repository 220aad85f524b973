// Package canon normalizes arbitrary JSON/YAML document trees into a stable,
// order-independent textual form and derives content digests from it.
//
// The canonical form is the comparison currency of the whole tool: two
// documents are "the same specification" exactly when their canonical strings
// are byte-identical. Mapping key order never matters, sequence order always
// does, and scalar types are preserved as parsed (boolean true and the string
// "true" are different scalars).
package canon

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"openapi-sync/internal/sortutil"
)

// Document is an arbitrary tree of JSON-compatible values: map[string]Document,
// []Document, or a scalar (string, number, bool, nil). It is what the loader
// produces and what every canon function consumes.
type Document = any

// Normalize returns a copy of doc with every mapping rebuilt in byte-wise
// sorted key order and every sequence canonicalized element by element,
// preserving order. Scalars pass through unchanged.
//
// YAML mappings with non-string keys (map[any]any from yaml.v3) are converted
// to string-keyed maps so the result is always JSON-encodable.
func Normalize(doc Document) Document {
	switch t := doc.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for _, k := range sortutil.SortedKeys(t) {
			m[k] = Normalize(t[k])
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[stringKey(k)] = Normalize(v)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = Normalize(t[i])
		}
		return out
	default:
		return doc
	}
}

// Marshal produces the canonical form of doc: compact JSON of the normalized
// tree with HTML escaping disabled and no trailing newline.
//
// encoding/json emits object keys in sorted order, which matches the byte-wise
// ordering Normalize establishes, so the output is deterministic across runs
// and platforms. Marshal is idempotent: parsing its output and marshalling
// again yields the same string.
func Marshal(doc Document) (string, error) {
	b, err := encode(Normalize(doc), "")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MarshalIndent produces the snapshot file form of doc: pretty-printed JSON
// (2-space indent) of the normalized tree with exactly one trailing newline.
func MarshalIndent(doc Document) ([]byte, error) {
	b, err := encode(Normalize(doc), "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Digest returns the lowercase-hex SHA-256 of the UTF-8 bytes of text. It is
// reporting evidence only; equality decisions compare canonical strings.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// encode marshals v without HTML escaping. indent is "" for compact output.
// The trailing newline json.Encoder appends is trimmed so callers control it.
func encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// stringKey renders a YAML mapping key as a string. String keys pass through;
// anything else (ints, bools from YAML 1.1 documents) gets its default
// formatting, mirroring what JSON-targeting YAML loaders do.
func stringKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", k)
}
