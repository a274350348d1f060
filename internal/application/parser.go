package application

import (
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bnema/platform-intake/internal/domain"
)

// Parse turns one message into raw field values for kind. Multi-line text is
// read as key/value pairs; a single line is read as key/value pairs when it
// carries enough colons to plausibly hold every field, and as ordered
// comma-separated values otherwise.
func Parse(text string, kind domain.Kind) (map[string]any, error) {
	schema, err := domain.SchemaFor(kind)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return nil, &domain.ParseError{Kind: kind, Reason: "the message is empty"}
	}

	switch {
	case strings.Contains(text, "\n"):
		return parseKeyValue(kind, text)
	case strings.Count(text, ":") >= len(schema.Fields)-1:
		parts := strings.Split(text, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parseKeyValue(kind, strings.Join(parts, "\n"))
	default:
		return parsePositional(schema, text)
	}
}

func parseKeyValue(kind domain.Kind, text string) (map[string]any, error) {
	if fields, ok := parseStructured(text); ok {
		keepHashes(fields, text)
		return fields, nil
	}
	return parseLines(kind, text)
}

// keepHashes restores top-level scalar values that YAML cut at " #". Only
// whole lines starting with '#' are comments in a message.
func keepHashes(fields map[string]any, text string) {
	for _, line := range strings.Split(text, "\n") {
		if line == "" || line[0] == ' ' || line[0] == '\t' || line[0] == '#' {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if !strings.Contains(value, "#") {
			continue
		}
		key = normalizeKey(key)
		if _, scalar := fields[key].(string); scalar {
			fields[key] = unquote(value)
		}
	}
}

// parseStructured accepts YAML first, then TOML, and only when the document
// is a mapping. Scalars keep their literal text so that values such as
// account ids are never reinterpreted as numbers.
func parseStructured(text string) (map[string]any, bool) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err == nil && len(doc.Content) == 1 && doc.Content[0].Kind == yaml.MappingNode {
		if tree, ok := nodeValue(doc.Content[0]).(map[string]any); ok && len(tree) > 0 {
			return normalizeKeys(tree), true
		}
	}

	var tree map[string]any
	if err := toml.Unmarshal([]byte(text), &tree); err == nil && len(tree) > 0 {
		if fields, ok := tomlValue(tree).(map[string]any); ok {
			return normalizeKeys(fields), true
		}
	}

	return nil, false
}

func parseLines(kind domain.Kind, text string) (map[string]any, error) {
	fields := map[string]any{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimLeft(line, "-*• ")

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = normalizeKey(key)
		if key == "" {
			continue
		}
		fields[key] = unquote(strings.TrimSpace(value))
	}

	if len(fields) == 0 {
		return nil, &domain.ParseError{Kind: kind, Reason: `no "field: value" pairs found`}
	}
	return fields, nil
}

func parsePositional(schema domain.Schema, text string) (map[string]any, error) {
	if schema.HasNested() {
		return nil, &domain.ParseError{
			Kind:   schema.Kind,
			Reason: fmt.Sprintf("%s details must be sent as \"field: value\" lines (nested access entries as indented YAML), not comma-separated values", schema.Kind),
			Err:    domain.ErrPositionalUnsupported,
		}
	}

	values := strings.Split(text, ",")
	for i := range values {
		values[i] = unquote(strings.TrimSpace(values[i]))
	}

	order := schema.FieldNames()
	if len(values) != len(order) {
		return nil, &domain.ParseError{
			Kind:     schema.Kind,
			Expected: len(order),
			Got:      len(values),
			Order:    order,
		}
	}

	fields := make(map[string]any, len(order))
	for i, name := range order {
		fields[name] = values[i]
	}
	return fields, nil
}

func nodeValue(n *yaml.Node) any {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return nodeValue(n.Content[0])
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m[n.Content[i].Value] = nodeValue(n.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			list = append(list, nodeValue(child))
		}
		return list
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	default:
		if n.Tag == "!!null" {
			return ""
		}
		return n.Value
	}
}

func tomlValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for key, child := range value {
			out[key] = tomlValue(child)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, child := range value {
			out[i] = tomlValue(child)
		}
		return out
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}

func normalizeKeys(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		out[normalizeKey(key)] = value
	}
	return out
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.Trim(key, `"'`)
	return strings.NewReplacer(" ", "_", "-", "_").Replace(key)
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
