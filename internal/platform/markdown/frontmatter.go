package markdown

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// SplitFrontmatter separates a leading yaml block from the note body.
// Notes without frontmatter decode to an empty map. CRLF files are accepted.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, separator) {
		return map[string]any{}, content, nil
	}
	rest := strings.TrimPrefix(content, separator)

	var raw, body string
	if strings.HasPrefix(rest, separator) {
		body = strings.TrimPrefix(rest, separator)
	} else {
		idx := strings.Index(rest, "\n"+separator)
		if idx < 0 {
			return nil, "", fmt.Errorf("invalid frontmatter: missing closing separator")
		}
		raw = rest[:idx]
		body = rest[idx+len("\n"+separator):]
	}

	decoded := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return decoded, body, nil
}

// RenderFrontmatter writes meta as a yaml block followed by body. Keys listed
// in order come first in that order; the rest follow alphabetically.
func RenderFrontmatter(meta map[string]any, body string, order ...string) (string, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range orderedKeys(meta, order) {
		var value yaml.Node
		if err := value.Encode(meta[key]); err != nil {
			return "", fmt.Errorf("marshal frontmatter %s: %w", key, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, &value)
	}
	raw, err := yaml.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	buf := bytes.Buffer{}
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	return buf.String(), nil
}

func orderedKeys(meta map[string]any, order []string) []string {
	keys := make([]string, 0, len(meta))
	seen := make(map[string]bool, len(meta))
	for _, key := range order {
		if _, ok := meta[key]; ok && !seen[key] {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	var rest []string
	for key := range meta {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
