package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Explain returns the effective value at the given dotted YAML path and the
// source that set it. Sequence items are addressed by index:
//
//	canvas.width
//	taskbar_click_active
//	windows.0.title
//	logging.max_files
func Explain(res *LoadResult, path string) (string, Source, error) {
	if res == nil || res.Config == nil {
		return "", Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return "", Source{}, fmt.Errorf("path is empty")
	}

	var doc yaml.Node
	if err := doc.Encode(res.Config); err != nil {
		return "", Source{}, fmt.Errorf("failed to encode config: %w", err)
	}
	node, err := lookupNode(&doc, path)
	if err != nil {
		return "", Source{}, err
	}
	value, err := renderNode(node)
	if err != nil {
		return "", Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	if res.BuiltinWindows && (strings.HasPrefix(path, "windows") || strings.HasPrefix(path, "icons")) {
		return value, Source{Kind: SourceBuiltin, Name: "desktop"}, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupNode(doc *yaml.Node, path string) (*yaml.Node, error) {
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	for _, part := range strings.Split(path, ".") {
		switch node.Kind {
		case yaml.MappingNode:
			var next *yaml.Node
			for i := 0; i+1 < len(node.Content); i += 2 {
				if node.Content[i].Value == part {
					next = node.Content[i+1]
					break
				}
			}
			if next == nil {
				return nil, fmt.Errorf("unknown config path %q", path)
			}
			node = next
		case yaml.SequenceNode:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node.Content) {
				return nil, fmt.Errorf("config path %q: index %q out of range", path, part)
			}
			node = node.Content[idx]
		default:
			return nil, fmt.Errorf("unknown config path %q", path)
		}
	}
	return node, nil
}

func renderNode(node *yaml.Node) (string, error) {
	if node.Kind == yaml.ScalarNode {
		return node.Value, nil
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("failed to render value: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}
