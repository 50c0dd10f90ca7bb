package form

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EncodeSnapshot writes r as a snapshot document listing every declared
// field in schema order, so the result doubles as a fill-in template.
func EncodeSnapshot(r Reader, schema Schema) ([]byte, error) {
	fields := mappingNode()
	files := mappingNode()

	for _, f := range schema.Fields {
		v, _ := r.Value(f.ID)
		switch {
		case f.Kind == KindCheckbox:
			appendPair(fields, f.ID, boolNode(v.Checked))
		case f.Kind.IsFile():
			paths := make([]string, 0, len(v.Files))
			for _, file := range v.Files {
				paths = append(paths, file.Path())
			}
			if f.Kind == KindFile {
				p := ""
				if len(paths) > 0 {
					p = paths[0]
				}
				appendPair(files, f.ID, stringNode(p))
				continue
			}
			seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, p := range paths {
				seq.Content = append(seq.Content, stringNode(p))
			}
			appendPair(files, f.ID, seq)
		default:
			appendPair(fields, f.ID, stringNode(v.Text))
		}
	}

	root := mappingNode()
	appendPair(root, "fields", fields)
	appendPair(root, "files", files)

	for _, l := range schema.Lists {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for pos := 1; pos <= r.Items(l.Prefix); pos++ {
			item := mappingNode()
			for _, f := range l.Fields {
				v, _ := r.Value(ItemKey(l.Prefix, f.ID, pos))
				appendPair(item, lowerFirst(f.ID), stringNode(v.Text))
			}
			seq.Content = append(seq.Content, item)
		}
		appendPair(root, l.Prefix, seq)
	}

	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return out, nil
}

func mappingNode() *yaml.Node { return &yaml.Node{Kind: yaml.MappingNode} }

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.DoubleQuotedStyle}
}

func boolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
