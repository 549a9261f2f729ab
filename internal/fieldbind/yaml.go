package fieldbind

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/botpanel/botpanel/internal/configtree"
)

// encodeYAMLList renders a list of maps as a block-style YAML document for
// bulk editing. Going through yaml.Node keeps map key order intact.
func encodeYAMLList(list *configtree.Value) (string, error) {
	node, err := valueToNode(list)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return string(data), nil
}

// decodeYAMLList parses edited YAML back into a list value. A document whose
// top level is not a sequence is rejected.
func decodeYAMLList(text string) (*configtree.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("document is not a list")
	}
	return nodeToValue(root)
}

func valueToNode(v *configtree.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case configtree.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case configtree.KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.BoolVal())}, nil
	case configtree.KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.IntVal(), 10)}, nil
	case configtree.KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v.FloatVal(), 'g', -1, 64)}, nil
	case configtree.KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.StrVal()}, nil
	case configtree.KindList:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			child, err := valueToNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	case configtree.KindMap:
		mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			childNode, err := valueToNode(child)
			if err != nil {
				return nil, err
			}
			mapping.Content = append(mapping.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				childNode,
			)
		}
		return mapping, nil
	default:
		return nil, fmt.Errorf("cannot encode kind %s", v.Kind())
	}
}

func nodeToValue(node *yaml.Node) (*configtree.Value, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return scalarToValue(node)
	case yaml.SequenceNode:
		list := configtree.List()
		for _, item := range node.Content {
			v, err := nodeToValue(item)
			if err != nil {
				return nil, err
			}
			list.Append(v)
		}
		return list, nil
	case yaml.MappingNode:
		m := configtree.Map()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("non-scalar mapping key at line %d", keyNode.Line)
			}
			v, err := nodeToValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, v)
		}
		return m, nil
	case yaml.AliasNode:
		return nodeToValue(node.Alias)
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d", node.Kind)
	}
}

func scalarToValue(node *yaml.Node) (*configtree.Value, error) {
	switch node.Tag {
	case "!!null":
		return configtree.Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q at line %d", node.Value, node.Line)
		}
		return configtree.Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q at line %d", node.Value, node.Line)
		}
		return configtree.Int(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q at line %d", node.Value, node.Line)
		}
		return configtree.Float(f), nil
	default:
		return configtree.String(node.Value), nil
	}
}
