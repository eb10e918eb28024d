package interop

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dadrian/flux"
)

// ToYAML renders v as a YAML document. Mapping order follows dictionary
// insertion order, byte strings use the !!binary tag, tuples become
// sequences.
func ToYAML(v flux.Value) ([]byte, error) {
	node, err := yamlNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func yamlNode(v flux.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case flux.KindNull:
		return scalarNode("!!null", "null"), nil
	case flux.KindBool:
		return scalarNode("!!bool", strconv.FormatBool(v.Bool())), nil
	case flux.KindInt:
		return scalarNode("!!int", strconv.FormatInt(v.Int(), 10)), nil
	case flux.KindFloat:
		return scalarNode("!!float", yamlFloat(v.Float())), nil
	case flux.KindString:
		return scalarNode("!!str", v.Text()), nil
	case flux.KindBytes:
		return scalarNode("!!binary", base64.StdEncoding.EncodeToString(v.Bytes())), nil
	case flux.KindList, flux.KindTuple:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := 0; i < v.Len(); i++ {
			child, err := yamlNode(v.Index(i))
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case flux.KindDict:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, p := range v.Pairs() {
			val, err := yamlNode(p.Value)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, scalarNode("!!str", p.Key), val)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("interop: cannot render kind %v as YAML", v.Kind())
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// keep the scalar resolvable as !!float
	if !containsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func containsAny(s, chars string) bool {
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(chars); j++ {
			if s[i] == chars[j] {
				return true
			}
		}
	}
	return false
}

// FromYAML decodes a single YAML document into a FLUX value, preserving
// mapping key order. !!binary scalars decode to Bytes; anchors and
// aliases are resolved by expansion.
func FromYAML(data []byte) (flux.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return flux.Value{}, err
	}
	if doc.Kind == 0 {
		// empty document
		return flux.Null(), nil
	}
	node := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) != 1 {
			return flux.Value{}, fmt.Errorf("interop: expected one YAML document, got %d", len(doc.Content))
		}
		node = doc.Content[0]
	}
	return fromYAMLNode(node)
}

func fromYAMLNode(node *yaml.Node) (flux.Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return fromYAMLNode(node.Alias)
	case yaml.ScalarNode:
		return fromYAMLScalar(node)
	case yaml.SequenceNode:
		elems := make([]flux.Value, 0, len(node.Content))
		for _, child := range node.Content {
			cv, err := fromYAMLNode(child)
			if err != nil {
				return flux.Value{}, err
			}
			elems = append(elems, cv)
		}
		return flux.List(elems...), nil
	case yaml.MappingNode:
		pairs := make([]flux.Pair, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			var key string
			if err := keyNode.Decode(&key); err != nil {
				return flux.Value{}, fmt.Errorf("interop: mapping key at line %d: %v", keyNode.Line, err)
			}
			val, err := fromYAMLNode(valNode)
			if err != nil {
				return flux.Value{}, err
			}
			pairs = append(pairs, flux.Pair{Key: key, Value: val})
		}
		return flux.Dict(pairs...), nil
	default:
		return flux.Value{}, fmt.Errorf("interop: unsupported YAML node kind %v at line %d", node.Kind, node.Line)
	}
}

func fromYAMLScalar(node *yaml.Node) (flux.Value, error) {
	switch node.Tag {
	case "!!null":
		return flux.Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return flux.Value{}, err
		}
		return flux.Bool(b), nil
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return flux.Value{}, err
		}
		return flux.Int(n), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return flux.Value{}, err
		}
		return flux.Float(f), nil
	case "!!binary":
		// yaml.v3 refuses to decode !!binary into []byte, but decoding
		// into string yields the base64-decoded content.
		var raw string
		if err := node.Decode(&raw); err != nil {
			return flux.Value{}, err
		}
		return flux.Bytes([]byte(raw)), nil
	case "!!str":
		return flux.String(node.Value), nil
	case "!!timestamp":
		// keep timestamps as their literal text; the union has no time kind
		return flux.String(node.Value), nil
	default:
		return flux.Value{}, fmt.Errorf("interop: unsupported YAML scalar tag %s at line %d", node.Tag, node.Line)
	}
}
