package yml

import (
	"bytes"
	"io"
	"math"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/sequencedmap"
	"gopkg.in/yaml.v3"
)

// Unmarshal parses a single YAML document into a document tree.
// An empty document yields nil.
func Unmarshal(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.ErrType.Wrap(err)
	}

	return NodeToValue(&root)
}

// NodeToValue converts a YAML node into a document tree. Mappings become
// *sequencedmap.Map[string, any] preserving key order, sequences become []any
// and scalars are converted according to their resolved tag. Merge keys and
// aliases are expanded.
func NodeToValue(node *yaml.Node) (any, error) {
	return (&nodeConverter{active: map[*yaml.Node]bool{}}).convert(node)
}

type nodeConverter struct {
	active map[*yaml.Node]bool
}

func (c *nodeConverter) convert(node *yaml.Node) (any, error) {
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return c.convert(node.Content[0])
	case yaml.AliasNode:
		if c.active[node.Alias] {
			return nil, errors.ErrType.Wrapf("recursive alias *%s at line %d", node.Value, node.Line)
		}
		return c.convert(node.Alias)
	case yaml.MappingNode:
		return c.mapping(node)
	case yaml.SequenceNode:
		return c.sequence(node)
	case yaml.ScalarNode:
		return scalarValue(node)
	default:
		return nil, errors.ErrType.Wrapf("unknown node kind: %s", NodeKindToString(node.Kind))
	}
}

func (c *nodeConverter) mapping(node *yaml.Node) (any, error) {
	c.active[node] = true
	defer delete(c.active, node)

	content := ResolveMergeKeys(node.Content)

	m := sequencedmap.NewWithCapacity[string, any](len(content) / 2)
	for i := 0; i+1 < len(content); i += 2 {
		keyNode := ResolveAlias(content[i])
		if keyNode.Kind != yaml.ScalarNode {
			return nil, errors.ErrType.Wrapf("line %d: mapping keys must be scalars, got %s", keyNode.Line, NodeKindToString(keyNode.Kind))
		}

		v, err := c.convert(content[i+1])
		if err != nil {
			return nil, err
		}

		m.Set(keyNode.Value, v)
	}

	return m, nil
}

func (c *nodeConverter) sequence(node *yaml.Node) (any, error) {
	c.active[node] = true
	defer delete(c.active, node)

	s := make([]any, 0, len(node.Content))
	for _, item := range node.Content {
		v, err := c.convert(item)
		if err != nil {
			return nil, err
		}
		s = append(s, v)
	}

	return s, nil
}

func scalarValue(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, errors.ErrType.Wrapf("line %d: %s", node.Line, err.Error())
		}
		return b, nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return int(i), nil
		}
		// Out of range integers degrade to floats.
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, errors.ErrType.Wrapf("line %d: %s", node.Line, err.Error())
		}
		return f, nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, errors.ErrType.Wrapf("line %d: %s", node.Line, err.Error())
		}
		return f, nil
	default:
		return node.Value, nil
	}
}
