package overlay

import (
	"fmt"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/openapi"
	"github.com/oasref/openapi/query"
	"github.com/oasref/openapi/yml"
	"gopkg.in/yaml.v3"
)

// ApplyTo applies the actions of o to root in order. Actions that change
// nothing are reported as warnings.
func (o *Overlay) ApplyTo(root *yaml.Node) ([]string, error) {
	return o.apply(root, false)
}

// ApplyToStrict is ApplyTo, but fails when a target or copy source matches
// no node.
func (o *Overlay) ApplyToStrict(root *yaml.Node) ([]string, error) {
	return o.apply(root, true)
}

// ApplyToDocument applies o to the encoded form of doc and reads the result
// back as a new, unresolved document.
func (o *Overlay) ApplyToDocument(doc *openapi.OpenAPI, strict bool) (*openapi.OpenAPI, []string, error) {
	root, err := query.Document(doc)
	if err != nil {
		return nil, nil, err
	}

	warnings, err := o.apply(root, strict)
	if err != nil {
		return nil, warnings, err
	}

	tree, err := yml.NodeToValue(root)
	if err != nil {
		return nil, warnings, err
	}

	result, err := openapi.ReadFromValue(tree)
	if err != nil {
		return nil, warnings, err
	}

	return result, warnings, nil
}

func (o *Overlay) apply(root *yaml.Node, strict bool) ([]string, error) {
	dialect := o.Dialect()

	var warnings []string
	for i, action := range o.Actions {
		if action.Target == "" {
			continue
		}

		target, err := query.NewPath(action.Target, dialect)
		if err != nil {
			return warnings, fmt.Errorf("action %d: %w", i, err)
		}
		nodes := target.Query(root)

		if len(nodes) == 0 {
			if strict {
				return warnings, errors.ErrInvalidOverlay.Wrapf("action %d: target %q did not match any nodes", i, action.Target)
			}
			warnings = append(warnings, fmt.Sprintf("action %d: target %q did not match any nodes", i, action.Target))
			continue
		}

		var changed bool
		switch {
		case action.Remove:
			changed = removeNodes(root, nodes)
		case !action.Update.IsZero():
			changed = mergeAll(nodes, &action.Update)
		case action.Copy != "":
			source, err := copySource(root, action.Copy, dialect)
			if err != nil {
				if strict {
					return warnings, fmt.Errorf("action %d: %w", i, err)
				}
				warnings = append(warnings, fmt.Sprintf("action %d: %s", i, err))
				continue
			}
			changed = mergeAll(nodes, source)
		}

		if !changed {
			warnings = append(warnings, fmt.Sprintf("action %d: target %q does nothing", i, action.Target))
		}
	}

	return warnings, nil
}

func copySource(root *yaml.Node, expression string, dialect query.Dialect) (*yaml.Node, error) {
	path, err := query.NewPath(expression, dialect)
	if err != nil {
		return nil, err
	}

	nodes := path.Query(root)
	switch len(nodes) {
	case 0:
		return nil, errors.ErrInvalidOverlay.Wrapf("copy source %q did not match any nodes", expression)
	case 1:
		return clone(nodes[0]), nil
	default:
		return nil, errors.ErrInvalidOverlay.Wrapf("copy source %q matched %d nodes, expected exactly one", expression, len(nodes))
	}
}

func mergeAll(nodes []*yaml.Node, update *yaml.Node) bool {
	changed := false
	for _, node := range nodes {
		changed = mergeNode(node, update) || changed
	}
	return changed
}

// mergeNode merges mappings key by key, appends to sequences and replaces
// everything else.
func mergeNode(node, merge *yaml.Node) bool {
	if node.Kind != merge.Kind {
		*node = *clone(merge)
		return true
	}

	switch node.Kind {
	case yaml.MappingNode:
		// a populated flow mapping such as {} reads badly
		if len(node.Content) == 0 && len(merge.Content) > 0 {
			node.Style &^= yaml.FlowStyle
		}

		changed := false
	next:
		for i := 0; i+1 < len(merge.Content); i += 2 {
			key, value := merge.Content[i], merge.Content[i+1]
			for j := 0; j+1 < len(node.Content); j += 2 {
				if node.Content[j].Value == key.Value {
					changed = mergeNode(node.Content[j+1], value) || changed
					continue next
				}
			}
			node.Content = append(node.Content, clone(key), clone(value))
			changed = true
		}
		return changed
	case yaml.SequenceNode:
		node.Content = append(node.Content, clone(merge).Content...)
		return len(merge.Content) > 0
	default:
		changed := node.Value != merge.Value || node.Tag != merge.Tag
		node.Value = merge.Value
		node.Tag = merge.Tag
		node.Style = merge.Style
		return changed
	}
}

// removeNodes deletes nodes from the tree below root. Removing a mapping key
// or value removes the whole entry.
func removeNodes(root *yaml.Node, nodes []*yaml.Node) bool {
	parents := map[*yaml.Node]*yaml.Node{}
	indexParents(root, parents)

	changed := false
	for _, node := range nodes {
		parent := parents[node]
		if parent == nil {
			continue
		}
		for i, child := range parent.Content {
			if child != node {
				continue
			}
			switch parent.Kind {
			case yaml.MappingNode:
				start := i - i%2
				parent.Content = append(parent.Content[:start], parent.Content[start+2:]...)
				changed = true
			case yaml.SequenceNode:
				parent.Content = append(parent.Content[:i], parent.Content[i+1:]...)
				changed = true
			}
			break
		}
	}

	return changed
}

func indexParents(node *yaml.Node, parents map[*yaml.Node]*yaml.Node) {
	for _, child := range node.Content {
		if _, seen := parents[child]; seen {
			continue
		}
		parents[child] = node
		indexParents(child, parents)
	}
}

func clone(node *yaml.Node) *yaml.Node {
	c := *node
	if node.Alias != nil {
		c.Alias = clone(node.Alias)
	}
	if node.Content != nil {
		c.Content = make([]*yaml.Node, len(node.Content))
		for i, child := range node.Content {
			c.Content[i] = clone(child)
		}
	}
	return &c
}
