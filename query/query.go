// Package query runs JSONPath expressions against documents.
//
// The document is encoded the way the writer would emit it, so a resolved
// document is queried with its references inlined. Two dialects are
// supported: RFC 9535 and the legacy dialect used by earlier overlay tooling.
package query

import (
	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/openapi"
	"github.com/oasref/openapi/yml"
	"github.com/speakeasy-api/jsonpath/pkg/jsonpath"
	"github.com/speakeasy-api/jsonpath/pkg/jsonpath/config"
	"github.com/vmware-labs/yaml-jsonpath/pkg/yamlpath"
	"gopkg.in/yaml.v3"
)

// Dialect selects the JSONPath implementation.
type Dialect string

const (
	// DialectRFC9535 is standard JSONPath, with the ~ property name extension.
	DialectRFC9535 Dialect = "rfc9535"
	// DialectLegacy is the yaml-jsonpath dialect.
	DialectLegacy Dialect = "legacy"
)

// Path is a compiled JSONPath expression.
type Path struct {
	expression string
	rfc        *jsonpath.JSONPath
	legacy     *yamlpath.Path
}

// NewPath compiles expression in the given dialect. An empty dialect means RFC 9535.
func NewPath(expression string, dialect Dialect) (*Path, error) {
	p := &Path{expression: expression}

	switch dialect {
	case DialectRFC9535, "":
		path, err := jsonpath.NewPath(expression, config.WithPropertyNameExtension())
		if err != nil {
			return nil, errors.ErrInvalidQuery.Wrapf("%s: %s", expression, err)
		}
		p.rfc = path
	case DialectLegacy:
		path, err := yamlpath.NewPath(expression)
		if err != nil {
			return nil, errors.ErrInvalidQuery.Wrapf("%s: %s", expression, err)
		}
		p.legacy = path
	default:
		return nil, errors.ErrInvalidQuery.Wrapf("unknown dialect %q", dialect)
	}

	return p, nil
}

func (p *Path) String() string {
	return p.expression
}

// Query returns the nodes below root matched by the path.
func (p *Path) Query(root *yaml.Node) []*yaml.Node {
	if p.legacy != nil {
		// yamlpath reports no errors for a compiled path
		nodes, _ := p.legacy.Find(root)
		return nodes
	}
	return p.rfc.Query(root)
}

// Document encodes n as a YAML document node.
func Document(n openapi.Node) (*yaml.Node, error) {
	node, err := yml.ValueToNode(openapi.Marshal(n))
	if err != nil {
		return nil, err
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{node}}, nil
}

// Run evaluates expression against n and returns the matches as tree values.
func Run(n openapi.Node, expression string, dialect Dialect) ([]any, error) {
	path, err := NewPath(expression, dialect)
	if err != nil {
		return nil, err
	}

	root, err := Document(n)
	if err != nil {
		return nil, err
	}

	nodes := path.Query(root)
	results := make([]any, 0, len(nodes))
	for _, node := range nodes {
		v, err := yml.NodeToValue(node)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}

	return results, nil
}
