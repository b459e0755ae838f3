package openapi

import (
	"strings"

	"github.com/oasref/openapi/references"
	"github.com/oasref/openapi/sequencedmap"
)

// relativeAdjuster rebases the references of a fetched document so they stay
// valid once its content is placed into the root document.
type relativeAdjuster struct {
	// basePath is the absolute URI of the fetched document.
	basePath string
	// baseDocument is the parsed fetched document.
	baseDocument any
	// rootURI is the absolute URI of the requesting document.
	rootURI string
	// recursing is set while a local reference of the fetched document is inlined.
	recursing bool
}

// adjustRelativeReferences returns a copy of document with every $ref and
// externalValue rewritten relative to rootURI. References local to the fetched
// document are replaced by their target, except when inlining would recurse,
// in which case they become absolute references into the fetched document.
// document itself is never modified.
func adjustRelativeReferences(document any, basePath, rootURI string) (any, error) {
	a := &relativeAdjuster{
		basePath:     basePath,
		baseDocument: document,
		rootURI:      rootURI,
	}
	return a.adjust(document)
}

func (a *relativeAdjuster) adjust(document any) (any, error) {
	switch v := document.(type) {
	case *sequencedmap.Map[string, any]:
		return a.adjustMap(v)
	case []any:
		adjusted := make([]any, len(v))
		for i, item := range v {
			var err error
			adjusted[i], err = a.adjust(item)
			if err != nil {
				return nil, err
			}
		}
		return adjusted, nil
	default:
		return document, nil
	}
}

func (a *relativeAdjuster) adjustMap(m *sequencedmap.Map[string, any]) (any, error) {
	adjusted := sequencedmap.NewWithCapacity[string, any](m.Len())

	for key, value := range m.All() {
		s, isString := value.(string)

		switch {
		case key == "$ref" && isString && strings.HasPrefix(s, "#"):
			return a.inline(s)
		case key == "$ref" && isString:
			ref, err := a.rebaseReference(s)
			if err != nil {
				return nil, err
			}
			adjusted.Set(key, ref)
		case key == "externalValue" && isString:
			resolved, err := references.ResolveRelativeURICached(a.basePath, s)
			if err != nil {
				return nil, err
			}
			adjusted.Set(key, references.MakeRelativePath(a.rootURI, resolved))
		default:
			v, err := a.adjust(value)
			if err != nil {
				return nil, err
			}
			adjusted.Set(key, v)
		}
	}

	return adjusted, nil
}

// inline replaces a reference local to the fetched document with its target.
func (a *relativeAdjuster) inline(ref string) (any, error) {
	if a.recursing {
		return sequencedmap.New(sequencedmap.NewElem[string, any]("$ref", a.basePath+ref)), nil
	}

	jsonReference, err := references.CreateFromReference(ref)
	if err != nil {
		return nil, err
	}

	target, err := jsonReference.JSONPointer.Evaluate(a.baseDocument)
	if err != nil {
		return nil, err
	}

	a.recursing = true
	defer func() { a.recursing = false }()

	return a.adjust(target)
}

// rebaseReference resolves ref against the fetched document and expresses it
// relative to the root document.
func (a *relativeAdjuster) rebaseReference(ref string) (string, error) {
	resolved, err := references.ResolveRelativeURICached(a.basePath, ref)
	if err != nil {
		return "", err
	}

	document, fragment, _ := strings.Cut(resolved, "#")
	if document == a.rootURI {
		return "#" + fragment, nil
	}

	return references.MakeRelativePath(a.rootURI, resolved), nil
}
