package openapi

import (
	"strings"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/sequencedmap"
)

// Paths maps relative endpoint paths to their operations. Entries may be null.
type Paths struct {
	Object

	Items *sequencedmap.Map[string, *PathItem] `key:",inline"`
}

func (p *Paths) decodeEntry(key string, value any) error {
	if p.Items == nil {
		p.Items = sequencedmap.New[string, *PathItem]()
	}

	if value == nil {
		p.Items.Set(key, nil)
		return nil
	}

	if _, ok := value.(*sequencedmap.Map[string, any]); !ok {
		return errors.ErrType.Wrapf("Path MUST be either array or PathItem object, \"%s\" given", typeName(value))
	}

	item := &PathItem{}
	if err := decodeNode(item, value); err != nil {
		return err
	}
	p.Items.Set(key, item)

	return nil
}

func (p *Paths) validate() {
	for path := range p.Items.Keys() {
		if !strings.HasPrefix(path, "/") {
			p.addValidationError("Path must begin with /: %s", path)
		}
	}
}

// PathItem describes the operations available on a single path. A $ref is
// merged into the item when references are resolved.
type PathItem struct {
	Object

	Ref         string                 `key:"$ref"`
	Summary     *string                `key:"summary"`
	Description *string                `key:"description"`
	Get         *Operation             `key:"get"`
	Put         *Operation             `key:"put"`
	Post        *Operation             `key:"post"`
	Delete      *Operation             `key:"delete"`
	Options     *Operation             `key:"options"`
	Head        *Operation             `key:"head"`
	Patch       *Operation             `key:"patch"`
	Trace       *Operation             `key:"trace"`
	Servers     []*Server              `key:"servers"`
	Parameters  []*ReferencedParameter `key:"parameters"`

	reference *Reference
}

// HTTPMethod names an operation of a PathItem.
type HTTPMethod string

const (
	HTTPMethodGet     HTTPMethod = "get"
	HTTPMethodPut     HTTPMethod = "put"
	HTTPMethodPost    HTTPMethod = "post"
	HTTPMethodDelete  HTTPMethod = "delete"
	HTTPMethodOptions HTTPMethod = "options"
	HTTPMethodHead    HTTPMethod = "head"
	HTTPMethodPatch   HTTPMethod = "patch"
	HTTPMethodTrace   HTTPMethod = "trace"
)

// Operations returns the operations that are set, in declaration order.
func (p *PathItem) Operations() *sequencedmap.Map[HTTPMethod, *Operation] {
	ops := sequencedmap.New[HTTPMethod, *Operation]()
	if p == nil {
		return ops
	}

	for _, entry := range []struct {
		method HTTPMethod
		op     *Operation
	}{
		{HTTPMethodGet, p.Get},
		{HTTPMethodPut, p.Put},
		{HTTPMethodPost, p.Post},
		{HTTPMethodDelete, p.Delete},
		{HTTPMethodOptions, p.Options},
		{HTTPMethodHead, p.Head},
		{HTTPMethodPatch, p.Patch},
		{HTTPMethodTrace, p.Trace},
	} {
		if entry.op != nil {
			ops.Set(entry.method, entry.op)
		}
	}

	return ops
}

// GetReference returns the unresolved $ref of the item, or nil.
func (p *PathItem) GetReference() *Reference {
	if p == nil {
		return nil
	}
	return p.reference
}

func (p *PathItem) afterDecode() error {
	if p.Ref == "" {
		return nil
	}

	ref, err := NewReference(sequencedmap.New(sequencedmap.NewElem[string, any]("$ref", p.Ref)), kindPathItem)
	if err != nil {
		return err
	}
	p.reference = ref

	return nil
}

func (p *PathItem) heldNodes() []Node {
	if p.reference == nil {
		return nil
	}
	return []Node{p.reference}
}

func (p *PathItem) afterEncode(data *sequencedmap.Map[string, any]) {
	for _, key := range []string{"servers", "parameters"} {
		if list, ok := data.GetOrZero(key).([]any); ok && len(list) == 0 {
			data.Delete(key)
		}
	}
}
