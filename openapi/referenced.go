package openapi

import (
	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/marshaller"
	"github.com/oasref/openapi/sequencedmap"
)

type (
	// ReferencedSchema is a schema given inline or by reference.
	ReferencedSchema = Referenced[Schema]
	// ReferencedParameter is a parameter given inline or by reference.
	ReferencedParameter = Referenced[Parameter]
	// ReferencedResponse is a response given inline or by reference.
	ReferencedResponse = Referenced[Response]
	// ReferencedExample is an example given inline or by reference.
	ReferencedExample = Referenced[Example]
	// ReferencedRequestBody is a request body given inline or by reference.
	ReferencedRequestBody = Referenced[RequestBody]
	// ReferencedHeader is a header given inline or by reference.
	ReferencedHeader = Referenced[Header]
	// ReferencedSecurityScheme is a security scheme given inline or by reference.
	ReferencedSecurityScheme = Referenced[SecurityScheme]
	// ReferencedLink is a link given inline or by reference.
	ReferencedLink = Referenced[Link]
	// ReferencedCallback is a callback given inline or by reference.
	ReferencedCallback = Referenced[Callback]
)

// Referenced is a slot holding either an inline object or a Reference to one.
// Resolving the reference replaces it with the object it points to.
type Referenced[T any] struct {
	// Reference is set while the slot holds an unresolved $ref.
	Reference *Reference
	// Object is the inline or resolved object.
	Object *T
}

// NewReferencedObject creates a slot holding obj.
func NewReferencedObject[T any](obj *T) *Referenced[T] {
	return &Referenced[T]{Object: obj}
}

// NewReferencedFromRef creates a slot holding an unresolved reference to ref.
func NewReferencedFromRef[T any](ref string) *Referenced[T] {
	r, _ := NewReference(sequencedmap.New(sequencedmap.NewElem[string, any]("$ref", ref)), kindFor[T]())
	return &Referenced[T]{Reference: r}
}

// IsReference reports whether the slot holds an unresolved reference.
func (r *Referenced[T]) IsReference() bool {
	return r != nil && r.Reference != nil
}

// GetReference returns the unresolved reference, or nil.
func (r *Referenced[T]) GetReference() *Reference {
	if r == nil {
		return nil
	}
	return r.Reference
}

// GetObject returns the inline or resolved object, or nil.
func (r *Referenced[T]) GetObject() *T {
	if r == nil {
		return nil
	}
	return r.Object
}

// GetNavigableNode returns what JSON pointers see at this slot: the reference
// while unresolved, the object otherwise.
func (r *Referenced[T]) GetNavigableNode() (any, error) {
	if r.Reference != nil {
		return r.Reference, nil
	}
	if r.Object == nil {
		return nil, nil
	}
	return r.Object, nil
}

func (r *Referenced[T]) reference() *Reference {
	return r.Reference
}

func (r *Referenced[T]) object() Node {
	if r.Object == nil {
		return nil
	}
	n, _ := any(r.Object).(Node)
	return n
}

func (r *Referenced[T]) setResolved(v any) error {
	switch resolved := v.(type) {
	case nil:
		r.Reference = nil
		r.Object = nil
	case *Reference:
		r.Reference = resolved
		r.Object = nil
	case *T:
		r.Reference = nil
		r.Object = resolved
	default:
		return errors.ErrType.Wrapf("expected %s, got %s", kindFor[T](), describeValue(v))
	}
	return nil
}

func (r *Referenced[T]) decode(data any) error {
	kind := kindFor[T]()

	if m, ok := isReferenceData(data); ok {
		ref, err := NewReference(m, kind)
		if err != nil {
			return err
		}
		r.Reference = ref
		return nil
	}

	obj := new(T)
	n, ok := any(obj).(Node)
	if !ok {
		return errors.ErrType.Wrapf("%s is not a document object", kind)
	}
	if err := decodeNode(n, data); err != nil {
		return err
	}
	r.Object = obj

	return nil
}

// referenceSlot is the type independent view of a Referenced used by the walkers.
type referenceSlot interface {
	reference() *Reference
	object() Node
	setResolved(v any) error
}

var _ referenceSlot = (*Referenced[Schema])(nil)

func kindFor[T any]() string {
	return marshaller.KindOf(new(T))
}
