package openapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/marshaller"
	"github.com/oasref/openapi/references"
	"github.com/oasref/openapi/sequencedmap"
)

// Reference stands in for an object given as {"$ref": "..."} until it is
// resolved. Resolution is not safe for concurrent use on the same document.
type Reference struct {
	Object

	// Ref is the raw $ref value.
	Ref string `key:"$ref"`
	// Kind names the object type the reference should resolve to. It is empty
	// for references found in untyped values such as examples and enums.
	Kind string
	// Context is used by Resolve when no context is passed explicitly.
	Context *references.Context

	jsonReference *references.JSONReference
}

// NewReference builds a Reference from a mapping holding a $ref. A $ref that
// is not a string is a type error; an unparsable $ref or additional properties
// are recorded as errors of the reference.
func NewReference(data *sequencedmap.Map[string, any], kind string) (*Reference, error) {
	ref, ok := data.GetOrZero("$ref").(string)
	if !ok {
		return nil, errors.ErrType.Wrapf("Unable to instantiate Reference Object, $ref value must be a string")
	}

	r := &Reference{Ref: ref, Kind: kind}

	jsonReference, err := references.CreateFromReference(ref)
	if err != nil {
		r.addError("Reference: value of $ref is not a valid JSON pointer: %s", errors.Cause(err))
	} else {
		r.jsonReference = &jsonReference
	}

	if data.Len() != 1 {
		r.addError("Reference: additional properties are given. Only $ref should be set in a Reference Object.")
	}

	return r, nil
}

func isReferenceData(data any) (*sequencedmap.Map[string, any], bool) {
	m, ok := data.(*sequencedmap.Map[string, any])
	if !ok {
		return nil, false
	}
	v, ok := m.Get("$ref")
	return m, ok && v != nil
}

// GetJSONReference returns the parsed reference. The boolean is false when the
// $ref could not be parsed or a failed resolution cleared it.
func (r *Reference) GetJSONReference() (references.JSONReference, bool) {
	if r == nil || r.jsonReference == nil {
		return references.JSONReference{}, false
	}
	return *r.jsonReference, true
}

// IsLocal reports whether the reference points into the document it appears in.
func (r *Reference) IsLocal() bool {
	return r != nil && strings.HasPrefix(r.Ref, "#")
}

// Resolve returns the value the reference points to. rc defaults to the
// reference's own Context.
//
// References into the root document are evaluated against the context's base
// specification, other documents are fetched through the context. When the
// target is itself a reference it is resolved in turn. In inline mode local
// references resolve to themselves.
//
// Failures are returned as *errors.ReferenceError. When rc.ThrowException is
// false the failure is recorded on the reference instead, which is returned
// unresolved. Cycles are always returned as errors.
func (r *Reference) Resolve(ctx context.Context, rc *references.Context) (any, error) {
	return r.resolveChain(ctx, rc, map[*Reference]bool{})
}

func (r *Reference) resolveChain(ctx context.Context, rc *references.Context, chain map[*Reference]bool) (any, error) {
	if rc == nil {
		rc = r.Context
	}
	if rc == nil {
		return nil, r.referenceError(errors.ErrUnresolvableReference.Wrapf("No context given for resolving reference."))
	}
	if rc.Factory == nil {
		rc.Factory = factory{}
	}

	if chain[r] {
		return nil, r.referenceError(errors.NewCyclicReferenceError(r.Ref))
	}
	chain[r] = true
	defer delete(chain, r)

	resolved, err := r.resolve(ctx, rc, chain)
	if err == nil {
		return resolved, nil
	}

	refErr := r.referenceError(err)
	if refErr.Circular || rc.ThrowException {
		return nil, refErr
	}

	loggerOf(rc).Warn("reference not resolved", "ref", r.Ref, "position", refErr.Position, "error", refErr.Message)

	r.addError("%s", refErr.Message)
	r.jsonReference = nil

	return r, nil
}

func (r *Reference) resolve(ctx context.Context, rc *references.Context, chain map[*Reference]bool) (any, error) {
	if r.jsonReference == nil {
		return nil, errors.NewReferenceError(nil, "Reference \"%s\" is not a valid JSON reference.", r.Ref)
	}

	jsonReference := *r.jsonReference

	if jsonReference.IsLocal() {
		if rc.Mode == references.ResolveModeInline {
			return r, nil
		}

		if rc.BaseSpecification != nil {
			return r.resolveInBase(ctx, rc, jsonReference, chain)
		}

		jsonReference = references.CreateFromURI(rc.URI(), jsonReference.JSONPointer)
	}

	file, err := rc.ResolveRelativeURI(jsonReference.DocumentURI)
	if err != nil {
		return nil, err
	}

	loggerOf(rc).Debug("resolving reference", "ref", r.Ref, "target", r.Kind, "document", file)

	referenced, err := r.resolveInFile(ctx, rc, file, jsonReference)
	if err != nil {
		return nil, err
	}

	if n, ok := referenced.(Node); ok && r.hasPosition {
		if _, has := n.node().GetPosition(); !has {
			root := rc.BaseSpecification
			if root == nil {
				root = r.root
			}
			SetDocumentContext(n, root, r.position)
		}
	}

	if target, ok := referenced.(*Reference); ok {
		if rc.Mode == references.ResolveModeInline && target.IsLocal() {
			target.Context = rc
			return target, nil
		}
		return r.resolveTransitive(ctx, target, rc, chain)
	}

	if n, ok := referenced.(Node); ok {
		SetReferenceContext(n, rc)
	}

	return referenced, nil
}

func (r *Reference) resolveInBase(ctx context.Context, rc *references.Context, jsonReference references.JSONReference, chain map[*Reference]bool) (any, error) {
	loggerOf(rc).Debug("resolving reference", "ref", r.Ref, "target", r.Kind)

	referenced, err := jsonReference.JSONPointer.Evaluate(rc.BaseSpecification)
	if err != nil {
		return nil, err
	}

	if target, ok := referenced.(*Reference); ok {
		referenced, err = r.resolveTransitive(ctx, target, rc, chain)
		if err != nil {
			return nil, err
		}
		if _, ok := referenced.(*Reference); ok {
			return referenced, nil
		}
	}

	referenced, err = r.coerce(rc, referenced)
	if err != nil {
		return nil, err
	}

	if n, ok := referenced.(Node); ok {
		SetReferenceContext(n, rc)
	}

	return referenced, nil
}

func (r *Reference) resolveInFile(ctx context.Context, rc *references.Context, file string, jsonReference references.JSONReference) (any, error) {
	if cached, ok := rc.Cache().Lookup(file+"#"+jsonReference.JSONPointer.String(), r.Kind); ok {
		return cached, nil
	}

	document, err := rc.FetchReferencedFile(ctx, file)
	if err != nil {
		return nil, errors.NewReferenceError(err, "Unable to resolve reference \"%s\" to \"%s\" object", r.Ref, r.Kind)
	}

	adjusted, err := adjustRelativeReferences(document, file, rc.URI())
	if err != nil {
		return nil, err
	}

	return rc.ResolveReferenceData(file, jsonReference.JSONPointer, adjusted, r.Kind)
}

func (r *Reference) resolveTransitive(ctx context.Context, target *Reference, rc *references.Context, chain map[*Reference]bool) (any, error) {
	if target.Kind == "" {
		target.Kind = r.Kind
	}
	target.Context = rc

	if target == r {
		return nil, errors.NewCyclicReferenceError(r.Ref)
	}

	result, err := target.resolveChain(ctx, nil, chain)
	if err != nil {
		return nil, err
	}

	if ref, ok := result.(*Reference); ok && ref == r {
		return nil, errors.NewCyclicReferenceError(r.Ref)
	}

	return result, nil
}

// coerce turns a value found in the root document into the expected kind.
// Raw mappings, such as those kept in extensions, are instantiated.
func (r *Reference) coerce(rc *references.Context, v any) (any, error) {
	if r.Kind == "" || v == nil || marshaller.KindOf(v) == r.Kind {
		return v, nil
	}

	if m, ok := v.(*sequencedmap.Map[string, any]); ok {
		return rc.Factory.Instantiate(r.Kind, m)
	}

	return nil, errors.NewReferenceError(errors.ErrType.Wrapf("expected %s, got %s", r.Kind, describeValue(v)),
		"Failed to resolve Reference \"%s\" to %s Object: the referenced value is %s", r.Ref, r.Kind, describeValue(v))
}

// referenceError converts err into a ReferenceError located at this reference.
func (r *Reference) referenceError(err error) *errors.ReferenceError {
	var refErr *errors.ReferenceError
	switch {
	case errors.As(err, &refErr):
	case errors.Is(err, errors.ErrNotFound):
		refErr = errors.NewReferenceError(err, "Failed to resolve Reference \"%s\" to %s Object: %s", r.Ref, r.Kind, errors.Cause(err))
	default:
		refErr = errors.NewReferenceError(err, "%s", errors.Cause(err))
	}

	if refErr.Ref == "" {
		refErr.Ref = r.Ref
		refErr.Target = r.Kind
	}
	if r.hasPosition {
		refErr.Position = r.position.String()
	}

	return refErr
}

func describeValue(v any) string {
	if n, ok := v.(Node); ok {
		return "a " + kindOf(n) + " Object"
	}
	return fmt.Sprintf("of type %s", typeName(v))
}

func loggerOf(rc *references.Context) Logger {
	if rc == nil || rc.Logger == nil {
		return references.NopLogger()
	}
	return rc.Logger
}
