package openapi

import (
	"context"
	"reflect"

	"github.com/oasref/openapi/jsonpointer"
	"github.com/oasref/openapi/marshaller"
	"github.com/oasref/openapi/references"
)

// SetDocumentContext assigns root and the position of every object below n,
// starting with position for n itself. An object reachable through several
// paths keeps the first position assigned during one call.
func SetDocumentContext(n Node, root any, position jsonpointer.JSONPointer) {
	setDocumentContext(n, root, position, map[*Object]bool{})
}

func setDocumentContext(n Node, root any, position jsonpointer.JSONPointer, visited map[*Object]bool) {
	o := n.node()
	if visited[o] {
		return
	}
	visited[o] = true

	o.setDocumentContext(root, position)

	_ = eachChild(n, func(path []string, child any, _ func(any)) error {
		if c := childNode(child); c != nil {
			setDocumentContext(c, root, position.Append(path...), visited)
		}
		return nil
	})
}

// SetReferenceContext makes rc the context every Reference below n resolves with.
func SetReferenceContext(n Node, rc *references.Context) {
	setReferenceContext(n, rc, map[*Object]bool{})
}

func setReferenceContext(n Node, rc *references.Context, visited map[*Object]bool) {
	o := n.node()
	if visited[o] {
		return
	}
	visited[o] = true

	if ref, ok := n.(*Reference); ok {
		ref.Context = rc
		return
	}

	_ = eachChild(n, func(_ []string, child any, _ func(any)) error {
		if c := childNode(child); c != nil {
			setReferenceContext(c, rc, visited)
		}
		return nil
	})
}

// ResolveReferences replaces every Reference below n by the object it points
// to, recursing into resolved objects. Each object is visited once, so cyclic
// schemas terminate. rc defaults to the contexts assigned with
// SetReferenceContext.
func ResolveReferences(ctx context.Context, n Node, rc *references.Context) error {
	r := &graphResolver{ctx: ctx, rc: rc, visited: map[*Object]bool{}}
	return r.resolveNode(n)
}

type graphResolver struct {
	ctx     context.Context
	rc      *references.Context
	visited map[*Object]bool
}

func (g *graphResolver) resolveNode(n Node) error {
	o := n.node()
	if g.visited[o] {
		return nil
	}
	g.visited[o] = true

	if p, ok := n.(*PathItem); ok {
		if err := g.mergePathItem(p); err != nil {
			return err
		}
	}

	return eachChild(n, func(_ []string, child any, set func(any)) error {
		switch c := child.(type) {
		case referenceSlot:
			ref := c.reference()
			if ref == nil {
				if obj := c.object(); obj != nil {
					return g.resolveNode(obj)
				}
				return nil
			}

			resolved, err := ref.Resolve(g.ctx, g.rc)
			if err != nil {
				return err
			}
			if err := c.setResolved(resolved); err != nil {
				return ref.referenceError(err)
			}
			return g.resolveResult(resolved)
		case *Reference:
			if set == nil {
				return nil
			}

			resolved, err := c.Resolve(g.ctx, g.rc)
			if err != nil {
				return err
			}
			set(resolved)
			return g.resolveResult(resolved)
		case Node:
			return g.resolveNode(c)
		}
		return nil
	})
}

func (g *graphResolver) resolveResult(resolved any) error {
	if _, ok := resolved.(*Reference); ok {
		return nil
	}
	if n, ok := resolved.(Node); ok && !isNilValue(n) {
		return g.resolveNode(n)
	}
	return nil
}

// mergePathItem resolves the $ref of a path item and copies the attributes and
// extensions of the referenced item into it.
func (g *graphResolver) mergePathItem(p *PathItem) error {
	if p.reference == nil {
		return nil
	}

	resolved, err := p.reference.Resolve(g.ctx, g.rc)
	if err != nil {
		return err
	}

	target, ok := resolved.(*PathItem)
	if !ok || target == nil {
		return nil
	}

	p.reference = nil
	p.Ref = ""

	dst := reflect.ValueOf(p).Elem()
	src := reflect.ValueOf(target).Elem()

	for _, f := range marshaller.GetFields(dst.Type()).Keyed() {
		if f.Key == "$ref" {
			continue
		}

		from := src.FieldByIndex(f.Index)
		if from.IsZero() {
			continue
		}

		to := dst.FieldByIndex(f.Index)
		if !to.IsZero() && !(to.Kind() == reflect.Slice && to.Len() == 0) {
			p.addError("Conflicting properties, property \"%s\" exists in local PathItem and also in the referenced one.", f.Key)
		}
		to.Set(from)
	}

	for key, value := range target.Extensions.All() {
		p.setExtension(key, value)
	}

	return nil
}

// childNode returns the node a visited child stands for.
func childNode(child any) Node {
	switch c := child.(type) {
	case referenceSlot:
		return slotNode(c)
	case Node:
		return c
	}
	return nil
}
