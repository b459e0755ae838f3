package openapi

import (
	"slices"

	"github.com/oasref/openapi/pointer"
	"github.com/oasref/openapi/sequencedmap"
)

// ParameterIn is the location of a parameter.
type ParameterIn string

const (
	ParameterInQuery  ParameterIn = "query"
	ParameterInHeader ParameterIn = "header"
	ParameterInPath   ParameterIn = "path"
	ParameterInCookie ParameterIn = "cookie"
)

var supportedStyles = map[ParameterIn][]string{
	ParameterInPath:   {"simple", "label", "matrix"},
	ParameterInQuery:  {"form", "spaceDelimited", "pipeDelimited", "deepObject"},
	ParameterInHeader: {"simple"},
	ParameterInCookie: {"form"},
}

// Parameter is the OpenAPI 3.0 Parameter Object.
type Parameter struct {
	Object

	Name            string                                        `key:"name" required:"true"`
	In              ParameterIn                                   `key:"in" required:"true"`
	Description     *string                                       `key:"description"`
	Required        *bool                                         `key:"required"`
	Deprecated      *bool                                         `key:"deprecated"`
	AllowEmptyValue *bool                                         `key:"allowEmptyValue"`
	Style           *string                                       `key:"style"`
	Explode         *bool                                         `key:"explode"`
	AllowReserved   *bool                                         `key:"allowReserved"`
	Schema          *ReferencedSchema                             `key:"schema"`
	Example         any                                           `key:"example"`
	Examples        *sequencedmap.Map[string, *ReferencedExample] `key:"examples"`
	Content         *sequencedmap.Map[string, *MediaType]         `key:"content"`
}

// GetStyle returns style, defaulting to form for query and cookie parameters
// and to simple for path and header parameters.
func (p *Parameter) GetStyle() string {
	if p == nil {
		return ""
	}
	if p.Style != nil {
		return *p.Style
	}
	switch p.In {
	case ParameterInQuery, ParameterInCookie:
		return "form"
	case ParameterInPath, ParameterInHeader:
		return "simple"
	}
	return ""
}

// GetExplode returns explode, which defaults to true exactly when the style is form.
func (p *Parameter) GetExplode() bool {
	if p == nil {
		return false
	}
	if p.Explode != nil {
		return *p.Explode
	}
	return p.GetStyle() == "form"
}

// GetRequired returns required, which defaults to false.
func (p *Parameter) GetRequired() bool {
	return p != nil && pointer.ValueOrZero(p.Required)
}

func (p *Parameter) validate() {
	if p.In == ParameterInPath {
		if p.Required == nil {
			p.addValidationError("Parameter is missing required property: required")
		}
		if !p.GetRequired() {
			p.addValidationError("Parameter 'required' must be true for 'in': 'path'.")
		}
	}

	if p.Content.Len() > 0 && p.Schema != nil {
		p.addValidationError("A Parameter Object MUST contain either a schema property, or a content property, but not both.")
	}
	if p.Content.Len() > 0 && p.Content.Len() != 1 {
		p.addValidationError("A Parameter Object with Content property MUST have A SINGLE content type.")
	}

	if styles, ok := supportedStyles[p.In]; ok && !slices.Contains(styles, p.GetStyle()) {
		p.addValidationError("A Parameter Object DOES NOT support this serialization style.")
	}
}

// Header is the OpenAPI 3.0 Header Object: a Parameter without name and in.
type Header struct {
	Object

	Description     *string                                       `key:"description"`
	Required        *bool                                         `key:"required"`
	Deprecated      *bool                                         `key:"deprecated"`
	AllowEmptyValue *bool                                         `key:"allowEmptyValue"`
	Style           *string                                       `key:"style"`
	Explode         *bool                                         `key:"explode"`
	AllowReserved   *bool                                         `key:"allowReserved"`
	Schema          *ReferencedSchema                             `key:"schema"`
	Example         any                                           `key:"example"`
	Examples        *sequencedmap.Map[string, *ReferencedExample] `key:"examples"`
	Content         *sequencedmap.Map[string, *MediaType]         `key:"content"`
}

// GetStyle returns style, which defaults to simple.
func (h *Header) GetStyle() string {
	if h == nil {
		return ""
	}
	return pointer.ValueOr(h.Style, "simple")
}

// GetExplode returns explode, which defaults to false.
func (h *Header) GetExplode() bool {
	return h != nil && pointer.ValueOrZero(h.Explode)
}

func (h *Header) validate() {
	if v, ok := h.GetUnknown("name"); ok && !isEmptyValue(v) {
		h.addValidationError("'name' must not be specified in Header Object.")
	}
	if v, ok := h.GetUnknown("in"); ok && !isEmptyValue(v) {
		h.addValidationError("'in' must not be specified in Header Object.")
	}
	if h.Content.Len() > 0 && h.Schema != nil {
		h.addValidationError("A Header Object MUST contain either a schema property, or a content property, but not both.")
	}
}
