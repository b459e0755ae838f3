// Package references implements JSON References and the context used to resolve
// them across documents: URI normalization, relative resolution, fetching and
// a cache shared by every context derived from the same root document.
package references

import (
	"strings"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/jsonpointer"
	"github.com/oasref/openapi/sequencedmap"
)

// JSONReference is a parsed $ref value: the document it points into and the pointer within that document.
type JSONReference struct {
	DocumentURI string
	JSONPointer jsonpointer.JSONPointer
}

// CreateFromReference parses a raw $ref value. The value is split on the first
// "#"; the fragment is percent-decoded and must be a valid JSON pointer. A value
// without "#" addresses the whole document.
func CreateFromReference(ref string) (JSONReference, error) {
	uri, fragment, found := strings.Cut(ref, "#")
	if !found {
		return JSONReference{DocumentURI: ref}, nil
	}

	pointer, err := jsonpointer.New(rawURLDecode(fragment))
	if err != nil {
		return JSONReference{}, err
	}

	return JSONReference{DocumentURI: uri, JSONPointer: pointer}, nil
}

// CreateFromURI builds a reference to pointer within the document at uri.
// Any fragment already present in uri is discarded.
func CreateFromURI(uri string, pointer jsonpointer.JSONPointer) JSONReference {
	documentURI, _, _ := strings.Cut(uri, "#")
	return JSONReference{DocumentURI: documentURI, JSONPointer: pointer}
}

// CreateFromJSON parses a JSON Reference object such as {"$ref": "#/definitions/Pet"}.
func CreateFromJSON(data []byte) (JSONReference, error) {
	v, err := Decode(data)
	if err != nil {
		return JSONReference{}, errors.ErrMalformedReference.Wrap(err)
	}

	m, ok := v.(*sequencedmap.Map[string, any])
	if !ok {
		return JSONReference{}, errors.ErrMalformedReference.Wrapf(`JSON reference object must contain the "$ref" property`)
	}
	ref, ok := m.GetOrZero("$ref").(string)
	if !ok {
		return JSONReference{}, errors.ErrMalformedReference.Wrapf(`JSON reference object must contain the "$ref" property`)
	}

	return CreateFromReference(ref)
}

// Reference returns the canonical $ref string. The pointer is percent-encoded
// with "/", "?" and "~" left readable.
func (r JSONReference) Reference() string {
	return r.DocumentURI + "#" + fragmentEscaper.Replace(rawURLEncode(r.JSONPointer.String()))
}

func (r JSONReference) String() string {
	return r.Reference()
}

// IsLocal reports whether the reference points into the document it appears in.
func (r JSONReference) IsLocal() bool {
	return r.DocumentURI == ""
}

// ToJSON returns the reference as a JSON Reference object.
func (r JSONReference) ToJSON() *sequencedmap.Map[string, any] {
	return sequencedmap.New(sequencedmap.NewElem[string, any]("$ref", r.Reference()))
}

var fragmentEscaper = strings.NewReplacer("%2F", "/", "%3F", "?", "%7E", "~")

const upperhex = "0123456789ABCDEF"

func isUnreserved(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

// rawURLEncode percent-encodes every byte outside the RFC 3986 unreserved set.
func rawURLEncode(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}
	return sb.String()
}

// rawURLDecode decodes %XX sequences. Malformed sequences are kept as is and "+" is not a space.
func rawURLDecode(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			sb.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
