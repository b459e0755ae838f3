package openapi

import (
	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/marshaller"
	"github.com/oasref/openapi/references"
	"github.com/oasref/openapi/sequencedmap"
)

const kindPathItem = "PathItem"

func init() {
	marshaller.RegisterType("OpenAPI", func() *OpenAPI { return &OpenAPI{} })
	marshaller.RegisterType("Info", func() *Info { return &Info{} })
	marshaller.RegisterType("Contact", func() *Contact { return &Contact{} })
	marshaller.RegisterType("License", func() *License { return &License{} })
	marshaller.RegisterType("Server", func() *Server { return &Server{} })
	marshaller.RegisterType("ServerVariable", func() *ServerVariable { return &ServerVariable{} })
	marshaller.RegisterType("Paths", func() *Paths { return &Paths{} })
	marshaller.RegisterType(kindPathItem, func() *PathItem { return &PathItem{} })
	marshaller.RegisterType("Operation", func() *Operation { return &Operation{} })
	marshaller.RegisterType("ExternalDocumentation", func() *ExternalDocumentation { return &ExternalDocumentation{} })
	marshaller.RegisterType("Parameter", func() *Parameter { return &Parameter{} })
	marshaller.RegisterType("Header", func() *Header { return &Header{} })
	marshaller.RegisterType("RequestBody", func() *RequestBody { return &RequestBody{} })
	marshaller.RegisterType("MediaType", func() *MediaType { return &MediaType{} })
	marshaller.RegisterType("Encoding", func() *Encoding { return &Encoding{} })
	marshaller.RegisterType("Responses", func() *Responses { return &Responses{} })
	marshaller.RegisterType("Response", func() *Response { return &Response{} })
	marshaller.RegisterType("Callback", func() *Callback { return &Callback{} })
	marshaller.RegisterType("Example", func() *Example { return &Example{} })
	marshaller.RegisterType("Link", func() *Link { return &Link{} })
	marshaller.RegisterType("Tag", func() *Tag { return &Tag{} })
	marshaller.RegisterType("Components", func() *Components { return &Components{} })
	marshaller.RegisterType("Schema", func() *Schema { return &Schema{} })
	marshaller.RegisterType("Discriminator", func() *Discriminator { return &Discriminator{} })
	marshaller.RegisterType("XML", func() *XML { return &XML{} })
	marshaller.RegisterType("SecurityScheme", func() *SecurityScheme { return &SecurityScheme{} })
	marshaller.RegisterType("OAuthFlows", func() *OAuthFlows { return &OAuthFlows{} })
	marshaller.RegisterType("OAuthFlow", func() *OAuthFlow { return &OAuthFlow{} })
	marshaller.RegisterType("SecurityRequirement", func() *SecurityRequirement { return &SecurityRequirement{} })
}

// factory builds document objects for the resolver.
type factory struct{}

var _ references.Factory = factory{}

func (factory) NewReference(data *sequencedmap.Map[string, any], kind string) (any, error) {
	return NewReference(data, kind)
}

func (factory) Instantiate(kind string, data any) (any, error) {
	v, err := marshaller.CreateInstance(kind)
	if err != nil {
		return nil, err
	}

	n, ok := v.(Node)
	if !ok {
		return nil, errors.ErrType.Wrapf("%s is not a document object", kind)
	}

	if err := decodeNode(n, data); err != nil {
		return nil, err
	}

	return n, nil
}
