package openapi

import (
	"regexp"

	"github.com/oasref/openapi/references"
	"github.com/oasref/openapi/sequencedmap"
)

var versionPattern = regexp.MustCompile(`(?i)^3\.0\.\d+(-rc\d)?$`)

// OpenAPI is the root object of an OpenAPI 3.0 document.
type OpenAPI struct {
	Object

	OpenAPI      string                 `key:"openapi" required:"true"`
	Info         *Info                  `key:"info" required:"true"`
	Servers      []*Server              `key:"servers"`
	Paths        *Paths                 `key:"paths" required:"true"`
	Components   *Components            `key:"components"`
	Security     []*SecurityRequirement `key:"security"`
	Tags         []*Tag                 `key:"tags"`
	ExternalDocs *ExternalDocumentation `key:"externalDocs"`

	refContext *references.Context
}

// GetReferenceContext returns the context the document was read with by
// ReadFromFile, or nil.
func (o *OpenAPI) GetReferenceContext() *references.Context {
	if o == nil {
		return nil
	}
	return o.refContext
}

// GetServers returns the servers of the document. Without any the document is
// served relative to its own location, which is expressed as a single server
// with url "/".
func (o *OpenAPI) GetServers() []*Server {
	if o == nil {
		return nil
	}
	if len(o.Servers) == 0 {
		return []*Server{{URL: "/"}}
	}
	return o.Servers
}

// GetPathItem returns the path item for path, or nil.
func (o *OpenAPI) GetPathItem(path string) *PathItem {
	if o == nil || o.Paths == nil {
		return nil
	}
	item, _ := o.Paths.Items.Get(path)
	return item
}

func (o *OpenAPI) validate() {
	if o.OpenAPI != "" && !versionPattern.MatchString(o.OpenAPI) {
		o.addValidationError("Unsupported openapi version: %s", o.OpenAPI)
	}
}

// Info is the OpenAPI 3.0 Info Object.
type Info struct {
	Object

	Title          string   `key:"title" required:"true"`
	Description    *string  `key:"description"`
	TermsOfService *string  `key:"termsOfService"`
	Contact        *Contact `key:"contact"`
	License        *License `key:"license"`
	Version        string   `key:"version" required:"true"`
}

// Contact is the OpenAPI 3.0 Contact Object.
type Contact struct {
	Object

	Name  *string `key:"name"`
	URL   *string `key:"url"`
	Email *string `key:"email"`
}

func (c *Contact) validate() {
	validateEmail(&c.Object, "Contact", "email", c.Email)
	validateURL(&c.Object, "Contact", "url", c.URL)
}

// License is the OpenAPI 3.0 License Object.
type License struct {
	Object

	Name string  `key:"name" required:"true"`
	URL  *string `key:"url"`
}

func (l *License) validate() {
	validateURL(&l.Object, "License", "url", l.URL)
}

// ExternalDocumentation is the OpenAPI 3.0 External Documentation Object.
type ExternalDocumentation struct {
	Object

	Description *string `key:"description"`
	URL         string  `key:"url" required:"true"`
}

func (e *ExternalDocumentation) validate() {
	validateURL(&e.Object, "ExternalDocumentation", "url", &e.URL)
}

// Tag is the OpenAPI 3.0 Tag Object.
type Tag struct {
	Object

	Name         string                 `key:"name" required:"true"`
	Description  *string                `key:"description"`
	ExternalDocs *ExternalDocumentation `key:"externalDocs"`
}

// Server is the OpenAPI 3.0 Server Object.
type Server struct {
	Object

	URL         string                                     `key:"url" required:"true"`
	Description *string                                    `key:"description"`
	Variables   *sequencedmap.Map[string, *ServerVariable] `key:"variables"`
}

// ServerVariable is the OpenAPI 3.0 Server Variable Object.
type ServerVariable struct {
	Object

	Enum        []string `key:"enum"`
	Default     string   `key:"default" required:"true"`
	Description *string  `key:"description"`
}
