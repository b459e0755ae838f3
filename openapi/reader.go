package openapi

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/json"
	"github.com/oasref/openapi/references"
	"github.com/oasref/openapi/system"
	"github.com/oasref/openapi/yml"
)

type readOptions struct {
	mode           references.ResolveMode
	resolve        bool
	throwException bool
	vfs            system.VirtualFS
	client         system.Client
	logger         Logger
}

// Option configures ReadFromFile.
type Option func(o *readOptions)

// WithResolveMode selects which references are replaced. The default is
// references.ResolveModeAll.
func WithResolveMode(mode references.ResolveMode) Option {
	return func(o *readOptions) {
		o.mode = mode
	}
}

// WithoutReferenceResolution leaves all references in place.
func WithoutReferenceResolution() Option {
	return func(o *readOptions) {
		o.resolve = false
	}
}

// WithThrowException controls whether unresolvable references fail the read.
// When disabled they are recorded as errors of the reference instead. Cyclic
// references always fail.
func WithThrowException(throw bool) Option {
	return func(o *readOptions) {
		o.throwException = throw
	}
}

// WithVirtualFS reads the document and the local files it references from vfs.
func WithVirtualFS(vfs system.VirtualFS) Option {
	return func(o *readOptions) {
		o.vfs = vfs
	}
}

// WithHTTPClient fetches remote documents with client.
func WithHTTPClient(client system.Client) Option {
	return func(o *readOptions) {
		o.client = client
	}
}

// WithLogger sends the debug output of reading and resolving to logger.
func WithLogger(logger Logger) Option {
	return func(o *readOptions) {
		o.logger = logger
	}
}

// ReadFromYAML builds an unresolved document from YAML.
func ReadFromYAML(data []byte) (*OpenAPI, error) {
	tree, err := yml.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return newDocument(tree)
}

// ReadFromJSON builds an unresolved document from JSON.
func ReadFromJSON(data []byte) (*OpenAPI, error) {
	tree, err := json.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return newDocument(tree)
}

// ReadFromValue builds an unresolved document from a tree value, as produced
// by Marshal or the yml and json packages.
func ReadFromValue(tree any) (*OpenAPI, error) {
	return newDocument(tree)
}

func newDocument(tree any) (*OpenAPI, error) {
	doc := &OpenAPI{}
	if err := decodeNode(doc, tree); err != nil {
		return nil, err
	}
	return doc, nil
}

// ReadFromFile reads the document at fileName, a local path or an http(s)
// URL, and resolves its references relative to that location.
func ReadFromFile(ctx context.Context, fileName string, opts ...Option) (*OpenAPI, error) {
	o := &readOptions{
		mode:           references.ResolveModeAll,
		resolve:        true,
		throwException: true,
	}
	for _, opt := range opts {
		opt(o)
	}

	location := fileName
	if !strings.Contains(fileName, "://") {
		abs, err := filepath.Abs(fileName)
		if err != nil {
			return nil, errors.ErrIO.Wrapf("Failed to read file: '%s': %s", fileName, err)
		}
		location = abs
	}

	rc, err := references.NewContext(nil, location, nil)
	if err != nil {
		return nil, err
	}
	rc.ThrowException = o.throwException
	rc.Factory = factory{}
	rc.VirtualFS = o.vfs
	rc.Client = o.client
	rc.Logger = o.logger

	tree, err := rc.FetchReferencedFile(ctx, rc.URI())
	if err != nil {
		return nil, err
	}

	doc, err := newDocument(tree)
	if err != nil {
		return nil, err
	}

	rc.BaseSpecification = doc
	doc.refContext = rc
	SetReferenceContext(doc, rc)
	SetDocumentContext(doc, doc, "")

	if !o.resolve {
		return doc, nil
	}

	rc.Mode = o.mode
	loggerOf(rc).Debug("resolving references", "document", rc.URI(), "mode", rc.Mode)

	if err := ResolveReferences(ctx, doc, rc); err != nil {
		return nil, err
	}

	return doc, nil
}

// ResolveReferences resolves the references of the document with rc, which
// defaults to the context assigned by ReadFromFile.
func (o *OpenAPI) ResolveReferences(ctx context.Context, rc *references.Context) error {
	return ResolveReferences(ctx, o, rc)
}

// Validate checks the whole document and reports whether it is free of errors.
func (o *OpenAPI) Validate() bool {
	return Validate(o)
}

// Errors returns the errors of the whole document.
func (o *OpenAPI) Errors() []string {
	return Errors(o)
}
