package references

import (
	"github.com/oasref/openapi/sequencedmap"
	"github.com/oasref/openapi/system"
)

// ResolveMode controls which references a resolution pass replaces.
type ResolveMode string

const (
	// ResolveModeInline only replaces references to other documents; references
	// within the root document are left in place.
	ResolveModeInline ResolveMode = "inline"
	// ResolveModeAll replaces every reference.
	ResolveModeAll ResolveMode = "all"
)

// Factory builds document nodes for the values references resolve to.
type Factory interface {
	// NewReference wraps a {"$ref": ...} mapping reached while resolving. kind is
	// the node kind the reference is expected to resolve to.
	NewReference(data *sequencedmap.Map[string, any], kind string) (any, error)
	// Instantiate builds a node of the named kind from raw document data.
	Instantiate(kind string, data any) (any, error)
}

// Logger receives diagnostic messages. It matches the logging methods of
// github.com/charmbracelet/log.Logger.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Info(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
	Error(msg any, keyvals ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(any, ...any) {}
func (nopLogger) Info(any, ...any)  {}
func (nopLogger) Warn(any, ...any)  {}
func (nopLogger) Error(any, ...any) {}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return nopLogger{}
}

// Context is a resolution session for one document. Its URI is always absolute
// and normalized.
type Context struct {
	// Mode selects which references are replaced. Defaults to ResolveModeAll.
	Mode ResolveMode
	// ThrowException makes ordinary resolution failures fatal. When false the
	// failing reference records the error and stays in the graph. Cyclic
	// references are always fatal.
	ThrowException bool
	// BaseSpecification is the in-memory root document; local references are
	// evaluated against it. Contexts for fetched files have none.
	BaseSpecification any
	// Factory builds typed nodes from fetched data.
	Factory Factory
	// VirtualFS reads file:// documents.
	VirtualFS system.VirtualFS
	// Client fetches http and https documents.
	Client system.Client
	// Logger receives debug output about fetches and resolutions.
	Logger Logger

	uri   string
	cache *Cache
}

// NewContext creates a context for the document located at uri. When cache is
// nil a new one is created and, if baseSpecification is set, seeded with it.
func NewContext(baseSpecification any, uri string, cache *Cache) (*Context, error) {
	normalized, err := NormalizeURI(uri)
	if err != nil {
		return nil, err
	}

	c := &Context{
		Mode:              ResolveModeAll,
		ThrowException:    true,
		BaseSpecification: baseSpecification,
		uri:               normalized,
		cache:             cache,
	}

	if cache == nil {
		c.cache = NewCache()
		if baseSpecification != nil {
			c.cache.Set(c.uri, "", baseSpecification)
		}
	}

	return c, nil
}

// URI returns the normalized absolute URI of the document.
func (c *Context) URI() string {
	return c.uri
}

// Cache returns the cache shared by this context.
func (c *Context) Cache() *Cache {
	return c.cache
}

// ResolveRelativeURI resolves uri against the context URI. URIs with a scheme
// only have their dot segments removed; absolute paths replace the base path;
// relative paths are joined to the base directory. Query and fragment always
// come from uri.
func (c *Context) ResolveRelativeURI(uri string) (string, error) {
	return ResolveRelativeURICached(c.uri, uri)
}

func (c *Context) logger() Logger {
	if c.Logger == nil {
		return nopLogger{}
	}
	return c.Logger
}
