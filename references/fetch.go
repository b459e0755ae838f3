package references

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/internal/utils"
	"github.com/oasref/openapi/json"
	"github.com/oasref/openapi/jsonpointer"
	"github.com/oasref/openapi/sequencedmap"
	"github.com/oasref/openapi/system"
	"github.com/oasref/openapi/yml"
)

const (
	fileContentKind   = "FILE_CONTENT"
	fileContentPrefix = "FILE_CONTENT://"
)

// Decode parses document bytes, as JSON when the first non-whitespace byte is "{" and as YAML otherwise.
func Decode(data []byte) (any, error) {
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n\v\f\x00"), []byte("{")) {
		return json.Unmarshal(data)
	}
	return yml.Unmarshal(data)
}

// FetchReferencedFile returns the parsed content of the document at the absolute
// uri. Each uri is fetched at most once per cache; concurrent requests for the
// same uri share a single fetch.
func (c *Context) FetchReferencedFile(ctx context.Context, uri string) (any, error) {
	key := fileContentPrefix + uri

	if v, ok := c.cache.Lookup(key, fileContentKind); ok {
		c.logger().Debug("using cached document", "uri", uri)
		return v, nil
	}

	v, err, _ := c.cache.fetches.Do(key, func() (any, error) {
		if v, ok := c.cache.Lookup(key, fileContentKind); ok {
			return v, nil
		}

		c.logger().Debug("fetching document", "uri", uri)

		data, err := c.readURI(ctx, uri)
		if err != nil {
			return nil, errors.ErrIO.Wrap(fmt.Errorf("Failed to read file: '%s': %w", uri, err)) //nolint:staticcheck
		}

		parsed, err := Decode(data)
		if err != nil {
			return nil, err
		}

		c.cache.Set(key, fileContentKind, parsed)

		return parsed, nil
	})
	if err != nil {
		return nil, err
	}

	return v, nil
}

func (c *Context) readURI(ctx context.Context, uri string) ([]byte, error) {
	u, err := utils.ParseURLCached(uri)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return c.readFile(u)
	case "http", "https":
		return c.readHTTP(ctx, uri)
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func (c *Context) readFile(u *url.URL) ([]byte, error) {
	path := u.Path
	if u.Host != "" && u.Host != "localhost" {
		path = "//" + u.Host + path
	}
	// file:///C:/dir/file.yaml
	if len(path) > 2 && path[0] == '/' && IsWindowsPath(path[1:3]+`\`) {
		path = path[1:]
	}

	fsys := c.VirtualFS
	if fsys == nil {
		fsys = &system.FileSystem{}
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func (c *Context) readHTTP(ctx context.Context, uri string) ([]byte, error) {
	client := c.Client
	if client == nil {
		client = system.NewDefaultClient()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// ResolveReferenceData evaluates pointer against data, the parsed content of the
// document at uri, and builds a node of the given kind from the result. An empty
// kind returns the raw data. A result that is itself a {"$ref": ...} mapping is
// returned as a new unresolved reference and is not cached; a nil result is
// returned as nil.
func (c *Context) ResolveReferenceData(uri string, pointer jsonpointer.JSONPointer, data any, kind string) (any, error) {
	ref := uri + "#" + pointer.String()

	if v, ok := c.cache.Lookup(ref, kind); ok {
		return v, nil
	}

	referenced, err := pointer.Evaluate(data)
	if err != nil {
		return nil, err
	}

	if referenced == nil {
		return nil, nil
	}

	if m, ok := referenced.(*sequencedmap.Map[string, any]); ok {
		if v, ok := m.Get("$ref"); ok && v != nil {
			if c.Factory == nil {
				return nil, errors.ErrType.Wrapf("no factory configured to create a reference for %s", ref)
			}
			return c.Factory.NewReference(m, kind)
		}
	}

	object := referenced
	if kind != "" {
		if c.Factory == nil {
			return nil, errors.ErrType.Wrapf("no factory configured to instantiate %s", kind)
		}
		object, err = c.Factory.Instantiate(kind, referenced)
		if err != nil {
			return nil, err
		}
	}

	c.cache.Set(ref, kind, object)

	return object, nil
}
