package validation

import (
	"context"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/references"
)

// documentLoader loads the documents referenced by a schema through the
// reference context, so YAML documents, remote documents and the shared
// document cache all work as they do during reference resolution.
type documentLoader struct {
	ctx context.Context
	rc  *references.Context
}

func (l *documentLoader) Load(url string) (any, error) {
	if l.rc == nil {
		return nil, errors.ErrIO.Wrapf("Failed to read file: '%s': document was not read from a file", url)
	}

	tree, err := l.rc.FetchReferencedFile(l.ctx, url)
	if err != nil {
		return nil, err
	}

	return toJSONValue(tree)
}
