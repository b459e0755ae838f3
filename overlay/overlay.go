// Package overlay applies OpenAPI Overlay documents to OpenAPI documents.
//
// An overlay is a list of actions. Each action selects nodes of the document
// with a JSONPath target and either removes them, merges an update into them
// or merges a copy of another node into them.
package overlay

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oasref/openapi/errors"
	"github.com/oasref/openapi/internal/version"
	"github.com/oasref/openapi/query"
	"github.com/oasref/openapi/references"
	"gopkg.in/yaml.v3"
)

const (
	Version100 = "1.0.0"
	Version110 = "1.1.0"
)

var (
	// SupportedVersions lists the overlay versions that can be applied.
	SupportedVersions = []*version.Version{version.MustParse(Version100), version.MustParse(Version110)}

	version110 = version.MustParse(Version110)
)

// Extensions holds the x-* fields of an overlay object.
type Extensions map[string]any

// Overlay is the top-level object of an overlay document.
type Overlay struct {
	Extensions `yaml:",inline"`

	Version string `yaml:"overlay"`

	// JSONPathVersion overrides the JSONPath dialect of the targets. Version
	// 1.0.0 overlays default to the legacy dialect and later versions to RFC 9535.
	JSONPathVersion query.Dialect `yaml:"x-jsonpath,omitempty"`

	Info    Info     `yaml:"info"`
	Extends string   `yaml:"extends,omitempty"`
	Actions []Action `yaml:"actions"`
}

type Info struct {
	Extensions `yaml:",inline"`

	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
}

// Action changes the nodes selected by Target. Remove takes precedence over
// Update, and Update over Copy.
type Action struct {
	Extensions `yaml:",inline"`

	Target      string    `yaml:"target"`
	Description string    `yaml:"description,omitempty"`
	Update      yaml.Node `yaml:"update,omitempty"`
	Remove      bool      `yaml:"remove,omitempty"`
	// Copy is a JSONPath selecting the single node merged into the targets.
	Copy string `yaml:"copy,omitempty"`
}

// Parse reads the overlay document at path.
func Parse(path string) (*Overlay, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.ErrIO.Wrapf("Failed to read file: '%s': %s", path, err)
	}

	o, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse overlay %q: %w", path, err)
	}

	return o, nil
}

// Unmarshal decodes an overlay from YAML or JSON.
func Unmarshal(data []byte) (*Overlay, error) {
	var o Overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, errors.ErrType.Wrap(err)
	}
	return &o, nil
}

// Marshal encodes the overlay as YAML.
func (o *Overlay) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(o); err != nil {
		return nil, errors.ErrType.Wrap(err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.ErrType.Wrap(err)
	}
	return buf.Bytes(), nil
}

// Dialect returns the JSONPath dialect the targets of o are written in.
func (o *Overlay) Dialect() query.Dialect {
	switch o.JSONPathVersion {
	case query.DialectRFC9535, query.DialectLegacy:
		return o.JSONPathVersion
	}
	if o.before110() {
		return query.DialectLegacy
	}
	return query.DialectRFC9535
}

// before110 reports whether o predates overlay 1.1.0. Unparsable versions
// count as old.
func (o *Overlay) before110() bool {
	v, err := version.Parse(o.Version)
	return err != nil || v.LessThan(*version110)
}

// ExtendsLocation resolves the extends URL of o against the location of the
// overlay file, so a relative extends names a document next to the overlay.
func (o *Overlay) ExtendsLocation(overlayFile string) (string, error) {
	if o.Extends == "" {
		return "", errors.ErrIO.Wrapf("overlay %s does not extend a document", overlayFile)
	}

	abs, err := filepath.Abs(overlayFile)
	if err != nil {
		return "", errors.ErrIO.Wrapf("Failed to read file: '%s': %s", overlayFile, err)
	}
	base, err := references.NormalizeURI(abs)
	if err != nil {
		return "", err
	}

	return references.ResolveRelativeURICached(base, o.Extends)
}

// Validate checks o against the structural rules of the overlay format.
func (o *Overlay) Validate() []error {
	var errs []error

	if o.Version == "" {
		errs = append(errs, errors.ErrInvalidOverlay.Wrapf("overlay version must be defined"))
	} else if v, err := version.Parse(o.Version); err != nil {
		errs = append(errs, errors.ErrInvalidOverlay.Wrapf("overlay version %q is invalid", o.Version))
	} else if !v.IsOneOf(SupportedVersions) {
		errs = append(errs, errors.ErrInvalidOverlay.Wrapf("overlay version %q is not supported, expected one of %v", o.Version, SupportedVersions))
	}

	if o.Info.Title == "" {
		errs = append(errs, errors.ErrInvalidOverlay.Wrapf("overlay info title must be defined"))
	}
	if o.Info.Version == "" {
		errs = append(errs, errors.ErrInvalidOverlay.Wrapf("overlay info version must be defined"))
	}

	if len(o.Actions) == 0 {
		errs = append(errs, errors.ErrInvalidOverlay.Wrapf("overlay must define at least one action"))
	}

	dialect := o.Dialect()
	for i, action := range o.Actions {
		if action.Target == "" {
			errs = append(errs, errors.ErrInvalidOverlay.Wrapf("action %d: target must be defined", i))
		} else if _, err := query.NewPath(action.Target, dialect); err != nil {
			errs = append(errs, errors.ErrInvalidOverlay.Wrapf("action %d: %s", i, err))
		}

		if action.Remove && !action.Update.IsZero() {
			errs = append(errs, errors.ErrInvalidOverlay.Wrapf("action %d: remove and update can not both be set", i))
		}
		if action.Copy != "" && o.before110() {
			errs = append(errs, errors.ErrInvalidOverlay.Wrapf("action %d: copy requires overlay %s", i, Version110))
		}
	}

	return errs
}
