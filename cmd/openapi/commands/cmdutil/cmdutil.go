// Package cmdutil provides shared CLI utilities for all commands.
package cmdutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output encoding of a document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ArgAt returns args[i], or def when there are not enough args.
func ArgAt(args []string, i int, def string) string {
	if i < len(args) {
		return args[i]
	}
	return def
}

// FormatOf returns the format implied by the extension of path, or "" when
// the extension names neither.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return ""
}

// ParseFormat validates a --format flag value. An empty value is allowed and
// means the format is derived elsewhere.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(value)); f {
	case "", FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q, expected yaml or json", value)
	}
}

// OutputFormat picks the format of an output: the explicit flag, then the
// extension of the output file, then def.
func OutputFormat(flag Format, output string, def Format) Format {
	if flag != "" {
		return flag
	}
	if f := FormatOf(output); f != "" {
		return f
	}
	return def
}
