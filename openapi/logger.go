package openapi

import "github.com/oasref/openapi/references"

// Logger receives the debug output of reading and resolving documents.
// *github.com/charmbracelet/log.Logger satisfies it.
type Logger = references.Logger
