package validation

import (
	"github.com/oasref/openapi/openapi"
	"github.com/oasref/openapi/references"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type options struct {
	printer *message.Printer
	logger  openapi.Logger
}

// Option configures ValidateExamples.
type Option func(o *options)

// WithLanguage sets the language of the schema violation messages.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.printer = message.NewPrinter(tag)
	}
}

// WithLogger sets the logger used to report skipped examples.
func WithLogger(logger openapi.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func getOptions(opts []Option) *options {
	o := &options{
		printer: message.NewPrinter(language.English),
		logger:  references.NopLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
