package openapi

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/oasref/openapi/cmd/openapi/commands/cmdutil"
	"github.com/oasref/openapi/openapi"
)

// DocumentProcessor reads a document and writes it back out in a chosen format.
type DocumentProcessor struct {
	InputFile  string
	OutputFile string
	Format     cmdutil.Format

	// Optional overrides for testing. When nil, os.Stdout and os.Stderr are used.
	Stdout io.Writer
	Stderr io.Writer
}

func (p *DocumentProcessor) stdout() io.Writer {
	if p.Stdout != nil {
		return p.Stdout
	}
	return os.Stdout
}

func (p *DocumentProcessor) stderr() io.Writer {
	if p.Stderr != nil {
		return p.Stderr
	}
	return os.Stderr
}

// LoadDocument reads the input file or URL. The logger installed by the root
// command is passed on to the reader.
func (p *DocumentProcessor) LoadDocument(ctx context.Context, opts ...openapi.Option) (*openapi.OpenAPI, error) {
	cleanInputFile := p.InputFile
	if !strings.Contains(cleanInputFile, "://") {
		cleanInputFile = filepath.Clean(cleanInputFile)
	}
	fmt.Fprintf(p.stderr(), "Processing OpenAPI document: %s\n", cleanInputFile)

	opts = append([]openapi.Option{openapi.WithLogger(log.Default())}, opts...)

	doc, err := openapi.ReadFromFile(ctx, cleanInputFile, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI document: %w", err)
	}

	return doc, nil
}

// WriteDocument writes doc to the output file, or to stdout when there is none.
func (p *DocumentProcessor) WriteDocument(doc *openapi.OpenAPI) error {
	if p.OutputFile == "" {
		data, err := p.encode(doc)
		if err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
		_, err = p.stdout().Write(data)
		return err
	}

	cleanOutputFile := filepath.Clean(p.OutputFile)

	write := openapi.WriteToYAMLFile
	if p.Format == cmdutil.FormatJSON {
		write = openapi.WriteToJSONFile
	}
	if err := write(doc, cleanOutputFile); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	fmt.Fprintf(p.stderr(), "📄 Document written to: %s\n", cleanOutputFile)

	return nil
}

func (p *DocumentProcessor) encode(doc *openapi.OpenAPI) ([]byte, error) {
	if p.Format == cmdutil.FormatJSON {
		data, err := openapi.WriteToJSON(doc)
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return openapi.WriteToYAML(doc)
}

// ReportErrors prints the errors of a document as a numbered list.
func (p *DocumentProcessor) ReportErrors(errs []string) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(p.stderr(), "⚠️  Found %d errors in the document:\n", len(errs))
	fmt.Fprint(p.stderr(), formatErrors(errs))
	fmt.Fprintln(p.stderr())
}

// PrintSuccess prints a success message to stderr.
func (p *DocumentProcessor) PrintSuccess(message string) {
	fmt.Fprintf(p.stderr(), "✅ %s\n", message)
}
