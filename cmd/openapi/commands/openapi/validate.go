package openapi

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/oasref/openapi/openapi"
	"github.com/oasref/openapi/validation"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate OpenAPI documents",
	Long: `Read OpenAPI 3.0 documents, resolve their references and check them.

Reported are malformed properties, missing required properties, broken or
cyclic references and the rules of the OpenAPI 3.0 specification. With
--examples every example and default value is also checked against its
schema.

Documents are validated concurrently and reported in the order given.`,
	Example: `  openapi validate ./spec.yaml
  openapi validate --examples ./a.yaml ./b.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

var (
	validateExamples bool
	validateLenient  bool
	validateJobs     int
)

func init() {
	validateCmd.Flags().BoolVar(&validateExamples, "examples", false, "check examples and defaults against their schemas")
	validateCmd.Flags().BoolVar(&validateLenient, "lenient", false, "report unresolvable references as document errors instead of failing the read")
	validateCmd.Flags().IntVarP(&validateJobs, "jobs", "j", 4, "number of documents validated at the same time")
}

type validateOptions struct {
	examples bool
	lenient  bool
	jobs     int
}

func runValidate(cmd *cobra.Command, args []string) error {
	opts := validateOptions{
		examples: validateExamples,
		lenient:  validateLenient,
		jobs:     validateJobs,
	}

	return validateDocuments(cmd.Context(), cmd.OutOrStdout(), args, opts)
}

// validateDocuments validates files and prints a report per file. It fails
// when any of them is invalid.
func validateDocuments(ctx context.Context, w io.Writer, files []string, opts validateOptions) error {
	reports := make([][]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	if opts.jobs > 0 {
		g.SetLimit(opts.jobs)
	}
	for i, file := range files {
		g.Go(func() error {
			reports[i] = validateDocument(ctx, file, opts)
			return nil
		})
	}
	_ = g.Wait()

	invalid := 0
	for i, file := range files {
		printReport(w, filepath.Clean(file), reports[i])
		if len(reports[i]) > 0 {
			invalid++
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d documents are invalid", invalid, len(files))
	}

	return nil
}

// validateDocument returns the errors of a single document. A document that
// can not be read yields that read error.
func validateDocument(ctx context.Context, file string, opts validateOptions) []string {
	p := &DocumentProcessor{InputFile: file, Stderr: io.Discard}

	doc, err := p.LoadDocument(ctx, openapi.WithThrowException(!opts.lenient))
	if err != nil {
		return []string{err.Error()}
	}

	doc.Validate()
	errs := doc.Errors()

	if opts.examples {
		for _, err := range validation.ValidateExamples(ctx, doc) {
			errs = append(errs, err.Error())
		}
	}

	return errs
}

func printReport(w io.Writer, file string, errs []string) {
	printer := message.NewPrinter(language.English)

	fmt.Fprintf(w, "Validating OpenAPI document: %s\n", file)

	if len(errs) == 0 {
		fmt.Fprintln(w, "✅ OpenAPI document is valid - 0 errors")
		fmt.Fprintln(w)
		return
	}

	printer.Fprintf(w, "❌ OpenAPI document is invalid - %d errors:\n", len(errs))
	fmt.Fprint(w, formatErrors(errs))
	fmt.Fprintln(w)
}

// formatErrors numbers errs with right aligned indices.
func formatErrors(errs []string) string {
	width := len(fmt.Sprint(len(errs)))

	var b strings.Builder
	for i, err := range errs {
		fmt.Fprintf(&b, "%*d. %s\n", width, i+1, err)
	}

	return b.String()
}
