package openapi

import (
	"context"
	"fmt"
	"io"

	"github.com/oasref/openapi/openapi"
	"github.com/oasref/openapi/query"
	"github.com/oasref/openapi/yml"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <file> <expression>",
	Short: "Query an OpenAPI document with JSONPath",
	Long: `Evaluate a JSONPath expression against an OpenAPI document and print the
matching values as a YAML sequence.

References are resolved first, so queries can follow them. Expressions use
RFC 9535 syntax with the ~ property name extension; --legacy selects the
older dialect that also understands filters such as $..[?(@.type)].`,
	Example: `  openapi query ./spec.yaml '$.paths.*.get.operationId'
  openapi query --no-resolve ./spec.yaml '$.components.schemas.*~'`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

var (
	queryLegacy    bool
	queryNoResolve bool
)

func init() {
	queryCmd.Flags().BoolVar(&queryLegacy, "legacy", false, "use the legacy JSONPath dialect")
	queryCmd.Flags().BoolVar(&queryNoResolve, "no-resolve", false, "query the document without resolving references")
}

func runQuery(cmd *cobra.Command, args []string) error {
	dialect := query.DialectRFC9535
	if queryLegacy {
		dialect = query.DialectLegacy
	}

	return queryDocument(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], dialect, !queryNoResolve)
}

func queryDocument(ctx context.Context, w io.Writer, file, expression string, dialect query.Dialect, resolve bool) error {
	// Fail on a bad expression before the document is read.
	if _, err := query.NewPath(expression, dialect); err != nil {
		return err
	}

	var opts []openapi.Option
	if !resolve {
		opts = append(opts, openapi.WithoutReferenceResolution())
	}

	p := &DocumentProcessor{InputFile: file, Stderr: io.Discard}
	doc, err := p.LoadDocument(ctx, opts...)
	if err != nil {
		return err
	}

	results, err := query.Run(doc, expression, dialect)
	if err != nil {
		return err
	}

	data, err := yml.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	_, err = w.Write(data)
	return err
}
