package openapi

import (
	"context"
	"fmt"

	"github.com/oasref/openapi/cmd/openapi/commands/cmdutil"
	"github.com/oasref/openapi/openapi"
	"github.com/oasref/openapi/references"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file> [output-file]",
	Short: "Resolve the references of an OpenAPI document",
	Long: `Resolve the $ref references of an OpenAPI 3.0 document and write the result.

References to other files and URLs are fetched relative to the document.
With --mode all (the default) every reference is replaced by its target;
cyclic schemas stay references. With --mode inline only references to other
documents are replaced, producing a single self-contained file that keeps its
local references.

The output format follows --format, then the extension of the output file,
and defaults to YAML. Without an output file the document goes to stdout.`,
	Example: `  openapi resolve ./spec.yaml
  openapi resolve ./spec.yaml ./bundled.json
  openapi resolve --mode inline --format json ./spec.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runResolve,
}

var (
	resolveMode    string
	resolveFormat  string
	resolveLenient bool
)

func init() {
	resolveCmd.Flags().StringVar(&resolveMode, "mode", string(references.ResolveModeAll), "which references to replace (all, inline)")
	resolveCmd.Flags().StringVar(&resolveFormat, "format", "", "output format (yaml, json)")
	resolveCmd.Flags().BoolVar(&resolveLenient, "lenient", false, "keep unresolvable references instead of failing")
}

func runResolve(cmd *cobra.Command, args []string) error {
	format, err := cmdutil.ParseFormat(resolveFormat)
	if err != nil {
		return err
	}

	mode, err := parseResolveMode(resolveMode)
	if err != nil {
		return err
	}

	output := cmdutil.ArgAt(args, 1, "")
	p := &DocumentProcessor{
		InputFile:  args[0],
		OutputFile: output,
		Format:     cmdutil.OutputFormat(format, output, cmdutil.FormatYAML),
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
	}

	return resolveDocument(cmd.Context(), p, mode, resolveLenient)
}

func resolveDocument(ctx context.Context, p *DocumentProcessor, mode references.ResolveMode, lenient bool) error {
	doc, err := p.LoadDocument(ctx, openapi.WithResolveMode(mode), openapi.WithThrowException(!lenient))
	if err != nil {
		return err
	}

	p.ReportErrors(doc.Errors())

	return p.WriteDocument(doc)
}

func parseResolveMode(value string) (references.ResolveMode, error) {
	switch mode := references.ResolveMode(value); mode {
	case references.ResolveModeAll, references.ResolveModeInline:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported mode %q, expected all or inline", value)
	}
}
