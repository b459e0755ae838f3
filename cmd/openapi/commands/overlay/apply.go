package overlay

import (
	"context"
	"fmt"
	"io"

	"github.com/oasref/openapi/cmd/openapi/commands/cmdutil"
	openapiCmd "github.com/oasref/openapi/cmd/openapi/commands/openapi"
	"github.com/oasref/openapi/openapi"
	overlayPkg "github.com/oasref/openapi/overlay"
	"github.com/spf13/cobra"
)

var (
	applyOverlayFlags []string
	applySchemaFlag   string
	applyOutFlag      string
	applyFormatFlag   string
	applyStrictFlag   bool
)

var applyCmd = &cobra.Command{
	Use:   "apply [<overlay> [<spec>]]",
	Short: "Apply overlays to an OpenAPI document",
	Long: `Apply one or more overlays in order to an OpenAPI document.

When no document is given, the document named by the extends URL of the first
overlay is used. A relative extends is resolved against the overlay file.
References are left as they are.`,
	Example: `  openapi overlay apply overlay.yaml spec.yaml
  openapi overlay apply --overlay base.yaml --overlay env.yaml --schema spec.yaml --out out.yaml
  openapi overlay apply overlay.yaml`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringSliceVar(&applyOverlayFlags, "overlay", nil, "path to an overlay file (can be repeated)")
	applyCmd.Flags().StringVar(&applySchemaFlag, "schema", "", "path or URL of the OpenAPI document")
	applyCmd.Flags().StringVarP(&applyOutFlag, "out", "o", "", "output file (defaults to stdout)")
	applyCmd.Flags().StringVar(&applyFormatFlag, "format", "", "output format (yaml, json)")
	applyCmd.Flags().BoolVar(&applyStrictFlag, "strict", false, "fail when a target matches nothing")
}

type applyOptions struct {
	overlays []string
	schema   string
	out      string
	format   cmdutil.Format
	strict   bool
}

func runApply(cmd *cobra.Command, args []string) error {
	format, err := cmdutil.ParseFormat(applyFormatFlag)
	if err != nil {
		return err
	}

	opts := applyOptions{
		overlays: applyOverlayFlags,
		schema:   applySchemaFlag,
		out:      applyOutFlag,
		format:   format,
		strict:   applyStrictFlag,
	}
	if len(opts.overlays) == 0 && len(args) > 0 {
		opts.overlays = []string{args[0]}
	}
	if opts.schema == "" {
		opts.schema = cmdutil.ArgAt(args, 1, "")
	}

	return applyOverlays(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
}

func applyOverlays(ctx context.Context, stdout, stderr io.Writer, opts applyOptions) error {
	if len(opts.overlays) == 0 {
		return fmt.Errorf("at least one overlay file is required")
	}

	overlays := make([]*overlayPkg.Overlay, 0, len(opts.overlays))
	for _, file := range opts.overlays {
		o, err := overlayPkg.Parse(file)
		if err != nil {
			return err
		}
		if errs := o.Validate(); len(errs) > 0 {
			return fmt.Errorf("overlay %q is invalid: %w", file, errs[0])
		}
		overlays = append(overlays, o)
	}

	schema := opts.schema
	if schema == "" {
		location, err := overlays[0].ExtendsLocation(opts.overlays[0])
		if err != nil {
			return err
		}
		schema = location
	}

	p := &openapiCmd.DocumentProcessor{
		InputFile:  schema,
		OutputFile: opts.out,
		Format:     cmdutil.OutputFormat(opts.format, opts.out, cmdutil.FormatOf(schema)),
		Stdout:     stdout,
		Stderr:     stderr,
	}

	doc, err := p.LoadDocument(ctx, openapi.WithoutReferenceResolution())
	if err != nil {
		return err
	}

	for i, o := range overlays {
		var warnings []string
		doc, warnings, err = o.ApplyToDocument(doc, opts.strict)
		if err != nil {
			return fmt.Errorf("failed to apply overlay %q: %w", opts.overlays[i], err)
		}
		for _, warning := range warnings {
			fmt.Fprintf(stderr, "⚠️  %s: %s\n", opts.overlays[i], warning)
		}
	}

	return p.WriteDocument(doc)
}
