package openapi

import (
	"github.com/oasref/openapi/cmd/openapi/commands/cmdutil"
	"github.com/oasref/openapi/openapi"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file> [output-file]",
	Short: "Convert an OpenAPI document between YAML and JSON",
	Long: `Convert an OpenAPI 3.0 document between YAML and JSON without resolving
its references.

By default a JSON document becomes YAML and anything else becomes JSON. An
explicit --format or the extension of the output file takes precedence.`,
	Example: `  openapi convert ./spec.yaml ./spec.json
  openapi convert --format yaml ./spec.json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

var convertFormat string

func init() {
	convertCmd.Flags().StringVar(&convertFormat, "format", "", "output format (yaml, json)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	format, err := cmdutil.ParseFormat(convertFormat)
	if err != nil {
		return err
	}

	input := args[0]
	output := cmdutil.ArgAt(args, 1, "")

	p := &DocumentProcessor{
		InputFile:  input,
		OutputFile: output,
		Format:     cmdutil.OutputFormat(format, output, oppositeFormat(input)),
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
	}

	doc, err := p.LoadDocument(cmd.Context(), openapi.WithoutReferenceResolution())
	if err != nil {
		return err
	}

	return p.WriteDocument(doc)
}

func oppositeFormat(input string) cmdutil.Format {
	if cmdutil.FormatOf(input) == cmdutil.FormatJSON {
		return cmdutil.FormatYAML
	}
	return cmdutil.FormatJSON
}
