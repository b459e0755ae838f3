package overlay

import (
	"fmt"
	"io"

	overlayPkg "github.com/oasref/openapi/overlay"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <overlay>...",
	Short: "Check that overlays follow the overlay format",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateOverlays(cmd.OutOrStdout(), args)
	},
}

func validateOverlays(w io.Writer, files []string) error {
	invalid := 0

	for _, file := range files {
		o, err := overlayPkg.Parse(file)
		if err != nil {
			fmt.Fprintf(w, "❌ Overlay file %q can not be read: %v\n", file, err)
			invalid++
			continue
		}

		errs := o.Validate()
		if len(errs) == 0 {
			fmt.Fprintf(w, "✅ Overlay file %q is valid.\n", file)
			continue
		}

		invalid++
		fmt.Fprintf(w, "❌ Overlay file %q failed validation:\n", file)
		for i, err := range errs {
			fmt.Fprintf(w, "%d. %s\n", i+1, err)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d overlays are invalid", invalid, len(files))
	}

	return nil
}
