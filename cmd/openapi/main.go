package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/oasref/openapi/cmd/openapi/commands/cmdutil"
	openapiCmd "github.com/oasref/openapi/cmd/openapi/commands/openapi"
	overlayCmd "github.com/oasref/openapi/cmd/openapi/commands/overlay"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// getVersionInfo prefers values set through ldflags and falls back to the
// build info of the binary.
func getVersionInfo() (string, string, string) {
	if version != "dev" || commit != "none" || date != "unknown" {
		return version, commit, date
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return version, commit, date
	}

	moduleVersion := version
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		moduleVersion = buildInfo.Main.Version
	}

	vcsCommit := commit
	vcsTime := date
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			vcsCommit = setting.Value[:min(7, len(setting.Value))]
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	return moduleVersion, vcsCommit, vcsTime
}

var rootCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Read, resolve and check OpenAPI 3.0 documents",
	Long: `A toolkit for OpenAPI 3.0 documents spread over several files.

Documents are read from YAML or JSON files and URLs, and their $ref
references are resolved across documents, including cyclic schemas.

- validate reports broken references and violations of OpenAPI 3.0
- resolve writes a document with its references replaced
- convert switches a document between YAML and JSON
- query evaluates JSONPath expressions against a document
- overlay applies OpenAPI Overlays to a document`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return cmdutil.SetupLogger(cmd)
	},
}

func init() {
	currentVersion, currentCommit, currentDate := getVersionInfo()
	rootCmd.Version = currentVersion

	var versionTemplate strings.Builder
	versionTemplate.WriteString(`{{printf "%s" .Version}}`)
	if currentCommit != "none" && currentCommit != "" {
		versionTemplate.WriteString("\nBuild: " + currentCommit)
	}
	if currentDate != "unknown" && currentDate != "" {
		versionTemplate.WriteString("\nBuilt: " + currentDate)
	}
	versionTemplate.WriteString("\n")
	rootCmd.SetVersionTemplate(versionTemplate.String())

	cmdutil.AddLoggerFlags(rootCmd)
	openapiCmd.Apply(rootCmd)
	overlayCmd.Apply(rootCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
