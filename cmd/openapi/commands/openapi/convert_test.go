package openapi

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oasref/openapi/cmd/openapi/commands/cmdutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOppositeFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cmdutil.FormatJSON, oppositeFormat("spec.yaml"))
	assert.Equal(t, cmdutil.FormatJSON, oppositeFormat("spec.yml"))
	assert.Equal(t, cmdutil.FormatYAML, oppositeFormat("spec.json"))
}

// The commands share their flag variables, so the command level tests run
// sequentially.
//
//nolint:paralleltest
func TestApply_Convert(t *testing.T) {
	root := &cobra.Command{Use: "openapi"}
	Apply(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})

	root.SetArgs([]string{"convert", "testdata/petstore.yaml"})
	require.NoError(t, root.ExecuteContext(t.Context()))
	assert.True(t, strings.HasPrefix(out.String(), "{\n"), "yaml input converts to json")
	assert.Contains(t, out.String(), `"$ref": "#/components/schemas/Pet"`, "references are not resolved")

	output := filepath.Join(t.TempDir(), "petstore.yaml")
	root.SetArgs([]string{"convert", "testdata/petstore.yaml", output})
	require.NoError(t, root.ExecuteContext(t.Context()))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "openapi: 3.0.3\n"), "the output extension selects yaml")

	root.SetArgs([]string{"convert", "--format", "xml", "testdata/petstore.yaml"})
	err = root.ExecuteContext(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "xml"`)
}
