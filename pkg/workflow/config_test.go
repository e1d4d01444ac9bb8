package workflow_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravi-parthasarathy/flowgen/pkg/workflow"
)

func writeOptions(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flowgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOptions(t *testing.T) {
	path := writeOptions(t, `
tool_aliases:
  FancyDedup: unique
  LegacyReader: input
strict: true
`)
	opts, err := workflow.LoadOptions(path)
	require.NoError(t, err)
	assert.True(t, opts.Strict)
	assert.Equal(t, "unique", opts.ToolAliases["FancyDedup"])
}

func TestLoadOptions_UnknownKind(t *testing.T) {
	path := writeOptions(t, "tool_aliases:\n  Widget: frobnicate\n")
	_, err := workflow.LoadOptions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestLoadOptions_MissingFile(t *testing.T) {
	_, err := workflow.LoadOptions(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
