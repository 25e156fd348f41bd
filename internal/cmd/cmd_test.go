package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag of c and its subcommands to its default so
// that consecutive executions in one test binary do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs gridctl with args against a config file in a temp dir.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(bytes.NewReader(nil))

	hasConfig := false
	for _, a := range args {
		if a == "--config" || a == "-c" {
			hasConfig = true
		}
	}
	if !hasConfig {
		args = append(args, "--config", filepath.Join(t.TempDir(), "config.json"))
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLayoutDemoTwoColumns(t *testing.T) {
	out, err := execute(t, "layout", "--width", "640")
	require.NoError(t, err)

	assert.Contains(t, out, "items=21 columns=2 column_width=320 cell_width=318")
	assert.Contains(t, out, "content=640x5500")
	assert.Contains(t, out, "size_category=large inset_mode=legacy generation=1")
}

func TestLayoutAccessibilityCategory(t *testing.T) {
	out, err := execute(t, "layout", "--width", "1280", "--size-category", "accessibility-extra-extra-extra-large")
	require.NoError(t, err)
	assert.Contains(t, out, "columns=2 column_width=640")
}

func TestLayoutRejectsUnknownValues(t *testing.T) {
	_, err := execute(t, "layout", "--size-category", "gigantic")
	assert.ErrorContains(t, err, "unknown size category")

	_, err = execute(t, "layout", "--inset-mode", "sideways")
	assert.ErrorContains(t, err, "unknown inset mode")
}

func TestLayoutImportsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	require.NoError(t, os.WriteFile(path, []byte("title,subtitle\nSoup,10 mins\nStew,2 hours\nPie,1 hour\n"), 0644))

	out, err := execute(t, "layout", "--width", "640", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "items=3 columns=2")
	assert.Contains(t, out, "content=640x1000")
	assert.Contains(t, out, "Stew")
}

func TestLayoutMissingCatalog(t *testing.T) {
	_, err := execute(t, "layout", "--catalog", filepath.Join(t.TempDir(), "missing.gridcat"))
	assert.Error(t, err)
}

func TestSettleDemo(t *testing.T) {
	out, err := execute(t, "settle", "--width", "640", "--verbose")
	require.NoError(t, err)

	assert.Contains(t, out, "item=0 refreshed=11")
	assert.Contains(t, out, "item=20 refreshed=1")
	assert.Contains(t, out, "generation=1 corrections=21")
	assert.Contains(t, out, "content_height=5500->")
}

func TestExportFormats(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []string{"pdf", "labels", "xlsx", "dxf"} {
		path := filepath.Join(dir, "layout."+format)
		out, err := execute(t, "export", "--format", format, "--out", path)
		require.NoError(t, err, format)
		assert.Contains(t, out, path)

		info, err := os.Stat(path)
		require.NoError(t, err, format)
		assert.Greater(t, info.Size(), int64(0), format)
	}
}

func TestExportRejectsBadArguments(t *testing.T) {
	_, err := execute(t, "export", "--format", "svg", "--out", filepath.Join(t.TempDir(), "x.svg"))
	assert.ErrorContains(t, err, "unknown export format")

	_, err = execute(t, "export", "--format", "pdf")
	assert.ErrorContains(t, err, "--out is required")
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "size_category")
	assert.NotContains(t, string(data), "{", "written as TOML, not JSON")

	out, err = execute(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"inset_mode": "legacy"`)

	_, err = execute(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestConfigPath(t *testing.T) {
	out, err := execute(t, "config", "path", "--config", "/tmp/gridflow.toml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/gridflow.toml\n", out)
}

func TestFormatPoints(t *testing.T) {
	assert.Equal(t, "318", formatPoints(318))
	assert.Equal(t, "212.5", formatPoints(212.5))
	assert.Equal(t, "0", formatPoints(0))
}
