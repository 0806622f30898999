package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gridview/grid"
	"gridview/pack"
)

func TestParseOptionsDefaults(t *testing.T) {
	opts, args, err := parseOptions([]string{"a.png", "b.BIN"})
	require.NoError(t, err)
	require.Equal(t, []string{"a.png", "b.BIN"}, args)
	require.False(t, opts.folders)
	require.False(t, opts.blocks)
	require.Equal(t, 1, opts.threads)
	require.Equal(t, 1, opts.blockScale)
	require.Equal(t, grid.Segment, opts.variant)
	require.Equal(t, "new", opts.out)
}

func TestParseOptionsFlags(t *testing.T) {
	opts, args, err := parseOptions([]string{
		"--folders", "--blocks", "--threads", "4", "--variant", "header",
		"--out", "dest", "--block-scale=8", "imgs", "bins",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"imgs", "bins"}, args)
	require.True(t, opts.folders)
	require.True(t, opts.blocks)
	require.Equal(t, 4, opts.threads)
	require.Equal(t, 8, opts.blockScale)
	require.Equal(t, grid.Header, opts.variant)
	require.Equal(t, "dest", opts.out)
}

func TestParseOptionsInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"only-one"},
		{"a", "b", "c"},
		{"--threads", "0", "a", "b"},
		{"--block-scale", "0", "a", "b"},
		{"--variant", "bogus", "a", "b"},
		{"--nope", "a", "b"},
	} {
		_, _, err := parseOptions(args)
		require.Error(t, err, "%v", args)
	}
}

func TestRunSingle(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "S010PACK.png")
	bin := filepath.Join(dir, "S010TMPK.BIN")
	writeTestImage(t, img)
	require.NoError(t, os.WriteFile(bin, pack.Build([][]byte{testGridPack(2)}), 0o644))
	out := filepath.Join(dir, "out")

	require.NoError(t, run([]string{"--out", out, img, bin}))
	for _, f := range []string{"0.png", "original.png"} {
		_, err := os.Stat(filepath.Join(out, "S010PACK", f))
		require.NoError(t, err, f)
	}
}
