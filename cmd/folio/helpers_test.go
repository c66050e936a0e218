package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/folio-builder/internal/importer"
	"github.com/jonathan/folio-builder/internal/types"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in-process with flags reset to their
// defaults, returning everything written to stdout and stderr.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// writeSample exports a sample document of kind to a temp file.
func writeSample(t *testing.T, kind types.Kind) string {
	t.Helper()
	data, err := importer.Export(types.SampleDocument(kind, time.Now().UTC()))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), string(kind)+".json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}
