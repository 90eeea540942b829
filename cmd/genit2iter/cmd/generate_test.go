package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const singleYieldClass = `
kind: root
declarations:
  - kind: class
    name: {kind: identifier, name: Counter}
    body:
      - kind: function
        name: {kind: identifier, name: generate}
        returns:
          - kind: parameter
            type: {kind: identifier, name: int}
        statements:
          - kind: exprStmt
            expr:
              kind: call
              function: {kind: identifier, name: yield}
              arguments:
                - {kind: int, value: "1"}
`

func resetGenerateFlags() {
	outputFile = ""
	configFile = ""
	minTargetVersion = ""
	generateVerbose = false
}

func TestRunGenerateWritesToOutputFile(t *testing.T) {
	resetGenerateFlags()
	dir := t.TempDir()
	in := filepath.Join(dir, "class.yaml")
	out := filepath.Join(dir, "class_iter.txt")
	require.NoError(t, os.WriteFile(in, []byte(singleYieldClass), 0o644))

	outputFile = out
	err := runGenerate(generateCmd, []string{in})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "class Counter")
	require.Contains(t, string(data), "hasNext")
}

func TestRunGenerateRejectsMissingInputFile(t *testing.T) {
	resetGenerateFlags()
	err := runGenerate(generateCmd, []string{filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}

func TestRunGenerateLoadsConfigFile(t *testing.T) {
	resetGenerateFlags()
	dir := t.TempDir()
	in := filepath.Join(dir, "class.yaml")
	cfgPath := filepath.Join(dir, "config.yaml")
	out := filepath.Join(dir, "class_iter.txt")
	require.NoError(t, os.WriteFile(in, []byte(singleYieldClass), 0o644))
	require.NoError(t, os.WriteFile(cfgPath, []byte("indentWidth: 4\nhasNextField: ready\n"), 0o644))

	outputFile = out
	configFile = cfgPath
	err := runGenerate(generateCmd, []string{in})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "ready")
}

func TestRunGenerateRejectsUnreadableConfigFile(t *testing.T) {
	resetGenerateFlags()
	dir := t.TempDir()
	in := filepath.Join(dir, "class.yaml")
	require.NoError(t, os.WriteFile(in, []byte(singleYieldClass), 0o644))

	configFile = filepath.Join(dir, "missing-config.yaml")
	err := runGenerate(generateCmd, []string{in})
	require.Error(t, err)
}
