package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxkacsa/botgen/parse"
)

const graphJSON = `{
  "nodes": [
    {"id": "start", "type": "start", "data": {"messageText": "Hi", "enableAutoTransition": true, "autoTransitionTo": "ban"}},
    {"id": "ban", "type": "ban_user", "data": {"reason": "spam"}}
  ],
  "connections": []
}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeGraph(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bot.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenerateCommand(t *testing.T) {
	graph := writeGraph(t, graphJSON)
	output := filepath.Join(t.TempDir(), "bot.py")

	out, err := run(t, "generate", graph, "-o", output, "--name", "CLI Bot")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated: "+output)

	src, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(src), `BOT_NAME = "CLI Bot"`)
	assert.Contains(t, string(src), `BOT_TOKEN = "YOUR_BOT_TOKEN_HERE"`)
}

func TestGenerateCommand_StdoutWithToken(t *testing.T) {
	graph := writeGraph(t, graphJSON)

	out, err := run(t, "generate", graph, "--stdout", "--token", "42:secret")
	require.NoError(t, err)
	assert.Contains(t, out, `BOT_TOKEN = "42:secret"`)
	assert.NotContains(t, out, "YOUR_BOT_TOKEN_HERE")
}

func TestGenerateCommand_ConfigFile(t *testing.T) {
	graph := writeGraph(t, graphJSON)
	cfgPath := filepath.Join(t.TempDir(), "botgen.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[bot]\nname = \"From Config\"\n[database]\nenabled = true\n"), 0o644))

	out, err := run(t, "--config", cfgPath, "generate", graph, "--stdout")
	require.NoError(t, err)
	assert.Contains(t, out, `BOT_NAME = "From Config"`)
	assert.Contains(t, out, "USER_DATABASE_ENABLED = True")
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", writeGraph(t, graphJSON))
	require.NoError(t, err)
	assert.Contains(t, out, "Validation passed: 2 nodes, 0 connections")

	dup := `{"nodes": [{"id": "a", "type": "message", "data": {}}, {"id": "a", "type": "message", "data": {}}], "connections": []}`
	_, err = run(t, "validate", writeGraph(t, dup))
	require.Error(t, err)
	assert.True(t, errors.Is(err, parse.ErrInvalidGraph))
}

func TestValidateCommand_WarningsAsErrors(t *testing.T) {
	orphan := `{"nodes": [{"id": "lost", "type": "message", "data": {"messageText": "?"}}], "connections": []}`

	_, err := run(t, "validate", writeGraph(t, orphan))
	require.NoError(t, err)

	_, err = run(t, "validate", "--warnings-as-errors", writeGraph(t, orphan))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 warnings")
}

func TestPreviewCommand(t *testing.T) {
	out, err := run(t, "preview", writeGraph(t, graphJSON))
	require.NoError(t, err)
	assert.Contains(t, out, `BOT_NAME = "Preview Bot"`)
}

func TestNodesCommand(t *testing.T) {
	out, err := run(t, "nodes")
	require.NoError(t, err)
	assert.Contains(t, out, "ban_user")
	assert.Contains(t, out, "multi_select")

	out, err = run(t, "nodes", "--messages")
	require.NoError(t, err)
	assert.Contains(t, out, "pin_message.success")
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "botgen.toml")

	out, err := run(t, "config", "init", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[bot]")

	_, err = run(t, "config", "init", "--path", path)
	require.Error(t, err)

	_, err = run(t, "config", "init", "--path", path, "--force")
	require.NoError(t, err)
}
