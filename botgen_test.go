package botgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/gen"
	"github.com/mxkacsa/botgen/parse"
)

const sampleGraph = `{
  "version": "1.0.0",
  "nodes": [
    {"id": "start", "type": "start", "data": {"messageText": "Hello", "command": "/start"}},
    {"id": "orphan", "type": "message", "data": {"messageText": "Nobody links here"}}
  ],
  "connections": []
}`

func TestGenerate_MatchesGen(t *testing.T) {
	g, err := parse.NewParser().Parse([]byte(sampleGraph), "sample.json")
	require.NoError(t, err)

	opts := gen.Options{BotName: "Facade"}
	want, err := gen.Generate(g, opts)
	require.NoError(t, err)

	got, err := Generate(g, opts)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPreview(t *testing.T) {
	out, err := Preview(&ast.Graph{})
	require.NoError(t, err)
	assert.Contains(t, out, `BOT_NAME = "Preview Bot"`)
	assert.Equal(t, 1, strings.Count(out, TokenPlaceholder))
}

func TestGenerateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleGraph), 0o644))

	res, err := GenerateFile(path, gen.Options{BotName: "File Bot"})
	require.NoError(t, err)
	assert.Contains(t, res.Source, `BOT_NAME = "File Bot"`)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "orphan", res.Warnings[0].NodeID)
}

func TestGenerateBytes_InvalidGraph(t *testing.T) {
	_, err := GenerateBytes([]byte(`{"nodes": [{"id": "a", "type": "message", "data": {}}, {"id": "a", "type": "message", "data": {}}]}`), "dup.json", gen.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, parse.ErrInvalidGraph))
}

func TestSubstituteToken(t *testing.T) {
	src, err := Preview(&ast.Graph{})
	require.NoError(t, err)

	out, err := SubstituteToken(src, `123:ab"c`)
	require.NoError(t, err)
	assert.NotContains(t, out, TokenPlaceholder)
	assert.Contains(t, out, `BOT_TOKEN = "123:ab\"c"`)
}

func TestSubstituteToken_Errors(t *testing.T) {
	_, err := SubstituteToken("print(1)", "123")
	assert.True(t, errors.Is(err, ErrTokenPlaceholder))

	twice := `BOT_TOKEN = "YOUR_BOT_TOKEN_HERE"` + "\n" + `BOT_TOKEN = "YOUR_BOT_TOKEN_HERE"`
	_, err = SubstituteToken(twice, "123")
	assert.True(t, errors.Is(err, ErrTokenPlaceholder))

	_, err = SubstituteToken(`x = "YOUR_BOT_TOKEN_HERE"`, "123")
	assert.True(t, errors.Is(err, ErrTokenPlaceholder))

	_, err = SubstituteToken(`BOT_TOKEN = "YOUR_BOT_TOKEN_HERE"`, "  ")
	assert.Error(t, err)
}

func TestSubstituteToken_NodeTextEqualsPlaceholder(t *testing.T) {
	g := &ast.Graph{Nodes: []ast.Node{
		ast.MustNode("start", ast.NodeStart, &ast.StartData{
			MessageBase: ast.MessageBase{MessageText: TokenPlaceholder},
		}),
	}}
	src, err := Preview(g)
	require.NoError(t, err)
	require.Greater(t, strings.Count(src, `"YOUR_BOT_TOKEN_HERE"`), 1)

	out, err := SubstituteToken(src, "42:secret")
	require.NoError(t, err)
	assert.Contains(t, out, "BOT_TOKEN = \"42:secret\"\n")
	assert.Equal(t, strings.Count(src, `"YOUR_BOT_TOKEN_HERE"`)-1, strings.Count(out, `"YOUR_BOT_TOKEN_HERE"`))
}
