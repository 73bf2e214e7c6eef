package parse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxkacsa/botgen/ast"
)

// ============================================================================
// Parser Tests
// ============================================================================

func TestParseFile_JSON(t *testing.T) {
	g, err := NewParser().ParseFile(filepath.Join("testdata", "shop.json"))
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", g.Version)
	require.Len(t, g.Nodes, 2)
	ban, ok := g.Nodes[1].Data.(*ast.BanUserData)
	require.True(t, ok)
	assert.Equal(t, "спам", ban.Reason)
}

func TestParseFile_YAML(t *testing.T) {
	g, err := NewParser().ParseFile(filepath.Join("testdata", "shop.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "2.1.0", g.Version)
	require.Len(t, g.Nodes, 3)

	start, ok := g.Nodes[0].Data.(*ast.StartData)
	require.True(t, ok)
	assert.True(t, start.ShowInMenu)
	require.Len(t, start.Buttons, 1)
	assert.Equal(t, "catalog", start.Buttons[0].Target)

	photo, ok := g.Nodes[1].Data.(*ast.MediaData)
	require.True(t, ok)
	assert.Equal(t, ast.NodePhoto, photo.Kind)
	assert.Equal(t, "https://example.com/catalog.png", photo.Source())

	pin, ok := g.Nodes[2].Data.(*ast.PinMessageData)
	require.True(t, ok)
	require.NotNil(t, pin.Synonyms)
	assert.Equal(t, []string{"закреп"}, *pin.Synonyms)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := NewParser().ParseFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestParse_SyntaxErrorPosition(t *testing.T) {
	src := "{\n  \"nodes\": []\n  \"connections\": []\n}"

	_, err := NewParser().Parse([]byte(src), "bad.json")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "bad.json", perr.Source)
	assert.GreaterOrEqual(t, perr.Line, 2)
	assert.Positive(t, perr.Column)
}

func TestParse_EmptyDocument(t *testing.T) {
	_, err := NewParser().Parse([]byte("  \n"), "empty.json")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Error(), "empty document")

	_, err = NewParser().ParseYAML([]byte(""), "empty.yaml")
	require.True(t, errors.As(err, &perr))
}

func TestParse_UnknownNodeType(t *testing.T) {
	src := `{"nodes": [{"id": "x", "type": "ban_usr", "data": {}}], "connections": []}`

	_, err := NewParser().Parse([]byte(src), "graph.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ast.ErrUnknownNodeType))
	assert.Contains(t, errors.FlattenHints(err), "ban_user")
}

func TestParse_ValidationFailure(t *testing.T) {
	src := `{"nodes": [
		{"id": "a", "type": "message", "data": {"enableAutoTransition": true, "autoTransitionTo": "ghost"}},
		{"id": "a", "type": "message", "data": {}}
	], "connections": [{"id": "c", "source": "a", "target": "nowhere"}]}`

	_, err := NewParser().Parse([]byte(src), "graph.json")
	require.Error(t, err)

	var verrs *ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs.Errors, 3)
	assert.True(t, errors.Is(err, ErrInvalidGraph))
	assert.Contains(t, err.Error(), "3 validation errors")
	assert.Contains(t, err.Error(), "already used by nodes[0]")
	assert.Contains(t, err.Error(), "target 'nowhere' does not exist")
	assert.Contains(t, err.Error(), "node 'a'.autoTransitionTo: target 'ghost' does not exist")
}

func TestParser_AddValidator(t *testing.T) {
	p := NewParser()
	p.AddValidator(validatorFunc(func(g *ast.Graph) error {
		if len(g.Nodes) == 0 {
			return errors.New("graph has no nodes")
		}
		return nil
	}))

	_, err := p.Parse([]byte(`{"nodes": [], "connections": []}`), "empty.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graph has no nodes")
}

func TestParseFile_ExtensionSelectsFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.YML")
	require.NoError(t, os.WriteFile(path, []byte("nodes:\n  - id: m\n    type: message\nconnections: []\n"), 0o644))

	g, err := NewParser().ParseFile(path)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 1)
	_, ok := g.Nodes[0].Data.(*ast.MessageData)
	assert.True(t, ok)
}

type validatorFunc func(g *ast.Graph) error

func (f validatorFunc) Validate(g *ast.Graph) error { return f(g) }
