package gen

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/mxkacsa/botgen/ast"
)

// scenarioOptions is the options.json section of a scenario archive.
type scenarioOptions struct {
	BotName             string                    `json:"botName"`
	UserDatabaseEnabled bool                      `json:"userDatabaseEnabled"`
	EnableLogging       bool                      `json:"enableLogging"`
	TemplateOverrides   map[string]string         `json:"templateOverrides"`
	Media               map[string]ast.MediaAsset `json:"media"`
	Groups              []ast.Group               `json:"groups"`
}

// TestScenarios generates every testdata/scenarios/*.txtar archive. Each
// non-empty line of the "want" section must appear in the program, each
// line of "absent" must not.
func TestScenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			require.NoError(t, err)

			sections := make(map[string][]byte, len(ar.Files))
			for _, f := range ar.Files {
				sections[f.Name] = f.Data
			}

			graph, err := ast.Decode(sections["graph.json"])
			require.NoError(t, err)

			var so scenarioOptions
			if data, ok := sections["options.json"]; ok {
				require.NoError(t, json.Unmarshal(data, &so))
			}
			out, err := Generate(graph, Options{
				BotName:             so.BotName,
				UserDatabaseEnabled: so.UserDatabaseEnabled,
				EnableLogging:       so.EnableLogging,
				TemplateOverrides:   so.TemplateOverrides,
				Media:               so.Media,
				Groups:              so.Groups,
			})
			require.NoError(t, err)
			assert.Equal(t, 1, strings.Count(out, TokenPlaceholder))

			for _, line := range lines(sections["want"]) {
				assert.Contains(t, out, line)
			}
			for _, line := range lines(sections["absent"]) {
				assert.NotContains(t, out, line)
			}
		})
	}
}

func lines(data []byte) []string {
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
			out = append(out, line)
		}
	}
	return out
}
