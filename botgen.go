// Package botgen compiles bot graphs drawn in the editor into runnable
// Python aiogram 3 programs.
//
// Quick start:
//
//	g, err := parse.NewParser().ParseFile("bot.json")
//	src, err := botgen.Generate(g, gen.Options{BotName: "Shop"})
//	src, err = botgen.SubstituteToken(src, os.Getenv("BOT_TOKEN"))
//
// Generation is pure: it performs no I/O and the same input always yields
// the same text.
package botgen

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/gen"
	"github.com/mxkacsa/botgen/parse"
	"github.com/mxkacsa/botgen/pyast"
)

// TokenPlaceholder is the credential literal in every generated program.
const TokenPlaceholder = gen.TokenPlaceholder

// ErrTokenPlaceholder is returned by SubstituteToken when the source does not
// carry the placeholder assignment exactly once.
var ErrTokenPlaceholder = errors.New("token placeholder assignment not found exactly once")

// Result is a generated program plus the lint findings of its graph.
type Result struct {
	Source   string
	Warnings []parse.Warning
}

// Generate compiles graph with opts. See gen.Generate.
func Generate(graph *ast.Graph, opts gen.Options) (string, error) {
	return gen.Generate(graph, opts)
}

// Preview compiles graph with placeholder options, for showing a sample of
// the program a template produces. The result is not meant to be run.
func Preview(graph *ast.Graph) (string, error) {
	return gen.Generate(graph, gen.PreviewOptions())
}

// GenerateFile parses, validates, lints and compiles a JSON or YAML graph
// file.
func GenerateFile(path string, opts gen.Options) (*Result, error) {
	g, err := parse.NewParser().ParseFile(path)
	if err != nil {
		return nil, err
	}
	return compile(g, opts)
}

// GenerateBytes is GenerateFile for an in-memory JSON graph.
func GenerateBytes(data []byte, source string, opts gen.Options) (*Result, error) {
	g, err := parse.NewParser().Parse(data, source)
	if err != nil {
		return nil, err
	}
	return compile(g, opts)
}

func compile(g *ast.Graph, opts gen.Options) (*Result, error) {
	src, err := gen.Generate(g, opts)
	if err != nil {
		return nil, errors.Wrap(err, "generate")
	}
	return &Result{Source: src, Warnings: parse.Lint(g)}, nil
}

// SubstituteToken replaces the placeholder in the top-level BOT_TOKEN
// assignment of src with token as a Python string literal. Only a whole
// line matches, so node texts that happen to equal the placeholder are left
// alone.
func SubstituteToken(src, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", errors.New("token is empty")
	}
	assign := tokenAssignment(TokenPlaceholder)
	lines := strings.Split(src, "\n")
	at, found := -1, 0
	for i, line := range lines {
		if strings.TrimSuffix(line, "\r") == assign {
			at = i
			found++
		}
	}
	if found != 1 {
		return "", errors.Wrapf(ErrTokenPlaceholder, "found %d", found)
	}
	lines[at] = tokenAssignment(token)
	return strings.Join(lines, "\n"), nil
}

func tokenAssignment(value string) string {
	return "BOT_TOKEN = " + pyast.Str(value)
}
