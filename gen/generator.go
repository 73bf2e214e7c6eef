// Package gen compiles a bot graph into the source of a Python aiogram 3
// program. Generation is deterministic: the same graph and options always
// produce byte-identical output.
package gen

import (
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/pyast"
)

// Generate compiles graph into a complete program. The program contains
// TokenPlaceholder exactly once, as the BOT_TOKEN value.
func Generate(graph *ast.Graph, opts Options) (string, error) {
	start := time.Now()
	ctx, frags, err := compile(graph, opts)
	if err != nil {
		return "", err
	}

	doc := []pyast.Stmt{
		headerSection(ctx),
		globalsSection(ctx),
		utilitySection(ctx),
		fragmentSection(frags),
		dispatchSection(ctx),
		groupSection(ctx),
		entrySection(ctx),
	}
	out := pyast.Print(doc...)

	ctx.log.Debug("generation complete",
		zap.Int("nodes", len(graph.Nodes)),
		zap.Int("fragments", len(frags)),
		zap.Int("bytes", len(out)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return out, nil
}

// Fragments returns the per-node definitions of graph in document order,
// without the fixed sections.
func Fragments(graph *ast.Graph, opts Options) ([]Fragment, error) {
	_, frags, err := compile(graph, opts)
	return frags, err
}

func compile(graph *ast.Graph, opts Options) (*GenerationContext, []Fragment, error) {
	if graph == nil {
		return nil, nil, errors.New("graph is nil")
	}
	ctx := newContext(graph, opts)
	s := newSynthesizer(ctx)

	var frags []Fragment
	seen := make(map[string]bool, len(graph.Nodes))
	for i := range graph.Nodes {
		n := &graph.Nodes[i]
		if n.ID != "" && seen[n.ID] {
			// The first node with an id owns its routine and dispatch entry.
			ctx.log.Debug("duplicate node id skipped", zap.String("node_id", n.ID))
			continue
		}
		seen[n.ID] = true

		nf, err := s.synthesize(n)
		if err != nil {
			return nil, nil, err
		}
		ctx.log.Debug("node synthesized",
			zap.String("node_id", n.ID),
			zap.String("node_type", string(n.Type)),
			zap.Int("fragments", len(nf)))
		frags = append(frags, nf...)
	}
	return ctx, frags, nil
}

// fragmentSection lays out the node definitions, two blank lines apart.
func fragmentSection(frags []Fragment) pyast.Block {
	if len(frags) == 0 {
		return section("Node handlers", pyast.Comment("The graph has no nodes."))
	}
	stmts := make([]pyast.Stmt, 0, 3*len(frags))
	for i, f := range frags {
		if i > 0 {
			stmts = append(stmts, pyast.Blank{}, pyast.Blank{})
		}
		stmts = append(stmts, f.Stmt)
	}
	return section("Node handlers", stmts...)
}
