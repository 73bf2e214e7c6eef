package gen

import (
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/internal/ident"
	"github.com/mxkacsa/botgen/pyast"
)

// GenerationContext is the aggregate every synthesizer reads: the options,
// the whole graph and the identifier allocators of the current document.
type GenerationContext struct {
	BotName             string
	Groups              []ast.Group
	UserDatabaseEnabled bool
	ProjectID           *int64
	EnableLogging       bool

	Nodes []ast.Node
	// Connections includes the synthesized auto-transition edges.
	Connections []ast.Connection
	Media       map[string]ast.MediaAsset
	NodeIDs     map[string]bool

	texts     texts
	strict    bool
	log       *zap.Logger
	stems     *ident.Allocator
	funcs     *ident.Allocator
	nodeFuncs map[string]string
	// skipTargets holds the nodes some inline button reaches while
	// dropping the user's pending input.
	skipTargets map[string]bool
}

func newContext(graph *ast.Graph, opts Options) *GenerationContext {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	c := &GenerationContext{
		BotName:             opts.BotName,
		Groups:              opts.Groups,
		UserDatabaseEnabled: opts.UserDatabaseEnabled,
		ProjectID:           opts.ProjectID,
		EnableLogging:       opts.EnableLogging,
		Nodes:               graph.Nodes,
		Connections:         graph.WithAutoConnections(),
		Media:               opts.Media,
		NodeIDs:             graph.NodeIDs(),
		texts:               texts{overrides: opts.TemplateOverrides},
		strict:              opts.StrictTargets,
		log:                 log,
		stems:               ident.NewAllocator(),
		funcs:               ident.NewAllocator(runtimeNames...),
		nodeFuncs:           make(map[string]string, len(graph.Nodes)),
	}
	// Node routines are allocated up front, in input order, so forward
	// references resolve to the same names the definitions get.
	for i := range graph.Nodes {
		id := graph.Nodes[i].ID
		if _, done := c.nodeFuncs[id]; done {
			continue
		}
		c.nodeFuncs[id] = c.funcs.Unique("node_" + c.stems.Node(id))
	}
	c.skipTargets = c.collectSkipTargets()
	return c
}

func (c *GenerationContext) collectSkipTargets() map[string]bool {
	out := make(map[string]bool)
	mark := func(kind ast.KeyboardType, buttons []ast.Button) {
		if kind != ast.KeyboardInline {
			return
		}
		for _, b := range buttons {
			if !b.SkipDataCollection {
				continue
			}
			switch b.Action {
			case ast.ActionGoto:
				if c.NodeIDs[b.Target] {
					out[b.Target] = true
				}
			case ast.ActionCommand:
				if target := c.commandNode(b.Target); target != nil {
					out[target.ID] = true
				}
			}
		}
	}
	for i := range c.Nodes {
		base := ast.MessageBaseOf(&c.Nodes[i])
		if base == nil {
			continue
		}
		mark(base.KeyboardType, base.Buttons)
		for _, m := range base.ConditionalMessages {
			mark(m.KeyboardType, m.Buttons)
		}
	}
	return out
}

// Stem returns the sanitized, collision free identifier stem of a node.
func (c *GenerationContext) Stem(nodeID string) string {
	return c.stems.Node(nodeID)
}

// NodeFunc returns the name of a node's canonical routine.
func (c *GenerationContext) NodeFunc(nodeID string) string {
	if name, ok := c.nodeFuncs[nodeID]; ok {
		return name
	}
	name := c.funcs.Unique("node_" + c.stems.Node(nodeID))
	c.nodeFuncs[nodeID] = name
	return name
}

// Func allocates a unique top level function name.
func (c *GenerationContext) Func(base string) string {
	return c.funcs.Unique(base)
}

// Text returns nodeText, or the override or default for key.
func (c *GenerationContext) Text(nodeText, key string) string {
	return c.texts.text(nodeText, key)
}

// Message returns the override or default for key.
func (c *GenerationContext) Message(key string) string {
	return c.texts.get(key)
}

// HasNode reports whether id names a node of the graph.
func (c *GenerationContext) HasNode(id string) bool {
	return c.NodeIDs[id]
}

// FindNode returns the node with the given id, or nil.
func (c *GenerationContext) FindNode(id string) *ast.Node {
	for i := range c.Nodes {
		if c.Nodes[i].ID == id {
			return &c.Nodes[i]
		}
	}
	return nil
}

// checkTarget validates a transition target named by node from. It returns
// false for an empty or dangling target; a dangling target is an error in
// strict mode.
func (c *GenerationContext) checkTarget(from *ast.Node, target, field string) (bool, error) {
	if target == "" {
		return false, nil
	}
	if c.HasNode(target) {
		return true, nil
	}
	c.log.Debug("dangling transition target",
		zap.String("node_id", from.ID),
		zap.String("field", field),
		zap.String("target", target))
	if c.strict {
		return false, errors.WithHint(
			errors.Wrapf(ErrUnknownTarget, "node %q: %s %q", from.ID, field, target),
			"check the target node id or run without strict targets",
		)
	}
	return false, nil
}

// nextTarget returns the explicit target, or the first drawn edge leaving
// the node when no target is configured.
func (c *GenerationContext) nextTarget(n *ast.Node, explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, conn := range ast.Outgoing(c.Connections, n.ID) {
		if !conn.IsAutoGenerated && conn.Target != "" {
			return conn.Target
		}
	}
	return ""
}

// commandNode returns the start or command node bound to a slash command.
func (c *GenerationContext) commandNode(command string) *ast.Node {
	want := strings.TrimPrefix(strings.TrimSpace(command), "/")
	if want == "" {
		return nil
	}
	for i := range c.Nodes {
		n := &c.Nodes[i]
		var cmd string
		switch d := n.Data.(type) {
		case *ast.StartData:
			cmd = d.Command
			if cmd == "" {
				cmd = "start"
			}
		case *ast.CommandData:
			cmd = d.Command
		default:
			continue
		}
		if strings.EqualFold(strings.TrimPrefix(cmd, "/"), want) {
			return n
		}
	}
	return nil
}

// missingTarget is the runtime warning emitted in place of a transition to a
// node that does not exist.
func missingTarget(from, target string) pyast.Stmt {
	return pyast.Line(pyast.Call("logger.warning",
		pyast.Str("Node %s: transition target %s does not exist"),
		pyast.Str(from), pyast.Str(target)))
}
