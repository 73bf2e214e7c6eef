package gen

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/pyast"
)

// FragmentKind orders the fragments of one node in the document.
type FragmentKind int

const (
	// FragmentPrimary is the node's canonical routine node_<id>(ctx).
	FragmentPrimary FragmentKind = iota
	// FragmentTrigger registers a callback, command or keyboard handler.
	FragmentTrigger
	// FragmentSynonym registers a text handler for one synonym.
	FragmentSynonym
	// FragmentConditional is the node's conditional message chain.
	FragmentConditional
)

func (k FragmentKind) String() string {
	switch k {
	case FragmentPrimary:
		return "primary"
	case FragmentTrigger:
		return "trigger"
	case FragmentSynonym:
		return "synonym"
	case FragmentConditional:
		return "conditional"
	}
	return "unknown"
}

// Fragment is one self-contained top level definition of the program.
type Fragment struct {
	NodeID string
	Kind   FragmentKind
	// Name is the top level function the fragment defines.
	Name string
	Stmt pyast.Stmt
}

// synthesizer turns one node at a time into fragments. It implements
// ast.Visitor; a node kind without a Visit method here does not build.
type synthesizer struct {
	ctx   *GenerationContext
	frags []Fragment
}

var _ ast.Visitor = (*synthesizer)(nil)

func newSynthesizer(ctx *GenerationContext) *synthesizer {
	return &synthesizer{ctx: ctx}
}

// synthesize returns the fragments of n in document order.
func (s *synthesizer) synthesize(n *ast.Node) ([]Fragment, error) {
	if n.ID == "" {
		return nil, errors.Wrapf(ErrInvalidNode, "%s node without id", n.Type)
	}
	if n.Data == nil {
		return nil, errors.Wrapf(ErrInvalidNode, "node %q has no %s data", n.ID, n.Type)
	}

	s.frags = nil
	if err := n.Data.Accept(n, s); err != nil {
		return nil, errors.Wrapf(err, "synthesize node %q (%s)", n.ID, n.Type)
	}

	frags := s.frags
	s.frags = nil
	sort.SliceStable(frags, func(i, j int) bool { return frags[i].Kind < frags[j].Kind })
	return frags, nil
}

func (s *synthesizer) add(n *ast.Node, kind FragmentKind, def pyast.Def) {
	s.frags = append(s.frags, Fragment{NodeID: n.ID, Kind: kind, Name: def.Name, Stmt: def})
}

// routine adds the canonical routine of n.
func (s *synthesizer) routine(n *ast.Node, body []pyast.Stmt) {
	s.add(n, FragmentPrimary, pyast.Def{
		Name:   s.ctx.NodeFunc(n.ID),
		Params: []string{"ctx"},
		Async:  true,
		Doc:    string(n.Type) + " node " + n.ID,
		Body:   body,
	})
}
