package gen

import (
	"fmt"
	"sort"

	"github.com/mxkacsa/botgen/ast"
)

// ============================================================================
// Node Registry
// ============================================================================
//
// Every node kind registers a definition from an init() in its nodes_*.go
// file. The definition carries the kind's metadata and defaults; synthesis
// itself dispatches through ast.Visitor so a kind without a synthesizer does
// not build.

// NodeDefinition describes one node kind.
type NodeDefinition struct {
	Type        ast.NodeType
	Category    string
	Description string

	// DefaultSynonyms are used when a node leaves its synonym list unset.
	DefaultSynonyms []string

	// Command is the slash command bound to every node of the kind, without
	// the leading slash. Empty means the kind has no command trigger.
	Command string

	// GroupOnly is the default of the kind's groupOnly flag.
	GroupOnly bool
}

// Categories in display order.
const (
	CategoryMessages = "Messages"
	CategoryContent  = "Content"
	CategoryUsers    = "Moderation"
	CategoryAdmin    = "Administration"
	CategoryFlow     = "Flow"
)

var categoryOrder = map[string]int{
	CategoryMessages: 0,
	CategoryContent:  1,
	CategoryUsers:    2,
	CategoryAdmin:    3,
	CategoryFlow:     4,
}

var definitions = make(map[ast.NodeType]*NodeDefinition)

// MustRegisterNode registers a node kind and panics on a duplicate or empty
// type. Only called from init().
func MustRegisterNode(def NodeDefinition) {
	if def.Type == "" {
		panic("failed to register node: type cannot be empty")
	}
	if _, exists := definitions[def.Type]; exists {
		panic(fmt.Sprintf("failed to register node %s: already registered", def.Type))
	}
	definitions[def.Type] = &def
}

// Lookup returns the definition of a node kind.
func Lookup(t ast.NodeType) (NodeDefinition, bool) {
	def, ok := definitions[t]
	if !ok {
		return NodeDefinition{}, false
	}
	return *def, true
}

// Definitions returns all node kinds ordered by category, then type.
func Definitions() []NodeDefinition {
	out := make([]NodeDefinition, 0, len(definitions))
	for _, def := range definitions {
		out = append(out, *def)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := categoryOrder[out[i].Category], categoryOrder[out[j].Category]
		if ci != cj {
			return ci < cj
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// defaultSynonyms returns the kind's fallback synonym list.
func defaultSynonyms(t ast.NodeType) []string {
	if def, ok := definitions[t]; ok {
		return def.DefaultSynonyms
	}
	return nil
}
