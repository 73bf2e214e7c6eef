package ast

// NodeIDs returns the set of all node ids in the graph.
func (g *Graph) NodeIDs() map[string]bool {
	ids := make(map[string]bool, len(g.Nodes))
	for i := range g.Nodes {
		ids[g.Nodes[i].ID] = true
	}
	return ids
}

// FindNode returns the node with the given id, or nil.
func (g *Graph) FindNode(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Outgoing returns the connections leaving a node, in graph order.
func Outgoing(conns []Connection, nodeID string) []Connection {
	var out []Connection
	for _, c := range conns {
		if c.Source == nodeID {
			out = append(out, c)
		}
	}
	return out
}

// WithAutoConnections returns a copy of the graph's connections plus one
// auto-generated edge per node that declares an auto-transition target,
// unless an edge between the same two nodes already exists. The graph itself
// is not modified.
func (g *Graph) WithAutoConnections() []Connection {
	conns := make([]Connection, len(g.Connections), len(g.Connections)+len(g.Nodes))
	copy(conns, g.Connections)

	exists := make(map[[2]string]bool, len(conns))
	for _, c := range conns {
		exists[[2]string{c.Source, c.Target}] = true
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		at, ok := AutoTransitionOf(n)
		if !ok {
			continue
		}
		key := [2]string{n.ID, at.AutoTransitionTo}
		if exists[key] {
			continue
		}
		exists[key] = true
		conns = append(conns, Connection{
			ID:              "auto-" + n.ID + "-" + at.AutoTransitionTo,
			Source:          n.ID,
			Target:          at.AutoTransitionTo,
			IsAutoGenerated: true,
		})
	}
	return conns
}

// AutoTransitionOf returns the node's auto-transition when it is enabled and
// has a target.
func AutoTransitionOf(n *Node) (AutoTransition, bool) {
	t, ok := n.Data.(Transitioning)
	if !ok {
		return AutoTransition{}, false
	}
	at := t.Transition()
	if !at.EnableAutoTransition || at.AutoTransitionTo == "" {
		return AutoTransition{}, false
	}
	return at, true
}

// SynonymsOf returns the node's raw synonym list and whether the kind
// accepts synonyms at all.
func SynonymsOf(n *Node) (*[]string, bool) {
	s, ok := n.Data.(Synonymous)
	if !ok {
		return nil, false
	}
	return s.SynonymList(), true
}

// MessageBaseOf returns the message settings of n, or nil for kinds that do
// not send a message of their own.
func MessageBaseOf(n *Node) *MessageBase {
	if m, ok := n.Data.(Messaging); ok {
		return m.Message()
	}
	return nil
}
