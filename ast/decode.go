package ast

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ErrUnknownNodeType is returned when a node's type has no payload.
var ErrUnknownNodeType = errors.New("unknown node type")

// factories maps every node type to a constructor of its empty payload.
var factories = map[NodeType]func() Data{
	NodeStart:         func() Data { return &StartData{} },
	NodeCommand:       func() Data { return &CommandData{} },
	NodeMessage:       func() Data { return &MessageData{} },
	NodePhoto:         func() Data { return &MediaData{Kind: NodePhoto} },
	NodeVideo:         func() Data { return &MediaData{Kind: NodeVideo} },
	NodeAudio:         func() Data { return &MediaData{Kind: NodeAudio} },
	NodeDocument:      func() Data { return &MediaData{Kind: NodeDocument} },
	NodeLocation:      func() Data { return &LocationData{} },
	NodeContact:       func() Data { return &ContactData{} },
	NodePinMessage:    func() Data { return &PinMessageData{} },
	NodeUnpinMessage:  func() Data { return &UnpinMessageData{} },
	NodeDeleteMessage: func() Data { return &DeleteMessageData{} },
	NodeBanUser:       func() Data { return &BanUserData{} },
	NodeUnbanUser:     func() Data { return &UnbanUserData{} },
	NodeMuteUser:      func() Data { return &MuteUserData{} },
	NodeUnmuteUser:    func() Data { return &UnmuteUserData{} },
	NodeKickUser:      func() Data { return &KickUserData{} },
	NodePromoteUser:   func() Data { return &PromoteUserData{} },
	NodeDemoteUser:    func() Data { return &DemoteUserData{} },
	NodeAdminRights:   func() Data { return &AdminRightsData{} },
	NodeInput:         func() Data { return &InputData{} },
	NodeConditional:   func() Data { return &ConditionalData{} },
	NodeMultiSelect:   func() Data { return &MultiSelectData{} },
}

// NewData returns the empty payload for a node type.
func NewData(t NodeType) (Data, error) {
	f, ok := factories[t]
	if !ok {
		err := errors.Wrapf(ErrUnknownNodeType, "%q", string(t))
		if s := Suggest(string(t)); s != "" {
			err = errors.WithHintf(err, "did you mean %q?", s)
		}
		return nil, err
	}
	return f(), nil
}

// KnownTypes returns every node type in sorted order.
func KnownTypes() []NodeType {
	types := make([]NodeType, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Suggest returns the known node type closest to an unknown one, or "".
func Suggest(unknown string) string {
	if unknown == "" {
		return ""
	}
	names := make([]string, 0, len(factories))
	for _, t := range KnownTypes() {
		names = append(names, string(t))
	}

	ranks := fuzzy.RankFindFold(unknown, names)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		return ranks[0].Target
	}

	// No subsequence match: fall back to plain edit distance.
	best, bestDist := "", -1
	for _, name := range names {
		d := fuzzy.LevenshteinDistance(unknown, name)
		if bestDist < 0 || d < bestDist {
			best, bestDist = name, d
		}
	}
	if bestDist >= 0 && bestDist <= len(unknown)/2 {
		return best
	}
	return ""
}

// rawNode mirrors Node with an undecoded payload.
type rawNode struct {
	ID       string          `json:"id"`
	Type     NodeType        `json:"type"`
	Position *Position       `json:"position,omitempty"`
	Data     json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes the payload according to the node type. A missing or
// null payload decodes to the empty payload of that kind.
func (n *Node) UnmarshalJSON(b []byte) error {
	var raw rawNode
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.Wrap(err, "decode node")
	}

	data, err := NewData(raw.Type)
	if err != nil {
		return errors.Wrapf(err, "node %q", raw.ID)
	}

	if trimmed := bytes.TrimSpace(raw.Data); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, data); err != nil {
			return errors.Wrapf(err, "node %q: decode %s data", raw.ID, raw.Type)
		}
	}
	// Decoding must not clobber the kind set by the factory.
	if m, ok := data.(*MediaData); ok {
		m.Kind = raw.Type
	}

	n.ID = raw.ID
	n.Type = raw.Type
	n.Position = raw.Position
	n.Data = data
	return nil
}

// NewNode builds a node with the empty payload of its type, for tests and
// programmatic graphs.
func NewNode(id string, t NodeType) (Node, error) {
	data, err := NewData(t)
	if err != nil {
		return Node{}, err
	}
	return Node{ID: id, Type: t, Data: data}, nil
}

// MustNode is NewNode for known types; it panics on an unknown type.
func MustNode(id string, t NodeType, data Data) Node {
	if data == nil {
		var err error
		data, err = NewData(t)
		if err != nil {
			panic(fmt.Sprintf("ast: %v", err))
		}
	}
	if m, ok := data.(*MediaData); ok && m.Kind == "" {
		m.Kind = t
	}
	return Node{ID: id, Type: t, Data: data}
}

// Decode parses a JSON graph.
func Decode(b []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(b, &g); err != nil {
		return nil, errors.Wrap(err, "decode graph")
	}
	return &g, nil
}
