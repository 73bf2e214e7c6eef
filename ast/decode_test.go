package ast

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_TypedPayloads(t *testing.T) {
	src := `{
		"nodes": [
			{"id": "s", "type": "start", "data": {"messageText": "Привет", "command": "/start", "showInMenu": true}},
			{"id": "p", "type": "pin_message", "data": {}},
			{"id": "b", "type": "ban_user", "data": {"reason": "spam", "untilDate": 1700000000}},
			{"id": "ph", "type": "photo", "data": {"imageUrl": "https://example.com/a.png"}},
			{"id": "m", "type": "message"}
		],
		"connections": [{"id": "c1", "source": "s", "target": "m"}]
	}`

	g, err := Decode([]byte(src))
	require.NoError(t, err)
	require.Len(t, g.Nodes, 5)

	start, ok := g.Nodes[0].Data.(*StartData)
	require.True(t, ok)
	assert.Equal(t, "Привет", start.MessageText)
	assert.Equal(t, "/start", start.Command)
	assert.True(t, start.ShowInMenu)

	_, ok = g.Nodes[1].Data.(*PinMessageData)
	assert.True(t, ok)

	ban, ok := g.Nodes[2].Data.(*BanUserData)
	require.True(t, ok)
	assert.Equal(t, "spam", ban.Reason)
	assert.Equal(t, int64(1700000000), ban.UntilDate)

	photo, ok := g.Nodes[3].Data.(*MediaData)
	require.True(t, ok)
	assert.Equal(t, NodePhoto, photo.Kind)
	assert.Equal(t, "https://example.com/a.png", photo.Source())

	_, ok = g.Nodes[4].Data.(*MessageData)
	assert.True(t, ok, "missing data decodes to the empty payload")

	require.Len(t, g.Connections, 1)
	assert.Equal(t, "m", g.Connections[0].Target)
}

func TestDecode_SynonymsNullVersusEmpty(t *testing.T) {
	src := `{"nodes": [
		{"id": "a", "type": "pin_message", "data": {}},
		{"id": "b", "type": "pin_message", "data": {"synonyms": null}},
		{"id": "c", "type": "pin_message", "data": {"synonyms": []}},
		{"id": "d", "type": "pin_message", "data": {"synonyms": ["x", "y"]}}
	], "connections": []}`

	g, err := Decode([]byte(src))
	require.NoError(t, err)

	syn := func(i int) *[]string {
		s, ok := SynonymsOf(&g.Nodes[i])
		require.True(t, ok)
		return s
	}

	assert.Nil(t, syn(0))
	assert.Nil(t, syn(1))
	require.NotNil(t, syn(2))
	assert.Empty(t, *syn(2))
	require.NotNil(t, syn(3))
	assert.Equal(t, []string{"x", "y"}, *syn(3))
}

func TestDecode_UnknownTypeSuggests(t *testing.T) {
	_, err := Decode([]byte(`{"nodes": [{"id": "x", "type": "ban_usr", "data": {}}]}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownNodeType))
	assert.Contains(t, errors.FlattenHints(err), "ban_user")
}

func TestDecode_BadPayload(t *testing.T) {
	_, err := Decode([]byte(`{"nodes": [{"id": "x", "type": "message", "data": "oops"}]}`))
	assert.Error(t, err)
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "pin_message", Suggest("pin"))
	assert.Equal(t, "", Suggest(""))
	assert.Equal(t, "", Suggest("zzzzzzzzzzzzzzzzzzzzzzzzzzzz"))
}

func TestKnownTypes_CoversFactories(t *testing.T) {
	types := KnownTypes()
	assert.Len(t, types, len(factories))
	for i := 1; i < len(types); i++ {
		assert.Less(t, types[i-1], types[i])
	}
}

func TestMustNode_SetsMediaKind(t *testing.T) {
	n := MustNode("v", NodeVideo, &MediaData{VideoURL: "u"})
	assert.Equal(t, NodeVideo, n.Data.(*MediaData).Kind)
	assert.Equal(t, "u", n.Data.(*MediaData).Source())

	empty := MustNode("m", NodeMessage, nil)
	_, ok := empty.Data.(*MessageData)
	assert.True(t, ok)
}

func TestWithAutoConnections(t *testing.T) {
	g := &Graph{
		Nodes: []Node{
			MustNode("a", NodeMessage, &MessageData{MessageBase: MessageBase{
				AutoTransition: AutoTransition{EnableAutoTransition: true, AutoTransitionTo: "b"},
			}}),
			MustNode("b", NodeMessage, &MessageData{MessageBase: MessageBase{
				AutoTransition: AutoTransition{EnableAutoTransition: true, AutoTransitionTo: "c"},
			}}),
			MustNode("c", NodeMessage, &MessageData{MessageBase: MessageBase{
				AutoTransition: AutoTransition{EnableAutoTransition: false, AutoTransitionTo: "a"},
			}}),
			MustNode("p", NodePinMessage, nil),
		},
		Connections: []Connection{{ID: "drawn", Source: "b", Target: "c"}},
	}

	conns := g.WithAutoConnections()
	require.Len(t, conns, 2)
	assert.Equal(t, "drawn", conns[0].ID)
	assert.False(t, conns[0].IsAutoGenerated)
	assert.Equal(t, Connection{ID: "auto-a-b", Source: "a", Target: "b", IsAutoGenerated: true}, conns[1])

	assert.Len(t, g.Connections, 1, "graph must not be modified")
}

func TestGraphLookups(t *testing.T) {
	g := &Graph{
		Nodes: []Node{MustNode("a", NodeMessage, nil), MustNode("b", NodeInput, nil)},
		Connections: []Connection{
			{ID: "1", Source: "a", Target: "b"},
			{ID: "2", Source: "b", Target: "a"},
			{ID: "3", Source: "a", Target: "a"},
		},
	}

	assert.Equal(t, map[string]bool{"a": true, "b": true}, g.NodeIDs())
	assert.Equal(t, NodeInput, g.FindNode("b").Type)
	assert.Nil(t, g.FindNode("zz"))

	out := Outgoing(g.Connections, "a")
	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "3", out[1].ID)
}
