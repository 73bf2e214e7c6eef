package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxkacsa/botgen/ast"
)

func TestRegistry_CoversEveryKnownType(t *testing.T) {
	for _, typ := range ast.KnownTypes() {
		def, ok := Lookup(typ)
		require.True(t, ok, "node type %s is not registered", typ)
		assert.Equal(t, typ, def.Type)
		assert.NotEmpty(t, def.Category)
		assert.NotEmpty(t, def.Description)
	}
	assert.Len(t, Definitions(), len(ast.KnownTypes()))
}

func TestRegistry_DefinitionsOrder(t *testing.T) {
	defs := Definitions()
	for i := 1; i < len(defs); i++ {
		prev, cur := defs[i-1], defs[i]
		if prev.Category == cur.Category {
			assert.True(t, string(prev.Type) < string(cur.Type), "%s before %s", prev.Type, cur.Type)
			continue
		}
		assert.Less(t, categoryOrder[prev.Category], categoryOrder[cur.Category])
	}
	assert.Equal(t, CategoryMessages, defs[0].Category)
	assert.Equal(t, CategoryFlow, defs[len(defs)-1].Category)
}

func TestRegistry_ActionKinds(t *testing.T) {
	tests := []struct {
		typ     ast.NodeType
		command string
		first   string
	}{
		{ast.NodePinMessage, "pin", "закрепить"},
		{ast.NodeUnpinMessage, "unpin", "открепить"},
		{ast.NodeDeleteMessage, "delete", "удалить"},
		{ast.NodeBanUser, "ban", "забанить"},
		{ast.NodeUnbanUser, "unban", "разбанить"},
		{ast.NodeMuteUser, "mute", "замутить"},
		{ast.NodeUnmuteUser, "unmute", "размутить"},
		{ast.NodeKickUser, "kick", "кикнуть"},
		{ast.NodePromoteUser, "promote", "повысить"},
		{ast.NodeDemoteUser, "demote", "понизить"},
		{ast.NodeAdminRights, "admin_rights", "права"},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			def, ok := Lookup(tt.typ)
			require.True(t, ok)
			assert.Equal(t, tt.command, def.Command)
			assert.True(t, def.GroupOnly)
			require.Len(t, def.DefaultSynonyms, 3)
			assert.Equal(t, tt.first, def.DefaultSynonyms[0])
		})
	}
}

func TestRegistry_MessageKindsHaveNoDefaults(t *testing.T) {
	for _, typ := range []ast.NodeType{ast.NodeStart, ast.NodeMessage, ast.NodePhoto, ast.NodeInput, ast.NodeMultiSelect} {
		assert.Empty(t, defaultSynonyms(typ), typ)
	}
}

func TestMustRegisterNode_Panics(t *testing.T) {
	assert.Panics(t, func() { MustRegisterNode(NodeDefinition{}) })
	assert.Panics(t, func() { MustRegisterNode(NodeDefinition{Type: ast.NodeBanUser}) })
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("warn_user")
	assert.False(t, ok)
}
