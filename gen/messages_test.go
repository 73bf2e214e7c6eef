package gen

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mxkacsa/botgen/ast"
)

func TestTexts_ErrorTextPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		want      string
	}{
		{"scoped default", nil, "❌ У бота нет прав на закрепление сообщений"},
		{"global override beats scoped default", map[string]string{"error.forbidden": "global"}, "global"},
		{"scoped override wins", map[string]string{"error.forbidden": "global", "pin_message.forbidden": "scoped"}, "scoped"},
		{"empty override ignored", map[string]string{"pin_message.forbidden": ""}, "❌ У бота нет прав на закрепление сообщений"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, texts{overrides: tt.overrides}.errorText("pin_message", tierForbidden))
		})
	}
}

func TestTexts_GlobalFallback(t *testing.T) {
	assert.Equal(t, defaultMessages["error.generic"], texts{}.errorText("pin_message", tierGeneric))
	assert.Equal(t, defaultMessages["error.unexpected"], texts{}.errorText("nothing", tierUnexpected))
}

func TestTexts_NodeTextWins(t *testing.T) {
	tx := texts{overrides: map[string]string{"start.text": "override"}}
	assert.Equal(t, "node", tx.text("node", "start.text"))
	assert.Equal(t, "override", tx.text("  ", "start.text"))
	assert.Equal(t, defaultMessages["message.text"], tx.text("", "message.text"))
}

func TestMessageKeys(t *testing.T) {
	keys := MessageKeys()
	assert.True(t, sort.StringsAreSorted(keys))
	assert.Len(t, keys, len(defaultMessages))

	for _, key := range runtimeMessageKeys {
		assert.Contains(t, keys, key)
	}
	for _, def := range Definitions() {
		if def.Command == "" {
			continue
		}
		for _, tier := range []string{"success", tierNotFound, tierForbidden} {
			assert.Contains(t, keys, string(def.Type)+"."+tier)
		}
	}
}

func TestDefaultMessages_ReturnsCopy(t *testing.T) {
	m := DefaultMessages()
	m["error.generic"] = "changed"
	assert.NotEqual(t, "changed", defaultMessages["error.generic"])
}

func TestGenerate_TemplateOverrides(t *testing.T) {
	out := generate(t, Options{TemplateOverrides: map[string]string{
		"pin_message.success": "Закреплено!",
		"error.forbidden":     "Нет прав",
		"access.group_only":   "Только группы",
	}},
		ast.MustNode("p1", ast.NodePinMessage, nil),
		ast.MustNode("p2", ast.NodePinMessage, &ast.PinMessageData{ActionBase: ast.ActionBase{MessageText: "Текст узла"}}),
	)

	assert.Contains(t, out, `await ctx.reply("Закреплено!")`)
	assert.Contains(t, out, `await ctx.reply("Текст узла")`)
	assert.Contains(t, out, `await ctx.reply("Нет прав")`)
	assert.NotContains(t, out, "У бота нет прав на закрепление сообщений")
	assert.Contains(t, out, `"access.group_only": "Только группы"`)
	assert.Equal(t, 1, strings.Count(out, TokenPlaceholder))
}
