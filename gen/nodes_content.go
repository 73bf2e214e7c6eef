package gen

import (
	"strings"

	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/pyast"
)

// ============================================================================
// Content Nodes - pin, unpin, delete
// ============================================================================

func init() {
	registerContentNodes()
}

func registerContentNodes() {
	MustRegisterNode(NodeDefinition{
		Type:            ast.NodePinMessage,
		Category:        CategoryContent,
		Description:     "Pins the replied-to or configured message",
		DefaultSynonyms: []string{"закрепить", "прикрепить", "зафиксировать"},
		Command:         "pin",
		GroupOnly:       true,
	})
	MustRegisterNode(NodeDefinition{
		Type:            ast.NodeUnpinMessage,
		Category:        CategoryContent,
		Description:     "Unpins one message or every pinned message",
		DefaultSynonyms: []string{"открепить", "отцепить", "убрать закрепление"},
		Command:         "unpin",
		GroupOnly:       true,
	})
	MustRegisterNode(NodeDefinition{
		Type:            ast.NodeDeleteMessage,
		Category:        CategoryContent,
		Description:     "Deletes the replied-to or configured message",
		DefaultSynonyms: []string{"удалить", "стереть", "убрать сообщение"},
		Command:         "delete",
		GroupOnly:       true,
	})
}

// actionScope resolves the trigger scope of an action node: the kind
// default for groupOnly unless the node sets it, plus the target group.
func actionScope(n *ast.Node, base *ast.ActionBase) scope {
	def, _ := Lookup(n.Type)
	sc := scope{groupOnly: def.GroupOnly, groupID: strings.TrimSpace(base.TargetGroupID)}
	if base.GroupOnly != nil {
		sc.groupOnly = *base.GroupOnly
	}
	return sc
}

// actionNode adds the routine and triggers shared by content, moderation
// and administration kinds. The routine binds chat_id before body runs.
func (s *synthesizer) actionNode(n *ast.Node, base *ast.ActionBase, body []pyast.Stmt) {
	sc := actionScope(n, base)

	var prelude []pyast.Stmt
	if sc.groupOnly && sc.groupID == "" {
		prelude = append(prelude, groupGate())
	}
	prelude = append(prelude, chatAssign(sc.groupID))

	s.routine(n, append(prelude, body...))
	s.callbackTrigger(n)
	if def, ok := Lookup(n.Type); ok && def.Command != "" {
		s.commandTrigger(n, def.Command, sc, nil)
	}
	s.expandSynonyms(n, sc)
}

// success is the confirmation of an action node.
func (s *synthesizer) success(n *ast.Node, base *ast.ActionBase) string {
	return s.ctx.Text(base.MessageText, string(n.Type)+".success")
}

func replyLine(text string) pyast.Stmt {
	return pyast.Line(pyast.Await(pyast.Call("ctx.reply", pyast.Str(text))))
}

// botCall emits "await bot.<method>(chat_id=chat_id, ...)".
func botCall(method string, args ...string) pyast.Stmt {
	return pyast.Line(pyast.Await(pyast.Call("bot."+method, append([]string{pyast.Kw("chat_id", "chat_id")}, args...)...)))
}

func (s *synthesizer) VisitPinMessage(n *ast.Node, d *ast.PinMessageData) error {
	args := []string{pyast.Kw("message_id", "message_id")}
	if d.DisableNotification {
		args = append(args, pyast.Kw("disable_notification", "True"))
	}
	body := append(s.resolveMessage(d.MessageTarget),
		s.guard(n, string(n.Type),
			botCall("pin_chat_message", args...),
			replyLine(s.success(n, &d.ActionBase)),
		))
	s.actionNode(n, &d.ActionBase, body)
	return nil
}

func (s *synthesizer) VisitUnpinMessage(n *ast.Node, d *ast.UnpinMessageData) error {
	var body []pyast.Stmt
	if d.UnpinAll {
		body = []pyast.Stmt{s.guard(n, string(n.Type),
			botCall("unpin_all_chat_messages"),
			replyLine(s.ctx.Text(d.MessageText, "unpin_message.success_all")),
		)}
	} else {
		body = append(s.resolveMessage(d.MessageTarget),
			s.guard(n, string(n.Type),
				botCall("unpin_chat_message", pyast.Kw("message_id", "message_id")),
				replyLine(s.success(n, &d.ActionBase)),
			))
	}
	s.actionNode(n, &d.ActionBase, body)
	return nil
}

func (s *synthesizer) VisitDeleteMessage(n *ast.Node, d *ast.DeleteMessageData) error {
	body := append(s.resolveMessage(d.MessageTarget),
		s.guard(n, string(n.Type),
			botCall("delete_message", pyast.Kw("message_id", "message_id")),
			replyLine(s.success(n, &d.ActionBase)),
		))
	s.actionNode(n, &d.ActionBase, body)
	return nil
}
