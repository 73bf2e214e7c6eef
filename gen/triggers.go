package gen

import (
	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/pyast"
)

// scope restricts a text or command trigger to group chats and/or one chat.
type scope struct {
	groupOnly bool
	groupID   string
}

func (sc scope) args() []string {
	groupID := pyast.None
	if sc.groupID != "" {
		groupID = chatIDExpr(sc.groupID)
	}
	return []string{pyast.Bool(sc.groupOnly), groupID}
}

func (sc scope) restricted() bool {
	return sc.groupOnly || sc.groupID != ""
}

// delegate is the body line that runs a node routine with a context built
// by ctxExpr.
func (s *synthesizer) delegate(n *ast.Node, ctxExpr string) pyast.Stmt {
	return pyast.Line(pyast.Await(pyast.Call(s.ctx.NodeFunc(n.ID), ctxExpr)))
}

// callbackTrigger registers the button handler of n: any callback payload
// equal to the node id or starting with "<id>:".
func (s *synthesizer) callbackTrigger(n *ast.Node) {
	id := pyast.Str(n.ID)
	body := []pyast.Stmt{pyast.Line("await callback.answer()")}
	if s.ctx.skipTargets[n.ID] {
		body = append(body, pyast.If{Branches: []pyast.Branch{{
			Cond: "callback.data == " + pyast.Str(n.ID+":"+skipInputArg),
			Body: []pyast.Stmt{pyast.Line("pending_input.pop(callback.from_user.id, None)")},
		}}})
	}
	body = append(body, s.delegate(n, pyast.Call("ActionContext.from_callback", "callback", id)))
	s.add(n, FragmentTrigger, pyast.Def{
		Name:       s.ctx.Func("handle_callback_" + s.ctx.Stem(n.ID)),
		Params:     []string{"callback: types.CallbackQuery"},
		Async:      true,
		Decorators: []string{"dp.callback_query(lambda callback: " + pyast.Call("callback_matches", "callback", id) + ")"},
		Body:       body,
	})
}

// commandTrigger registers a slash command for n. gates run before the
// node routine and may return early.
func (s *synthesizer) commandTrigger(n *ast.Node, command string, sc scope, gates []pyast.Stmt) {
	filter := pyast.Call("Command", pyast.Str(command))
	if command == "start" {
		filter = "CommandStart()"
	}
	filters := []string{filter}
	if sc.restricted() {
		filters = append(filters, "lambda message: "+pyast.Call("chat_in_scope", append([]string{"message"}, sc.args()...)...))
	}

	body := append([]pyast.Stmt{}, gates...)
	body = append(body, s.delegate(n, pyast.Call("ActionContext.from_message", "message", pyast.Str("/"+command))))

	s.add(n, FragmentTrigger, pyast.Def{
		Name:       s.ctx.Func("handle_command_" + s.ctx.Stem(n.ID)),
		Params:     []string{"message: types.Message"},
		Async:      true,
		Decorators: []string{pyast.Call("dp.message", filters...)},
		Body:       body,
	})
}

// textTrigger builds a handler for a trigger word; the routine receives the
// text after the word.
func (s *synthesizer) textTrigger(n *ast.Node, name, trigger string, sc scope) pyast.Def {
	match := pyast.Call("text_matches", append([]string{"message", pyast.Str(trigger)}, sc.args()...)...)
	return pyast.Def{
		Name:       name,
		Params:     []string{"message: types.Message"},
		Async:      true,
		Decorators: []string{"dp.message(lambda message: " + match + ")"},
		Body: []pyast.Stmt{
			s.delegate(n, pyast.Call("ActionContext.from_message", "message", pyast.Str(trigger))),
		},
	}
}

// adminGate and privateGate guard command handlers.
func adminGate() pyast.Stmt {
	return pyast.If{Branches: []pyast.Branch{{
		Cond: "not await is_chat_admin(message)",
		Body: []pyast.Stmt{
			pyast.Line(`await message.answer(MESSAGES["access.admin_only"])`),
			pyast.Return{},
		},
	}}}
}

func privateGate() pyast.Stmt {
	return pyast.If{Branches: []pyast.Branch{{
		Cond: `message.chat.type != "private"`,
		Body: []pyast.Stmt{
			pyast.Line(`await message.answer(MESSAGES["access.private_only"])`),
			pyast.Return{},
		},
	}}}
}

// groupGate stops a routine outside group chats.
func groupGate() pyast.Stmt {
	return pyast.If{Branches: []pyast.Branch{{
		Cond: "not ctx.is_group",
		Body: []pyast.Stmt{
			pyast.Line(`await ctx.reply(MESSAGES["access.group_only"])`),
			pyast.Return{},
		},
	}}}
}
