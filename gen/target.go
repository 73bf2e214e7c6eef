package gen

import (
	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/pyast"
)

// Target resolution is emitted the same way for every content and
// moderation kind: the runtime helpers try the replied-to message, then a
// numeric id after the trigger word, then the node default. When nothing
// resolves the routine prompts and returns.

// messageDefault is the node configured fallback message id expression.
func messageDefault(t ast.MessageTarget) string {
	switch {
	case t.MessageIDSource == ast.AddressVariable && t.TargetMessageVariable != "":
		return pyast.Call("to_int", pyast.Call("get_user_var", "ctx.user_id", pyast.Str(t.TargetMessageVariable)))
	case t.MessageIDSource != ast.AddressVariable && t.TargetMessageID != 0:
		return pyast.Int(t.TargetMessageID)
	}
	return ""
}

// userDefault is the node configured fallback user id expression.
func userDefault(t ast.UserTarget) string {
	switch {
	case t.UserIDSource == ast.AddressVariable && t.TargetUserVariable != "":
		return pyast.Call("to_int", pyast.Call("get_user_var", "ctx.user_id", pyast.Str(t.TargetUserVariable)))
	case t.UserIDSource != ast.AddressVariable && t.TargetUserID != 0:
		return pyast.Int(t.TargetUserID)
	}
	return ""
}

// resolveTarget emits "<variable> = <resolver>(ctx[, default])" and the
// prompt-and-abort branch.
func resolveTarget(variable, resolver, def, prompt string) []pyast.Stmt {
	args := []string{"ctx"}
	if def != "" {
		args = append(args, def)
	}
	return []pyast.Stmt{
		pyast.Assign{Target: variable, Value: pyast.Call(resolver, args...)},
		pyast.If{Branches: []pyast.Branch{{
			Cond: variable + " is None",
			Body: []pyast.Stmt{
				pyast.Line(pyast.Await(pyast.Call("ctx.reply", pyast.Str(prompt)))),
				pyast.Return{},
			},
		}}},
	}
}

func (s *synthesizer) resolveMessage(t ast.MessageTarget) []pyast.Stmt {
	return resolveTarget("message_id", "resolve_target_message", messageDefault(t), s.ctx.Message("target.message"))
}

func (s *synthesizer) resolveUser(t ast.UserTarget) []pyast.Stmt {
	return resolveTarget("user_id", "resolve_target_user", userDefault(t), s.ctx.Message("target.user"))
}

// chatAssign binds chat_id to the configured target group or the chat the
// trigger came from.
func chatAssign(groupID string) pyast.Stmt {
	if groupID == "" {
		return pyast.Assign{Target: "chat_id", Value: "ctx.chat_id"}
	}
	return pyast.Assign{Target: "chat_id", Value: chatIDExpr(groupID)}
}
