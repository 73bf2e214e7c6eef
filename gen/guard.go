package gen

import (
	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/pyast"
)

// guard wraps a platform action so Telegram failures reach the user as one
// of three texts (not found, forbidden, generic) and anything else as the
// unexpected-error text. scope selects kind specific texts, e.g.
// "pin_message" or "media".
func (s *synthesizer) guard(n *ast.Node, scope string, body ...pyast.Stmt) pyast.Stmt {
	t := s.ctx.texts
	reply := func(tier string) []pyast.Stmt {
		return []pyast.Stmt{pyast.Line(pyast.Await(pyast.Call("ctx.reply", pyast.Str(t.errorText(scope, tier)))))}
	}
	id := pyast.Str(n.ID)

	return pyast.Try{
		Body: body,
		Handlers: []pyast.Except{
			{
				Type: "(TelegramBadRequest, TelegramForbiddenError)",
				Name: "error",
				Body: []pyast.Stmt{
					pyast.Line(pyast.Call("logger.warning", pyast.Str("Node %s failed: %s"), id, "error")),
					pyast.Assign{Target: "kind", Value: "classify_telegram_error(error)"},
					pyast.If{
						Branches: []pyast.Branch{
							{Cond: `kind == "not_found"`, Body: reply(tierNotFound)},
							{Cond: `kind == "forbidden"`, Body: reply(tierForbidden)},
						},
						Else: reply(tierGeneric),
					},
				},
			},
			{
				Body: append([]pyast.Stmt{
					pyast.Line(pyast.Call("logger.exception", pyast.Str("Node %s failed unexpectedly"), id)),
				}, reply(tierUnexpected)...),
			},
		},
	}
}
