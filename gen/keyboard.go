package gen

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/internal/ident"
	"github.com/mxkacsa/botgen/pyast"
)

// markup is a compiled keyboard: the reply_markup expression ("" for none)
// and runtime warnings for buttons whose target is missing.
type markup struct {
	expr     string
	warnings []pyast.Stmt
}

// keyboard compiles the keyboard of n. Reply keyboard buttons that jump to
// a node also register a text handler for their label.
func (s *synthesizer) keyboard(n *ast.Node, kb ast.Keyboard) (markup, error) {
	if len(kb.Buttons) == 0 {
		return markup{}, nil
	}
	switch kb.KeyboardType {
	case ast.KeyboardInline:
		return s.inlineKeyboard(n, kb.Buttons)
	case ast.KeyboardReply:
		return s.replyKeyboard(n, kb)
	}
	return markup{}, nil
}

// buttonTarget returns the node a goto or command button leads to.
func (s *synthesizer) buttonTarget(n *ast.Node, b ast.Button) (string, bool, []pyast.Stmt, error) {
	switch b.Action {
	case ast.ActionGoto:
		ok, err := s.ctx.checkTarget(n, b.Target, "button "+b.ID)
		if err != nil || ok || b.Target == "" {
			return b.Target, ok, nil, err
		}
		return "", false, []pyast.Stmt{missingTarget(n.ID, b.Target)}, nil
	case ast.ActionCommand:
		if target := s.ctx.commandNode(b.Target); target != nil {
			return target.ID, true, nil, nil
		}
		if _, err := s.ctx.checkTarget(n, b.Target, "button command "+b.ID); err != nil {
			return "", false, nil, err
		}
		return "", false, []pyast.Stmt{missingTarget(n.ID, b.Target)}, nil
	}
	return "", false, nil, nil
}

func (s *synthesizer) inlineKeyboard(n *ast.Node, buttons []ast.Button) (markup, error) {
	var m markup
	var items []string
	for _, b := range buttons {
		switch b.Action {
		case ast.ActionGoto, ast.ActionCommand:
			target, ok, warn, err := s.buttonTarget(n, b)
			if err != nil {
				return markup{}, err
			}
			m.warnings = append(m.warnings, warn...)
			if ok {
				data := target
				if b.SkipDataCollection {
					data += ":" + skipInputArg
				}
				items = append(items, pyast.Tuple(pyast.Str(b.Text), pyast.Str("callback"), pyast.Str(data)))
			}
		case ast.ActionURL:
			if b.URL != "" {
				items = append(items, pyast.Tuple(pyast.Str(b.Text), pyast.Str("url"), pyast.Str(b.URL)))
			}
		default:
			// Contact and location requests only exist on reply keyboards;
			// selections only on multi-select nodes.
			s.ctx.log.Debug("button skipped on inline keyboard",
				zap.String("node_id", n.ID), zap.String("button", b.ID), zap.String("action", string(b.Action)))
		}
	}
	if len(items) > 0 {
		m.expr = pyast.Call("inline_keyboard", pyast.List(items...))
	}
	return m, nil
}

func (s *synthesizer) replyKeyboard(n *ast.Node, kb ast.Keyboard) (markup, error) {
	var m markup
	items := make([]string, 0, len(kb.Buttons))
	oneTime := kb.OneTimeKeyboard
	labels := make(map[string]bool)

	for _, b := range kb.Buttons {
		kind := "text"
		switch b.Action {
		case ast.ActionContact:
			kind = "contact"
		case ast.ActionLocation:
			kind = "location"
		case ast.ActionGoto, ast.ActionCommand:
			target, ok, warn, err := s.buttonTarget(n, b)
			if err != nil {
				return markup{}, err
			}
			m.warnings = append(m.warnings, warn...)
			if ok && !labels[b.Text] {
				labels[b.Text] = true
				s.replyTrigger(n, b.Text, target, b.SkipDataCollection)
			}
		}
		if b.HideAfterClick {
			oneTime = true
		}
		items = append(items, pyast.Tuple(pyast.Str(b.Text), pyast.Str(kind)))
	}

	resize := true
	if kb.ResizeKeyboard != nil {
		resize = *kb.ResizeKeyboard
	}
	m.expr = pyast.Call("reply_keyboard", pyast.List(items...),
		pyast.Kw("one_time", pyast.Bool(oneTime)),
		pyast.Kw("resize", pyast.Bool(resize)))
	return m, nil
}

// replyTrigger registers a text handler for a reply keyboard label that
// jumps to target. With skip the user's pending input is dropped first, so
// the label is not taken as an answer later.
func (s *synthesizer) replyTrigger(n *ast.Node, label, target string, skip bool) {
	name := s.ctx.Func("handle_reply_" + s.ctx.Stem(n.ID) + "_" + ident.SanitizeSynonym(label))
	body := []pyast.Stmt{
		pyast.Line(pyast.Await(pyast.Call("go_to_node", pyast.Str(target), "ActionContext.from_message(message)"))),
	}
	if skip {
		body = []pyast.Stmt{
			pyast.Assign{Target: "ctx", Value: "ActionContext.from_message(message)"},
			pyast.Line("pending_input.pop(ctx.user_id, None)"),
			pyast.Line(pyast.Await(pyast.Call("go_to_node", pyast.Str(target), "ctx"))),
		}
	}
	s.add(n, FragmentTrigger, pyast.Def{
		Name:       name,
		Params:     []string{"message: types.Message"},
		Async:      true,
		Decorators: []string{"dp.message(F.text == " + pyast.Str(label) + ")"},
		Body:       body,
	})
}

// parseMode maps the editor's format mode to a Telegram parse mode.
func parseMode(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "html":
		return "HTML"
	case "markdown":
		return "Markdown"
	case "markdownv2", "markdown_v2":
		return "MarkdownV2"
	}
	return ""
}

// sendText emits a safe_edit_or_send call.
func sendText(text string, m markup, mode string) pyast.Stmt {
	args := []string{"ctx", pyast.Str(text)}
	if m.expr != "" {
		args = append(args, pyast.Kw("reply_markup", m.expr))
	}
	if mode != "" {
		args = append(args, pyast.Kw("parse_mode", pyast.Str(mode)))
	}
	return pyast.Line(pyast.Await(pyast.Call("safe_edit_or_send", args...)))
}
