package gen

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/pyast"
)

// ============================================================================
// Flow Nodes - conditional, multi_select
// ============================================================================

func init() {
	registerFlowNodes()
}

func registerFlowNodes() {
	MustRegisterNode(NodeDefinition{
		Type:        ast.NodeConditional,
		Category:    CategoryFlow,
		Description: "Shows the highest priority message whose condition holds",
	})
	MustRegisterNode(NodeDefinition{
		Type:        ast.NodeMultiSelect,
		Category:    CategoryFlow,
		Description: "Lets the user toggle several options, then continues",
	})
}

// VisitConditional always evaluates its chain; the node text is the
// fallback shown when nothing matches.
func (s *synthesizer) VisitConditional(n *ast.Node, d *ast.ConditionalData) error {
	mode := parseMode(d.FormatMode)

	var fallback []pyast.Stmt
	if strings.TrimSpace(d.MessageText) != "" {
		kb, err := s.keyboard(n, d.Keyboard)
		if err != nil {
			return err
		}
		fallback = append(append(fallback, kb.warnings...), sendText(d.MessageText, kb, mode))
	}

	var body []pyast.Stmt
	switch {
	case len(d.ConditionalMessages) > 0:
		name, err := s.compileConditions(n, d.ConditionalMessages, mode, fallback)
		if err != nil {
			return err
		}
		body = append(body, pyast.Line(pyast.Await(pyast.Call(name, "ctx"))))
	case fallback != nil:
		body = append(body, fallback...)
	default:
		s.ctx.log.Debug("conditional node without conditions or fallback", zap.String("node_id", n.ID))
		body = append(body, pyast.Line(pyast.Call("logger.warning",
			pyast.Str("Node %s has no conditional messages"), pyast.Str(n.ID))))
	}

	auto, err := s.autoTransition(n)
	if err != nil {
		return err
	}
	s.routine(n, append(body, auto...))
	s.callbackTrigger(n)
	s.expandSynonyms(n, scope{})
	return nil
}

// selectOptions returns the (id, text) pairs of a multi-select node: the
// selection buttons, or every button when none is marked for selection.
func selectOptions(buttons []ast.Button) []string {
	var marked, all []string
	for i, b := range buttons {
		if strings.TrimSpace(b.Text) == "" {
			continue
		}
		id := b.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		opt := pyast.Tuple(pyast.Str(id), pyast.Str(b.Text))
		all = append(all, opt)
		if b.Action == ast.ActionSelection {
			marked = append(marked, opt)
		}
	}
	if len(marked) > 0 {
		return marked
	}
	return all
}

func (s *synthesizer) VisitMultiSelect(n *ast.Node, d *ast.MultiSelectData) error {
	variable := strings.TrimSpace(d.MultiSelectVariable)
	if variable == "" {
		variable = n.ID
	}
	varName := pyast.Str(variable)

	var finish []pyast.Stmt
	if d.MinSelections > 0 {
		warn := strings.ReplaceAll(s.ctx.Message("multi_select.min"), "{min}", strconv.Itoa(d.MinSelections))
		finish = append(finish, pyast.If{Branches: []pyast.Branch{{
			Cond: "len(selected) < " + strconv.Itoa(d.MinSelections),
			Body: []pyast.Stmt{replyLine(warn), pyast.Return{}},
		}}})
	}
	finish = append(finish, pyast.Line(pyast.Await(pyast.Call("persist_user_var", "ctx.user_id", varName, "selected"))))

	next := s.ctx.nextTarget(n, d.ContinueButtonTarget)
	ok, err := s.ctx.checkTarget(n, next, "continueButtonTarget")
	if err != nil {
		return err
	}
	switch {
	case ok:
		finish = append(finish, pyast.Line(pyast.Await(pyast.Call("go_to_node", pyast.Str(next), "ctx"))))
	case next != "":
		finish = append(finish, missingTarget(n.ID, next), replyLine(s.ctx.Message("multi_select.saved")))
	default:
		finish = append(finish, replyLine(s.ctx.Message("multi_select.saved")))
	}
	finish = append(finish, pyast.Return{})

	body := []pyast.Stmt{
		pyast.Assign{Target: "options", Value: pyast.List(selectOptions(d.Buttons)...)},
		pyast.Assign{Target: "selected", Value: "list(" + pyast.Call("get_user_var", "ctx.user_id", varName) + " or [])"},
		pyast.If{Branches: []pyast.Branch{
			{
				Cond: `ctx.text.startswith("toggle:")`,
				Body: []pyast.Stmt{
					pyast.Line(`toggle_selection(selected, options, ctx.text[len("toggle:"):])`),
					pyast.Line(pyast.Call("set_user_var", "ctx.user_id", varName, "selected")),
				},
			},
			{Cond: `ctx.text == "done"`, Body: finish},
		}},
	}

	keyboard := pyast.Call("multi_select_keyboard", pyast.Str(n.ID), "options", "selected",
		pyast.Str(s.ctx.Text(d.ContinueButtonText, "multi_select.continue")))
	primary := []pyast.Stmt{
		sendText(s.ctx.Text(d.MessageText, "multi_select.text"), markup{expr: keyboard}, parseMode(d.FormatMode)),
	}
	flow, err := s.messageFlow(n, &d.MessageBase, primary, nil)
	if err != nil {
		return err
	}

	s.routine(n, append(body, flow...))
	s.callbackTrigger(n)
	s.expandSynonyms(n, scope{})
	return nil
}
