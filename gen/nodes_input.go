package gen

import (
	"strings"

	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/pyast"
)

// ============================================================================
// Input Node
// ============================================================================
//
// An input node stores a pending_input entry for the user and asks its
// question. The catch-all message handler validates the next text against
// the entry. Predefined answers arrive as "<id>:answer:<option>" callbacks
// and complete the input directly, unless the node asks for typed replies:
// then the typed option text is mapped to its value through "choices".

const answerPrefix = "answer:"

// skipInputArg is the callback argument of buttons that leave a pending
// input unanswered.
const skipInputArg = "skip_input"

func init() {
	MustRegisterNode(NodeDefinition{
		Type:        ast.NodeInput,
		Category:    CategoryFlow,
		Description: "Asks a question and stores the validated answer in a user variable",
	})
}

// inputSpec is the pending_input entry of an input node.
func (s *synthesizer) inputSpec(n *ast.Node, d *ast.InputData) ([]pyast.Item, []pyast.Stmt, error) {
	var warnings []pyast.Stmt

	next := pyast.None
	if target := s.ctx.nextTarget(n, d.InputTargetNodeID); target != "" {
		ok, err := s.ctx.checkTarget(n, target, "inputTargetNodeId")
		if err != nil {
			return nil, nil, err
		}
		if ok {
			next = pyast.Str(target)
		} else {
			warnings = append(warnings, missingTarget(n.ID, target))
		}
	}

	variable := strings.TrimSpace(d.InputVariable)
	if variable == "" {
		variable = n.ID
	}
	kind := d.InputType
	if kind == "" {
		kind = ast.InputText
	}
	successText := d.InputSuccessMessage
	if successText == "" && next == pyast.None {
		successText = s.ctx.Message("input.saved")
	}

	items := []pyast.Item{
		{Key: "node_id", Value: pyast.Str(n.ID)},
		{Key: "variable", Value: pyast.Str(variable)},
		{Key: "type", Value: pyast.Str(string(kind))},
		{Key: "min_length", Value: pyast.Int(int64(d.MinLength))},
		{Key: "max_length", Value: pyast.Int(int64(d.MaxLength))},
		{Key: "pattern", Value: pyast.OptStr(d.InputValidation)},
		{Key: "max_retries", Value: pyast.Int(int64(d.MaxRetries))},
		{Key: "retry_message", Value: pyast.OptStr(d.InputRetryMessage)},
		{Key: "success_message", Value: pyast.OptStr(successText)},
		{Key: "next", Value: next},
		{Key: "save", Value: pyast.Bool(d.SaveToDatabase)},
	}
	return items, warnings, nil
}

// answerOptions returns the option id to stored value pairs and the
// keyboard offering them.
func answerOptions(n *ast.Node, opts []ast.ResponseOption) ([]pyast.Item, markup) {
	var values []pyast.Item
	var buttons []string
	for _, o := range usableOptions(opts) {
		values = append(values, pyast.Item{Key: o.ID, Value: pyast.Str(optionValue(o))})
		buttons = append(buttons, pyast.Tuple(pyast.Str(o.Text), pyast.Str("callback"), pyast.Str(n.ID+":"+answerPrefix+o.ID)))
	}
	if len(buttons) == 0 {
		return nil, markup{}
	}
	return values, markup{expr: pyast.Call("inline_keyboard", pyast.List(buttons...))}
}

// typedChoices maps the lowercased option texts to their stored values, for
// inputs that expect a typed reply. The first option wins a repeated text.
func typedChoices(opts []ast.ResponseOption) []pyast.Item {
	var items []pyast.Item
	seen := make(map[string]bool)
	for _, o := range usableOptions(opts) {
		key := strings.ToLower(strings.TrimSpace(o.Text))
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, pyast.Item{Key: key, Value: pyast.Str(optionValue(o))})
	}
	return items
}

func usableOptions(opts []ast.ResponseOption) []ast.ResponseOption {
	out := make([]ast.ResponseOption, 0, len(opts))
	for _, o := range opts {
		if o.ID == "" || strings.TrimSpace(o.Text) == "" {
			continue
		}
		out = append(out, o)
	}
	return out
}

func optionValue(o ast.ResponseOption) string {
	if o.Value != "" {
		return o.Value
	}
	return o.Text
}

func (s *synthesizer) VisitInput(n *ast.Node, d *ast.InputData) error {
	items, warnings, err := s.inputSpec(n, d)
	if err != nil {
		return err
	}

	var values []pyast.Item
	var kb markup
	if d.ResponseType == ast.ResponseText {
		if choices := typedChoices(d.ResponseOptions); len(choices) > 0 {
			items = append(items, pyast.Item{Key: "choices", Value: pyast.Dict(choices...)})
		}
	} else {
		values, kb = answerOptions(n, d.ResponseOptions)
	}
	if kb.expr == "" {
		if kb, err = s.keyboard(n, d.Keyboard); err != nil {
			return err
		}
	}

	body := []pyast.Stmt{pyast.Assign{Target: "spec", Value: pyast.Dict(items...)}}
	if len(values) > 0 {
		body = append(body,
			pyast.Assign{Target: "answers", Value: pyast.Dict(values...)},
			pyast.If{Branches: []pyast.Branch{{
				Cond: "ctx.callback_query is not None and ctx.text.startswith(" + pyast.Str(answerPrefix) + ")",
				Body: []pyast.Stmt{
					pyast.Assign{Target: "value", Value: "answers.get(ctx.text[" + pyast.Int(int64(len(answerPrefix))) + ":])"},
					pyast.If{Branches: []pyast.Branch{{
						Cond: "value is not None",
						Body: []pyast.Stmt{
							pyast.Line("await complete_input(ctx, spec, value)"),
							pyast.Return{},
						},
					}}},
				},
			}}},
		)
	}

	prompt := d.InputPrompt
	if strings.TrimSpace(prompt) == "" {
		prompt = s.ctx.Text(d.MessageText, "input.prompt")
	}
	primary := append([]pyast.Stmt{}, warnings...)
	primary = append(primary, kb.warnings...)
	primary = append(primary,
		pyast.Assign{Target: "pending_input[ctx.user_id]", Value: "dict(spec)"},
		sendText(prompt, kb, parseMode(d.FormatMode)),
	)

	flow, err := s.messageFlow(n, &d.MessageBase, primary, nil)
	if err != nil {
		return err
	}
	s.routine(n, append(body, flow...))
	s.callbackTrigger(n)
	s.expandSynonyms(n, scope{})
	return nil
}
