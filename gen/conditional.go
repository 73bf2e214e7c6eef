package gen

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/pyast"
)

// orderConditions returns the entries sorted by descending priority. Equal
// priorities keep their input order.
func orderConditions(entries []ast.ConditionalMessage) []ast.ConditionalMessage {
	out := append([]ast.ConditionalMessage(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}

// conditionExpr compiles the test of one conditional message against the
// user's stored variables.
func conditionExpr(m ast.ConditionalMessage) string {
	switch m.Condition {
	case ast.ConditionFirstTime:
		return "is_first_visit(ctx.user_id)"
	case ast.ConditionReturning:
		return "not is_first_visit(ctx.user_id)"
	}

	var vars []string
	for _, v := range m.VariableNames {
		if v = strings.TrimSpace(v); v != "" {
			vars = append(vars, v)
		}
	}
	if len(vars) == 0 {
		return "False"
	}

	parts := make([]string, 0, len(vars))
	for _, v := range vars {
		name := pyast.Str(v)
		switch m.Condition {
		case ast.ConditionExists:
			parts = append(parts, pyast.Call("has_user_var", "ctx.user_id", name))
		case ast.ConditionNotExists:
			parts = append(parts, "not "+pyast.Call("has_user_var", "ctx.user_id", name))
		case ast.ConditionEquals:
			parts = append(parts, pyast.Call("user_var_equals", "ctx.user_id", name, pyast.Str(m.ExpectedValue)))
		case ast.ConditionContains:
			parts = append(parts, pyast.Call("user_var_contains", "ctx.user_id", name, pyast.Str(m.ExpectedValue)))
		default:
			return "False"
		}
	}

	op := "and"
	if strings.EqualFold(string(m.LogicOperator), string(ast.LogicOr)) {
		op = "or"
	}
	return pyast.Join(op, parts...)
}

// compileConditions adds the conditional fragment of n and returns the name
// of the routine it defines. The routine shows the first matching message,
// highest priority first, and returns True when it showed something. The
// fallback body becomes the else branch; nil means no fallback.
func (s *synthesizer) compileConditions(n *ast.Node, entries []ast.ConditionalMessage, mode string, fallback []pyast.Stmt) (string, error) {
	name := s.ctx.Func("conditional_" + s.ctx.Stem(n.ID))
	ordered := orderConditions(entries)

	branches := make([]pyast.Branch, 0, len(ordered))
	for _, m := range ordered {
		body, err := s.conditionalBranch(n, m, mode)
		if err != nil {
			return "", err
		}
		branches = append(branches, pyast.Branch{Cond: conditionExpr(m), Body: body})
	}

	chain := pyast.If{Branches: branches}
	var body []pyast.Stmt
	if fallback != nil {
		chain.Else = append(append([]pyast.Stmt{}, fallback...), pyast.Return{Value: "True"})
		body = []pyast.Stmt{chain}
	} else {
		body = []pyast.Stmt{chain, pyast.Return{Value: "False"}}
	}

	s.ctx.log.Debug("conditional chain",
		zap.String("node_id", n.ID),
		zap.Int("branches", len(branches)),
		zap.Bool("fallback", fallback != nil))

	s.add(n, FragmentConditional, pyast.Def{
		Name:   name,
		Params: []string{"ctx"},
		Async:  true,
		Doc:    "Conditional messages of node " + n.ID + ", highest priority first.",
		Body:   body,
	})
	return name, nil
}

// conditionalBranch shows one conditional message and optionally waits for
// a text reply routed to a variable and a next node.
func (s *synthesizer) conditionalBranch(n *ast.Node, m ast.ConditionalMessage, mode string) ([]pyast.Stmt, error) {
	kb, err := s.keyboard(n, ast.Keyboard{KeyboardType: m.KeyboardType, Buttons: m.Buttons})
	if err != nil {
		return nil, err
	}
	body := append([]pyast.Stmt{}, kb.warnings...)
	body = append(body, sendText(s.ctx.Text(m.MessageText, "message.text"), kb, mode))

	if m.WaitForTextInput {
		next := pyast.None
		if m.NextNodeAfterInput != "" {
			ok, err := s.ctx.checkTarget(n, m.NextNodeAfterInput, "conditional "+m.ID+" next node")
			if err != nil {
				return nil, err
			}
			if ok {
				next = pyast.Str(m.NextNodeAfterInput)
			} else {
				body = append(body, missingTarget(n.ID, m.NextNodeAfterInput))
			}
		}
		spec := pyast.Dict(
			pyast.Item{Key: "node_id", Value: pyast.Str(n.ID)},
			pyast.Item{Key: "variable", Value: pyast.OptStr(m.TextInputVariable)},
			pyast.Item{Key: "type", Value: pyast.Str(string(ast.InputAny))},
			pyast.Item{Key: "next", Value: next},
		)
		body = append(body, pyast.Assign{Target: "pending_input[ctx.user_id]", Value: spec})
	}
	return append(body, pyast.Return{Value: "True"}), nil
}
