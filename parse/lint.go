package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mxkacsa/botgen/ast"
)

// Lint reports findings that generate a working but probably unintended
// program. Warnings are returned in node order.
func Lint(g *ast.Graph) []Warning {
	var out []Warning
	warn := func(id, msg string) {
		out = append(out, Warning{NodeID: id, Message: msg})
	}

	incoming := make(map[string]bool, len(g.Nodes))
	for _, c := range g.WithAutoConnections() {
		incoming[c.Target] = true
	}
	for i := range g.Nodes {
		for _, target := range referencedTargets(&g.Nodes[i]) {
			incoming[target] = true
		}
	}

	commands := commandNodes(g)

	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Data == nil {
			continue
		}

		for _, data := range callbackPayloads(n, commands) {
			if len(data) > MaxCallbackData {
				warn(n.ID, fmt.Sprintf("callback data %q is %d bytes; Telegram accepts at most %d", data, len(data), MaxCallbackData))
			}
		}

		if list, ok := ast.SynonymsOf(n); ok && list != nil && len(*list) == 0 && isActionKind(n.Type) {
			warn(n.ID, "synonyms are explicitly empty; only the slash command and buttons trigger this node")
		}

		if base := messageBase(n.Data); base != nil {
			if base.EnableConditionalMessages && len(base.ConditionalMessages) == 0 {
				warn(n.ID, "conditional messages are enabled but none are defined")
			}
			if base.EnableAutoTransition && base.AutoTransitionTo == "" {
				warn(n.ID, "auto transition is enabled without a target")
			}
		}

		switch d := n.Data.(type) {
		case *ast.MediaData:
			if d.FileID == "" && d.Source() == "" && d.MediaVariable == "" && len(d.AttachedMedia) == 0 {
				warn(n.ID, "no media source configured")
			}
		case *ast.MultiSelectData:
			if len(d.Buttons) == 0 {
				warn(n.ID, "multi-select without options")
			}
		case *ast.CommandData:
			if strings.TrimSpace(d.Command) == "" {
				warn(n.ID, "command node without a command")
			}
		case *ast.ConditionalData:
			if len(d.ConditionalMessages) == 0 && strings.TrimSpace(d.MessageText) == "" {
				warn(n.ID, "conditional node without conditions or fallback text")
			}
		}

		if n.Type != ast.NodeStart && n.Type != ast.NodeCommand && !incoming[n.ID] && !isActionKind(n.Type) {
			if list, ok := ast.SynonymsOf(n); !ok || list == nil || len(*list) == 0 {
				warn(n.ID, "unreachable: no incoming connection, command or synonym")
			}
		}
	}
	return out
}

// isActionKind reports whether a kind has a slash command and default
// synonyms of its own.
func isActionKind(t ast.NodeType) bool {
	switch t {
	case ast.NodePinMessage, ast.NodeUnpinMessage, ast.NodeDeleteMessage,
		ast.NodeBanUser, ast.NodeUnbanUser, ast.NodeMuteUser, ast.NodeUnmuteUser, ast.NodeKickUser,
		ast.NodePromoteUser, ast.NodeDemoteUser, ast.NodeAdminRights:
		return true
	}
	return false
}

// referencedTargets lists the node ids n can jump to outside drawn edges.
func referencedTargets(n *ast.Node) []string {
	var out []string
	base := messageBase(n.Data)
	if base == nil {
		return nil
	}
	for _, b := range base.Buttons {
		out = append(out, b.Target)
	}
	for _, m := range base.ConditionalMessages {
		for _, b := range m.Buttons {
			out = append(out, b.Target)
		}
		out = append(out, m.NextNodeAfterInput)
	}
	switch d := n.Data.(type) {
	case *ast.InputData:
		out = append(out, d.InputTargetNodeID)
	case *ast.MultiSelectData:
		out = append(out, d.ContinueButtonTarget)
	}
	return out
}

// MaxCallbackData is the Telegram limit on inline button callback data, in
// bytes.
const MaxCallbackData = 64

// commandNodes maps lowercased slash commands to the node handling them.
func commandNodes(g *ast.Graph) map[string]string {
	out := make(map[string]string)
	for i := range g.Nodes {
		n := &g.Nodes[i]
		var cmd string
		switch d := n.Data.(type) {
		case *ast.StartData:
			cmd = d.Command
			if cmd == "" {
				cmd = "start"
			}
		case *ast.CommandData:
			cmd = d.Command
		default:
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(cmd), "/"))
		if _, ok := out[key]; !ok && key != "" {
			out[key] = n.ID
		}
	}
	return out
}

// callbackPayloads lists the callback data the generated program attaches
// to the inline buttons of n.
func callbackPayloads(n *ast.Node, commands map[string]string) []string {
	var out []string
	inline := func(buttons []ast.Button) {
		for _, b := range buttons {
			target := b.Target
			if b.Action == ast.ActionCommand {
				target = commands[strings.ToLower(strings.TrimPrefix(strings.TrimSpace(b.Target), "/"))]
			} else if b.Action != ast.ActionGoto {
				continue
			}
			if target == "" {
				continue
			}
			if b.SkipDataCollection {
				target += ":skip_input"
			}
			out = append(out, target)
		}
	}

	if base := messageBase(n.Data); base != nil {
		if base.KeyboardType == ast.KeyboardInline {
			inline(base.Buttons)
		}
		for _, m := range base.ConditionalMessages {
			if m.KeyboardType == ast.KeyboardInline {
				inline(m.Buttons)
			}
		}
	}

	switch d := n.Data.(type) {
	case *ast.InputData:
		if d.ResponseType != ast.ResponseText {
			for _, o := range d.ResponseOptions {
				if o.ID != "" && strings.TrimSpace(o.Text) != "" {
					out = append(out, n.ID+":answer:"+o.ID)
				}
			}
		}
	case *ast.MultiSelectData:
		var marked, all []string
		for i, b := range d.Buttons {
			if strings.TrimSpace(b.Text) == "" {
				continue
			}
			id := b.ID
			if id == "" {
				id = strconv.Itoa(i + 1)
			}
			all = append(all, n.ID+":toggle:"+id)
			if b.Action == ast.ActionSelection {
				marked = append(marked, n.ID+":toggle:"+id)
			}
		}
		if len(marked) > 0 {
			all = marked
		}
		out = append(out, all...)
		out = append(out, n.ID+":done")
	}
	return out
}
