package gen

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/pyast"
)

// ============================================================================
// Message Nodes - start, commands, text, media, location, contact
// ============================================================================
//
// Message-like nodes share one flow:
//
//	conditional chain (when enabled) or the primary content
//	follow-up statements of the kind
//	auto transition (when enabled)
//
// Message kinds have no default synonyms; explicit synonyms still register
// text handlers.

func init() {
	registerMessageNodes()
}

func registerMessageNodes() {
	MustRegisterNode(NodeDefinition{
		Type:        ast.NodeStart,
		Category:    CategoryMessages,
		Description: "Entry point bound to /start; marks the user as visited",
	})
	MustRegisterNode(NodeDefinition{
		Type:        ast.NodeCommand,
		Category:    CategoryMessages,
		Description: "Slash command with optional menu entry and access gates",
	})
	MustRegisterNode(NodeDefinition{
		Type:        ast.NodeMessage,
		Category:    CategoryMessages,
		Description: "Text message with keyboard, attached media and conditions",
	})
	for _, t := range []ast.NodeType{ast.NodePhoto, ast.NodeVideo, ast.NodeAudio, ast.NodeDocument} {
		MustRegisterNode(NodeDefinition{
			Type:        t,
			Category:    CategoryMessages,
			Description: "Sends a " + string(t) + " from a URL, file id or media variable",
		})
	}
	MustRegisterNode(NodeDefinition{
		Type:        ast.NodeLocation,
		Category:    CategoryMessages,
		Description: "Sends a map point, or a venue when a title or address is set",
	})
	MustRegisterNode(NodeDefinition{
		Type:        ast.NodeContact,
		Category:    CategoryMessages,
		Description: "Sends a phone contact",
	})
}

// messageFlow wraps the primary statements of a message-like node with its
// conditional chain and appends the auto transition.
func (s *synthesizer) messageFlow(n *ast.Node, base *ast.MessageBase, primary, after []pyast.Stmt) ([]pyast.Stmt, error) {
	var body []pyast.Stmt
	if base.EnableConditionalMessages && len(base.ConditionalMessages) > 0 {
		name, err := s.compileConditions(n, base.ConditionalMessages, parseMode(base.FormatMode), nil)
		if err != nil {
			return nil, err
		}
		body = append(body, pyast.If{Branches: []pyast.Branch{{
			Cond: "not await " + pyast.Call(name, "ctx"),
			Body: primary,
		}}})
	} else {
		body = append(body, primary...)
	}
	body = append(body, after...)

	auto, err := s.autoTransition(n)
	if err != nil {
		return nil, err
	}
	return append(body, auto...), nil
}

// autoTransition jumps to the configured target right after the message,
// marking the context so the target can tell it was not a user action.
func (s *synthesizer) autoTransition(n *ast.Node) ([]pyast.Stmt, error) {
	at, ok := ast.AutoTransitionOf(n)
	if !ok {
		return nil, nil
	}
	valid, err := s.ctx.checkTarget(n, at.AutoTransitionTo, "autoTransitionTo")
	if err != nil {
		return nil, err
	}
	if !valid {
		return []pyast.Stmt{missingTarget(n.ID, at.AutoTransitionTo)}, nil
	}
	return []pyast.Stmt{
		pyast.Line(pyast.Await(pyast.Call("go_to_node", pyast.Str(at.AutoTransitionTo), "ctx", pyast.Kw("auto", "True")))),
	}, nil
}

// showMessage sends the node text with its keyboard, then attached media.
func (s *synthesizer) showMessage(n *ast.Node, base *ast.MessageBase, textKey string) ([]pyast.Stmt, error) {
	kb, err := s.keyboard(n, base.Keyboard)
	if err != nil {
		return nil, err
	}
	stmts := append([]pyast.Stmt{}, kb.warnings...)
	stmts = append(stmts, sendText(s.ctx.Text(base.MessageText, textKey), kb, parseMode(base.FormatMode)))
	return append(stmts, s.attachedMedia(n, base.AttachedMedia)...), nil
}

// attachedMedia sends every attached media variable after the message.
func (s *synthesizer) attachedMedia(n *ast.Node, names []string) []pyast.Stmt {
	var sends, warnings []pyast.Stmt
	for _, name := range names {
		asset, ok := s.ctx.Media[name]
		src := ""
		if ok {
			src = assetExpr(asset, "")
		}
		if src == "" {
			warnings = append(warnings, pyast.Line(pyast.Call("logger.warning",
				pyast.Str("Node %s: media %s is not configured"), pyast.Str(n.ID), pyast.Str(name))))
			continue
		}
		method, param := assetMethod(asset.Kind)
		sends = append(sends, pyast.Line(pyast.Await(pyast.Call("bot."+method,
			pyast.Kw("chat_id", "ctx.chat_id"), pyast.Kw(param, src)))))
	}
	if len(sends) == 0 {
		return warnings
	}
	return append(warnings, s.guard(n, "media", sends...))
}

// assetExpr returns the file expression of a stored asset: file id, URL or
// local path, in that order. filename names downloaded documents.
func assetExpr(a ast.MediaAsset, filename string) string {
	switch {
	case a.FileID != "":
		return pyast.Str(a.FileID)
	case a.URL != "":
		return urlExpr(a.URL, filename)
	case a.FilePath != "":
		return pyast.Call("FSInputFile", pyast.Str(a.FilePath))
	}
	return ""
}

func urlExpr(url, filename string) string {
	if filename == "" {
		return pyast.Str(url)
	}
	return pyast.Call("URLInputFile", pyast.Str(url), pyast.Kw("filename", pyast.Str(filename)))
}

// assetMethod maps an asset kind to the Bot method and its file parameter.
func assetMethod(kind string) (string, string) {
	switch strings.ToLower(kind) {
	case "photo", "image":
		return "send_photo", "photo"
	case "video":
		return "send_video", "video"
	case "audio":
		return "send_audio", "audio"
	}
	return "send_document", "document"
}

// commandGates are the access checks of a command handler.
func commandGates(cb ast.CommandBase) []pyast.Stmt {
	var gates []pyast.Stmt
	if cb.IsPrivateOnly {
		gates = append(gates, privateGate())
	}
	if cb.AdminOnly {
		gates = append(gates, adminGate())
	}
	return gates
}

func (s *synthesizer) VisitStart(n *ast.Node, d *ast.StartData) error {
	primary, err := s.showMessage(n, &d.MessageBase, "start.text")
	if err != nil {
		return err
	}
	var body []pyast.Stmt
	if s.ctx.UserDatabaseEnabled {
		body = append(body, pyast.Line("await register_user(ctx.user)"))
	}
	flow, err := s.messageFlow(n, &d.MessageBase, primary, []pyast.Stmt{pyast.Line("mark_visited(ctx.user_id)")})
	if err != nil {
		return err
	}

	s.routine(n, append(body, flow...))
	s.callbackTrigger(n)
	s.commandTrigger(n, "start", scope{}, commandGates(d.CommandBase))
	s.expandSynonyms(n, scope{})
	return nil
}

func (s *synthesizer) VisitCommand(n *ast.Node, d *ast.CommandData) error {
	primary, err := s.showMessage(n, &d.MessageBase, "command.text")
	if err != nil {
		return err
	}
	body, err := s.messageFlow(n, &d.MessageBase, primary, nil)
	if err != nil {
		return err
	}

	s.routine(n, body)
	s.callbackTrigger(n)
	if cmd := commandName(d.Command, ""); cmd != "" {
		s.commandTrigger(n, cmd, scope{}, commandGates(d.CommandBase))
	} else {
		s.ctx.log.Debug("command node without command", zap.String("node_id", n.ID))
	}
	s.expandSynonyms(n, scope{})
	return nil
}

func (s *synthesizer) VisitMessage(n *ast.Node, d *ast.MessageData) error {
	primary, err := s.showMessage(n, &d.MessageBase, "message.text")
	if err != nil {
		return err
	}
	body, err := s.messageFlow(n, &d.MessageBase, primary, nil)
	if err != nil {
		return err
	}

	s.routine(n, body)
	s.callbackTrigger(n)
	s.expandSynonyms(n, scope{})
	return nil
}

// mediaSource picks the file of a media node: explicit file id, the kind's
// URL, the media variable, then the first attached asset.
func (s *synthesizer) mediaSource(d *ast.MediaData) string {
	filename := ""
	if d.Kind == ast.NodeDocument {
		filename = d.DocumentName
	}
	if d.FileID != "" {
		return pyast.Str(d.FileID)
	}
	if url := d.Source(); url != "" {
		return urlExpr(url, filename)
	}
	names := append([]string{}, d.AttachedMedia...)
	if d.MediaVariable != "" {
		names = append([]string{d.MediaVariable}, names...)
	}
	for _, name := range names {
		if asset, ok := s.ctx.Media[name]; ok {
			if expr := assetExpr(asset, filename); expr != "" {
				return expr
			}
		}
	}
	return ""
}

func (s *synthesizer) VisitMedia(n *ast.Node, d *ast.MediaData) error {
	kb, err := s.keyboard(n, d.Keyboard)
	if err != nil {
		return err
	}
	method, param := assetMethod(string(d.Kind))

	primary := append([]pyast.Stmt{}, kb.warnings...)
	if src := s.mediaSource(d); src != "" {
		args := []string{pyast.Kw("chat_id", "ctx.chat_id"), pyast.Kw(param, src)}
		if strings.TrimSpace(d.MessageText) != "" {
			args = append(args, pyast.Kw("caption", pyast.Str(d.MessageText)))
			if mode := parseMode(d.FormatMode); mode != "" {
				args = append(args, pyast.Kw("parse_mode", pyast.Str(mode)))
			}
		}
		if kb.expr != "" {
			args = append(args, pyast.Kw("reply_markup", kb.expr))
		}
		primary = append(primary, s.guard(n, "media", pyast.Line(pyast.Await(pyast.Call("bot."+method, args...)))))
	} else {
		primary = append(primary,
			pyast.Line(pyast.Call("logger.warning", pyast.Str("Node %s: no media configured"), pyast.Str(n.ID))),
			pyast.Line(pyast.Await(pyast.Call("ctx.reply", pyast.Str(s.ctx.Message("media.missing"))))),
		)
	}

	body, err := s.messageFlow(n, &d.MessageBase, primary, nil)
	if err != nil {
		return err
	}
	s.routine(n, body)
	s.callbackTrigger(n)
	s.expandSynonyms(n, scope{})
	return nil
}

// captionLine sends the optional text shown before a location or contact.
func captionLine(base *ast.MessageBase) []pyast.Stmt {
	if strings.TrimSpace(base.MessageText) == "" {
		return nil
	}
	args := []string{pyast.Str(base.MessageText)}
	if mode := parseMode(base.FormatMode); mode != "" {
		args = append(args, pyast.Kw("parse_mode", pyast.Str(mode)))
	}
	return []pyast.Stmt{pyast.Line(pyast.Await(pyast.Call("ctx.reply", args...)))}
}

func (s *synthesizer) VisitLocation(n *ast.Node, d *ast.LocationData) error {
	kb, err := s.keyboard(n, d.Keyboard)
	if err != nil {
		return err
	}

	method := "send_location"
	args := []string{
		pyast.Kw("chat_id", "ctx.chat_id"),
		pyast.Kw("latitude", pyast.Float(d.Latitude)),
		pyast.Kw("longitude", pyast.Float(d.Longitude)),
	}
	if d.Title != "" || d.Address != "" {
		method = "send_venue"
		args = append(args,
			pyast.Kw("title", pyast.Str(s.ctx.Text(d.Title, "location.title"))),
			pyast.Kw("address", pyast.Str(d.Address)))
	}
	if kb.expr != "" {
		args = append(args, pyast.Kw("reply_markup", kb.expr))
	}

	primary := append([]pyast.Stmt{}, kb.warnings...)
	primary = append(primary, s.guard(n, "location",
		append(captionLine(&d.MessageBase), pyast.Line(pyast.Await(pyast.Call("bot."+method, args...))))...))

	body, err := s.messageFlow(n, &d.MessageBase, primary, nil)
	if err != nil {
		return err
	}
	s.routine(n, body)
	s.callbackTrigger(n)
	s.expandSynonyms(n, scope{})
	return nil
}

func (s *synthesizer) VisitContact(n *ast.Node, d *ast.ContactData) error {
	kb, err := s.keyboard(n, d.Keyboard)
	if err != nil {
		return err
	}

	args := []string{
		pyast.Kw("chat_id", "ctx.chat_id"),
		pyast.Kw("phone_number", pyast.Str(d.PhoneNumber)),
		pyast.Kw("first_name", pyast.Str(s.ctx.Text(d.FirstName, "contact.name"))),
	}
	if d.LastName != "" {
		args = append(args, pyast.Kw("last_name", pyast.Str(d.LastName)))
	}
	if kb.expr != "" {
		args = append(args, pyast.Kw("reply_markup", kb.expr))
	}

	primary := append([]pyast.Stmt{}, kb.warnings...)
	primary = append(primary, s.guard(n, "contact",
		append(captionLine(&d.MessageBase), pyast.Line(pyast.Await(pyast.Call("bot.send_contact", args...))))...))

	body, err := s.messageFlow(n, &d.MessageBase, primary, nil)
	if err != nil {
		return err
	}
	s.routine(n, body)
	s.callbackTrigger(n)
	s.expandSynonyms(n, scope{})
	return nil
}
