package gen

import (
	"strings"

	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/pyast"
)

// ============================================================================
// Moderation Nodes - ban, unban, mute, unmute, kick
// ============================================================================

const defaultMuteSeconds = 3600

func init() {
	registerUserNodes()
}

func registerUserNodes() {
	MustRegisterNode(NodeDefinition{
		Type:            ast.NodeBanUser,
		Category:        CategoryUsers,
		Description:     "Bans a user, permanently or until a date",
		DefaultSynonyms: []string{"забанить", "заблокировать", "бан"},
		Command:         "ban",
		GroupOnly:       true,
	})
	MustRegisterNode(NodeDefinition{
		Type:            ast.NodeUnbanUser,
		Category:        CategoryUsers,
		Description:     "Lifts a ban",
		DefaultSynonyms: []string{"разбанить", "разблокировать", "unban"},
		Command:         "unban",
		GroupOnly:       true,
	})
	MustRegisterNode(NodeDefinition{
		Type:            ast.NodeMuteUser,
		Category:        CategoryUsers,
		Description:     "Restricts a user for a duration",
		DefaultSynonyms: []string{"замутить", "заглушить", "мут"},
		Command:         "mute",
		GroupOnly:       true,
	})
	MustRegisterNode(NodeDefinition{
		Type:            ast.NodeUnmuteUser,
		Category:        CategoryUsers,
		Description:     "Restores a user's permissions",
		DefaultSynonyms: []string{"размутить", "разглушить", "анмут"},
		Command:         "unmute",
		GroupOnly:       true,
	})
	MustRegisterNode(NodeDefinition{
		Type:            ast.NodeKickUser,
		Category:        CategoryUsers,
		Description:     "Removes a user from the group without a lasting ban",
		DefaultSynonyms: []string{"кикнуть", "исключить", "выгнать"},
		Command:         "kick",
		GroupOnly:       true,
	})
}

// flag returns the literal of an optional flag.
func flag(v *bool, def bool) string {
	if v == nil {
		return pyast.Bool(def)
	}
	return pyast.Bool(*v)
}

// permissionsExpr builds a ChatPermissions value; unset flags take def.
func permissionsExpr(p ast.ChatPermissions, def bool) string {
	return pyast.Call("ChatPermissions",
		pyast.Kw("can_send_messages", flag(p.CanSendMessages, def)),
		pyast.Kw("can_send_audios", flag(p.CanSendAudios, def)),
		pyast.Kw("can_send_documents", flag(p.CanSendDocuments, def)),
		pyast.Kw("can_send_photos", flag(p.CanSendPhotos, def)),
		pyast.Kw("can_send_videos", flag(p.CanSendVideos, def)),
		pyast.Kw("can_send_polls", flag(p.CanSendPolls, def)),
		pyast.Kw("can_send_other_messages", flag(p.CanSendOtherMessages, def)),
		pyast.Kw("can_add_web_page_previews", flag(p.CanAddWebPagePreviews, def)),
		pyast.Kw("can_change_info", flag(p.CanChangeInfo, def)),
		pyast.Kw("can_invite_users", flag(p.CanInviteUsers, def)),
		pyast.Kw("can_pin_messages", flag(p.CanPinMessages, def)),
	)
}

// withReason appends the reason line to a moderation confirmation.
func (s *synthesizer) withReason(text, reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = s.ctx.Message("moderation.reason")
	}
	return text + "\n" + s.ctx.Message("moderation.reason_label") + ": " + reason
}

func (s *synthesizer) VisitBanUser(n *ast.Node, d *ast.BanUserData) error {
	args := []string{pyast.Kw("user_id", "user_id")}
	if d.UntilDate > 0 {
		args = append(args, pyast.Kw("until_date",
			pyast.Call("datetime.fromtimestamp", pyast.Int(d.UntilDate), pyast.Kw("tz", "timezone.utc"))))
	}
	if d.RevokeMessages {
		args = append(args, pyast.Kw("revoke_messages", "True"))
	}
	body := append(s.resolveUser(d.UserTarget),
		s.guard(n, string(n.Type),
			botCall("ban_chat_member", args...),
			replyLine(s.withReason(s.success(n, &d.ActionBase), d.Reason)),
		))
	s.actionNode(n, &d.ActionBase, body)
	return nil
}

func (s *synthesizer) VisitUnbanUser(n *ast.Node, d *ast.UnbanUserData) error {
	body := append(s.resolveUser(d.UserTarget),
		s.guard(n, string(n.Type),
			botCall("unban_chat_member",
				pyast.Kw("user_id", "user_id"),
				pyast.Kw("only_if_banned", flag(d.OnlyIfBanned, true))),
			replyLine(s.success(n, &d.ActionBase)),
		))
	s.actionNode(n, &d.ActionBase, body)
	return nil
}

func (s *synthesizer) VisitMuteUser(n *ast.Node, d *ast.MuteUserData) error {
	seconds := d.Duration
	if seconds <= 0 {
		seconds = defaultMuteSeconds
	}
	until := "datetime.now(timezone.utc) + " + pyast.Call("timedelta", pyast.Kw("seconds", pyast.Int(seconds)))

	body := append(s.resolveUser(d.UserTarget),
		s.guard(n, string(n.Type),
			botCall("restrict_chat_member",
				pyast.Kw("user_id", "user_id"),
				pyast.Kw("permissions", permissionsExpr(d.ChatPermissions, false)),
				pyast.Kw("until_date", until)),
			replyLine(s.withReason(s.success(n, &d.ActionBase), d.Reason)),
		))
	s.actionNode(n, &d.ActionBase, body)
	return nil
}

func (s *synthesizer) VisitUnmuteUser(n *ast.Node, d *ast.UnmuteUserData) error {
	body := append(s.resolveUser(d.UserTarget),
		s.guard(n, string(n.Type),
			botCall("restrict_chat_member",
				pyast.Kw("user_id", "user_id"),
				pyast.Kw("permissions", permissionsExpr(d.ChatPermissions, true))),
			replyLine(s.success(n, &d.ActionBase)),
		))
	s.actionNode(n, &d.ActionBase, body)
	return nil
}

// VisitKickUser bans and immediately unbans, so the user may rejoin.
func (s *synthesizer) VisitKickUser(n *ast.Node, d *ast.KickUserData) error {
	body := append(s.resolveUser(d.UserTarget),
		s.guard(n, string(n.Type),
			botCall("ban_chat_member", pyast.Kw("user_id", "user_id")),
			botCall("unban_chat_member", pyast.Kw("user_id", "user_id"), pyast.Kw("only_if_banned", "True")),
			replyLine(s.withReason(s.success(n, &d.ActionBase), d.Reason)),
		))
	s.actionNode(n, &d.ActionBase, body)
	return nil
}
