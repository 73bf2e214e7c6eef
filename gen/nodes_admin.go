package gen

import (
	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/pyast"
)

// ============================================================================
// Administration Nodes - promote, demote, admin_rights
// ============================================================================

func init() {
	registerAdminNodes()
}

func registerAdminNodes() {
	MustRegisterNode(NodeDefinition{
		Type:            ast.NodePromoteUser,
		Category:        CategoryAdmin,
		Description:     "Makes a user an administrator with the configured rights",
		DefaultSynonyms: []string{"повысить", "сделать админом", "назначить администратором"},
		Command:         "promote",
		GroupOnly:       true,
	})
	MustRegisterNode(NodeDefinition{
		Type:            ast.NodeDemoteUser,
		Category:        CategoryAdmin,
		Description:     "Removes administrator rights",
		DefaultSynonyms: []string{"понизить", "снять с админки", "убрать из админов"},
		Command:         "demote",
		GroupOnly:       true,
	})
	MustRegisterNode(NodeDefinition{
		Type:            ast.NodeAdminRights,
		Category:        CategoryAdmin,
		Description:     "Applies a complete administrator rights set",
		DefaultSynonyms: []string{"права", "изменить права", "админ права"},
		Command:         "admin_rights",
		GroupOnly:       true,
	})
}

type rightFlag struct {
	name string
	v    *bool
}

// rightFlags lists the rights in Bot API order.
func rightFlags(r ast.AdminRights) []rightFlag {
	return []rightFlag{
		{"is_anonymous", r.IsAnonymous},
		{"can_manage_chat", r.CanManageChat},
		{"can_delete_messages", r.CanDeleteMessages},
		{"can_manage_video_chats", r.CanManageVideoChats},
		{"can_restrict_members", r.CanRestrictMembers},
		{"can_promote_members", r.CanPromoteMembers},
		{"can_change_info", r.CanChangeInfo},
		{"can_invite_users", r.CanInviteUsers},
		{"can_pin_messages", r.CanPinMessages},
		{"can_manage_topics", r.CanManageTopics},
	}
}

// rightsArgs are the keyword arguments of promote_chat_member. defaults
// names the flags that are on when unset.
func rightsArgs(r ast.AdminRights, defaults map[string]bool) []string {
	flags := rightFlags(r)
	args := make([]string, len(flags))
	for i, f := range flags {
		args[i] = pyast.Kw(f.name, flag(f.v, defaults[f.name]))
	}
	return args
}

// adminRightsDefaults are the rights admin_rights grants when unset.
var adminRightsDefaults = map[string]bool{
	"can_delete_messages":  true,
	"can_restrict_members": true,
	"can_invite_users":     true,
	"can_pin_messages":     true,
}

func (s *synthesizer) VisitPromoteUser(n *ast.Node, d *ast.PromoteUserData) error {
	actions := []pyast.Stmt{
		botCall("promote_chat_member", append([]string{pyast.Kw("user_id", "user_id")}, rightsArgs(d.AdminRights, nil)...)...),
	}
	if d.CustomTitle != "" {
		actions = append(actions, botCall("set_chat_administrator_custom_title",
			pyast.Kw("user_id", "user_id"),
			pyast.Kw("custom_title", pyast.Str(d.CustomTitle))))
	}
	actions = append(actions, replyLine(s.success(n, &d.ActionBase)))

	body := append(s.resolveUser(d.UserTarget), s.guard(n, string(n.Type), actions...))
	s.actionNode(n, &d.ActionBase, body)
	return nil
}

// VisitDemoteUser revokes every right unless the node keeps some explicitly.
func (s *synthesizer) VisitDemoteUser(n *ast.Node, d *ast.DemoteUserData) error {
	body := append(s.resolveUser(d.UserTarget),
		s.guard(n, string(n.Type),
			botCall("promote_chat_member", append([]string{pyast.Kw("user_id", "user_id")}, rightsArgs(d.AdminRights, nil)...)...),
			replyLine(s.success(n, &d.ActionBase)),
		))
	s.actionNode(n, &d.ActionBase, body)
	return nil
}

func (s *synthesizer) VisitAdminRights(n *ast.Node, d *ast.AdminRightsData) error {
	flags := rightFlags(d.AdminRights)
	items := make([]pyast.Item, len(flags))
	for i, f := range flags {
		items[i] = pyast.Item{Key: f.name, Value: flag(f.v, adminRightsDefaults[f.name])}
	}

	body := append(s.resolveUser(d.UserTarget),
		s.guard(n, string(n.Type),
			pyast.Line(pyast.Await(pyast.Call("apply_admin_rights", "chat_id", "user_id", pyast.Dict(items...)))),
			replyLine(s.success(n, &d.ActionBase)),
		))
	s.actionNode(n, &d.ActionBase, body)
	return nil
}
