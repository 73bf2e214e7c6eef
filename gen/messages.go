package gen

import (
	"sort"
	"strings"
)

// ============================================================================
// User facing texts
// ============================================================================
//
// Every text the generated bot can say without it being configured on a node
// has a message key. Keys are either global ("error.not_found") or scoped to
// a node type ("pin_message.success"). Options.TemplateOverrides replaces
// them by key; a text set on the node itself always wins.

// Error tiers of the generated action guards.
const (
	tierNotFound   = "not_found"
	tierForbidden  = "forbidden"
	tierGeneric    = "generic"
	tierUnexpected = "unexpected"
)

var defaultMessages = map[string]string{
	"error.not_found":  "❌ Объект не найден",
	"error.forbidden":  "❌ У бота недостаточно прав для этого действия",
	"error.generic":    "❌ Не удалось выполнить действие",
	"error.unexpected": "⚠️ Произошла непредвиденная ошибка, попробуйте позже",

	"target.message": "↩️ Ответьте на сообщение или укажите его ID",
	"target.user":    "↩️ Ответьте на сообщение пользователя или укажите его ID",

	"access.group_only":   "⚠️ Эта команда работает только в группах",
	"access.admin_only":   "⛔ Эта команда доступна только администраторам",
	"access.private_only": "⚠️ Эта команда работает только в личных сообщениях",

	"moderation.reason":       "Нарушение правил группы",
	"moderation.reason_label": "Причина",

	"start.text":      "👋 Добро пожаловать!",
	"command.text":    "✅ Команда выполнена",
	"message.text":    "💬 Сообщение",
	"media.not_found": "❌ Файл недоступен",
	"media.missing":   "⚠️ Файл не настроен",
	"contact.name":    "Контакт",
	"location.title":  "📍 Местоположение",

	"input.prompt":  "✏️ Введите ответ:",
	"input.retry":   "❌ Неверный формат ответа, попробуйте ещё раз",
	"input.gave_up": "⚠️ Слишком много неудачных попыток, ввод отменён",
	"input.saved":   "✅ Ответ сохранён",

	"multi_select.text":     "Выберите подходящие варианты:",
	"multi_select.continue": "Готово ➡️",
	"multi_select.min":      "⚠️ Выберите не меньше {min}",
	"multi_select.saved":    "✅ Выбор сохранён",

	"pin_message.success":       "✅ Сообщение закреплено",
	"pin_message.not_found":     "❌ Сообщение не найдено",
	"pin_message.forbidden":     "❌ У бота нет прав на закрепление сообщений",
	"unpin_message.success":     "✅ Сообщение откреплено",
	"unpin_message.success_all": "✅ Все сообщения откреплены",
	"unpin_message.not_found":   "❌ Сообщение не найдено",
	"unpin_message.forbidden":   "❌ У бота нет прав на открепление сообщений",
	"delete_message.success":    "🗑️ Сообщение удалено",
	"delete_message.not_found":  "❌ Сообщение не найдено или уже удалено",
	"delete_message.forbidden":  "❌ У бота нет прав на удаление сообщений",

	"ban_user.success":      "🚫 Пользователь заблокирован",
	"ban_user.not_found":    "❌ Пользователь не найден",
	"ban_user.forbidden":    "❌ У бота нет прав на блокировку пользователей",
	"unban_user.success":    "✅ Пользователь разблокирован",
	"unban_user.not_found":  "❌ Пользователь не найден",
	"unban_user.forbidden":  "❌ У бота нет прав на разблокировку пользователей",
	"mute_user.success":     "🔇 Пользователь заглушён",
	"mute_user.not_found":   "❌ Пользователь не найден",
	"mute_user.forbidden":   "❌ У бота нет прав на ограничение пользователей",
	"unmute_user.success":   "🔊 Ограничения сняты",
	"unmute_user.not_found": "❌ Пользователь не найден",
	"unmute_user.forbidden": "❌ У бота нет прав на снятие ограничений",
	"kick_user.success":     "👢 Пользователь исключён из группы",
	"kick_user.not_found":   "❌ Пользователь не найден",
	"kick_user.forbidden":   "❌ У бота нет прав на исключение пользователей",

	"promote_user.success":   "⭐ Пользователь назначен администратором",
	"promote_user.not_found": "❌ Пользователь не найден",
	"promote_user.forbidden": "❌ У бота нет прав на назначение администраторов",
	"demote_user.success":    "⬇️ Права администратора сняты",
	"demote_user.not_found":  "❌ Пользователь не найден",
	"demote_user.forbidden":  "❌ У бота нет прав на изменение администраторов",
	"admin_rights.success":   "🛡️ Права администратора обновлены",
	"admin_rights.not_found": "❌ Пользователь не найден",
	"admin_rights.forbidden": "❌ У бота нет прав на изменение администраторов",
}

// DefaultMessages returns a copy of the built-in texts keyed by message key.
func DefaultMessages() map[string]string {
	out := make(map[string]string, len(defaultMessages))
	for k, v := range defaultMessages {
		out[k] = v
	}
	return out
}

// MessageKeys returns every message key in sorted order.
func MessageKeys() []string {
	keys := make([]string, 0, len(defaultMessages))
	for k := range defaultMessages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// texts resolves message keys against overrides and defaults.
type texts struct {
	overrides map[string]string
}

// get returns the override for key, or the built-in default.
func (t texts) get(key string) string {
	if v, ok := t.overrides[key]; ok && v != "" {
		return v
	}
	return defaultMessages[key]
}

// text returns nodeText when the node sets one, otherwise get(key).
func (t texts) text(nodeText, key string) string {
	if strings.TrimSpace(nodeText) != "" {
		return nodeText
	}
	return t.get(key)
}

// errorText resolves one guard tier: a scoped override, then the global
// override, then the scoped default, then the global default.
func (t texts) errorText(scope, tier string) string {
	scoped, global := scope+"."+tier, "error."+tier
	if v, ok := t.overrides[scoped]; ok && v != "" {
		return v
	}
	if v, ok := t.overrides[global]; ok && v != "" {
		return v
	}
	if v, ok := defaultMessages[scoped]; ok {
		return v
	}
	return defaultMessages[global]
}
