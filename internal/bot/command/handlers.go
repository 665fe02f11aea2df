// Package command contains the stateless reply builders: given a session
// snapshot and content store query results, each handler produces the reply
// text and button menu. Handlers never mutate state and never talk to the
// network.
package command

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hrygo/contentmaker/internal/bot/session"
	"github.com/hrygo/contentmaker/plugin/telegram"
	"github.com/hrygo/contentmaker/store"
)

// Reply is one outbound message: text plus an optional inline keyboard.
type Reply struct {
	Text     string
	Keyboard *telegram.InlineKeyboardMarkup
}

// listLimit caps every idea listing to the most recent entries.
const listLimit = 10

// promptPreviewLen is the display truncation threshold for idea prompts.
const promptPreviewLen = 50

func Start() Reply {
	text := "🤖 Добро пожаловать в ContentMaker Bot!\n\n" +
		"Я помогу вам генерировать идеи для контента с помощью ИИ.\n\n" +
		"📝 Доступные команды:\n" +
		"/help - список всех команд\n" +
		"/list - последние 10 идей\n" +
		"/new - создать новую идею\n\n" +
		"Или просто напишите мне любой запрос, и я сгенерирую контент!"

	return Reply{Text: text, Keyboard: MainMenuKeyboard()}
}

func Help() Reply {
	text := "📖 Справка по командам:\n\n" +
		"/start - главное меню\n" +
		"/help - эта справка\n" +
		"/list - показать последние идеи\n" +
		"/new - создать новую идею\n" +
		"/settings - настройка AI\n\n" +
		"🎯 Типы контента:\n" +
		"• Посты для соцсетей\n" +
		"• Сценарии для Reels\n" +
		"• Идеи для Stories\n" +
		"• Хештеги\n" +
		"• Заголовки\n\n" +
		"💡 Просто опишите, что вам нужно, и я сгенерирую контент!"

	return Reply{Text: text}
}

// List renders the most recent ideas, newest first, capped at 10.
func List(ideas []*store.ContentIdea) Reply {
	if len(ideas) == 0 {
		return Reply{
			Text:     "📝 У вас пока нет сохраненных идей. Создайте первую!",
			Keyboard: MainMenuKeyboard(),
		}
	}

	recent := recentIdeas(ideas, listLimit)

	var b strings.Builder
	b.WriteString("📋 Ваши последние идеи:\n\n")
	for _, idea := range recent {
		fmt.Fprintf(&b, "%s ID: %d\n📝 %s\n🕒 %s\n\n",
			statusEmoji(idea.Status),
			idea.ID,
			promptPreview(idea.Prompt),
			time.Unix(idea.CreatedTs, 0).Format("02.01.2006 15:04"),
		)
	}

	return Reply{Text: b.String(), Keyboard: ideaManagementKeyboard(recent)}
}

// FilteredList renders ideas with the given status, newest first, capped at 10.
func FilteredList(status store.IdeaStatus, ideas []*store.ContentIdea) Reply {
	filtered := []*store.ContentIdea{}
	for _, idea := range ideas {
		if idea.Status == status {
			filtered = append(filtered, idea)
		}
	}
	filtered = recentIdeas(filtered, listLimit)

	if len(filtered) == 0 {
		return Reply{
			Text:     fmt.Sprintf("📝 У вас нет идей со статусом \"%s\"", statusName(status)),
			Keyboard: StatusManagementKeyboard(),
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Идеи со статусом \"%s\":\n\n", statusName(status))
	for _, idea := range filtered {
		fmt.Fprintf(&b, "%s ID: %d\n📝 %s\n🕒 %s\n\n",
			statusEmoji(idea.Status),
			idea.ID,
			promptPreview(idea.Prompt),
			time.Unix(idea.CreatedTs, 0).Format("02.01.06 15:04"),
		)
	}

	return Reply{Text: b.String(), Keyboard: ideaManagementKeyboard(filtered)}
}

func NewContent() Reply {
	return Reply{
		Text:     "🎯 Выберите тип контента для генерации:",
		Keyboard: ContentTypeKeyboard(),
	}
}

func Settings(settings session.AiSettings) Reply {
	text := fmt.Sprintf(
		"⚙️ Настройки AI\n\n🌍 Язык: %s\n📏 Длина: %s\n🎭 Стиль: %s\n\nВыберите, что хотите изменить:",
		settings.Language.DisplayName(),
		settings.Length.DisplayName(),
		settings.Style.DisplayName(),
	)
	return Reply{Text: text, Keyboard: SettingMenuKeyboard()}
}

// SettingsUpdated prefixes the refreshed settings overview with a
// confirmation line for the changed value.
func SettingsUpdated(confirmation string, settings session.AiSettings) Reply {
	reply := Settings(settings)
	reply.Text = confirmation + "\n\n" + reply.Text
	return reply
}

// EditRequest asks for a new request, reminding the user of the selected
// content type and the remembered request when present.
func EditRequest(sess session.ChatSession) Reply {
	var b strings.Builder
	b.WriteString("✏️ Изменение запроса\n\n")
	if sess.Scoped() {
		fmt.Fprintf(&b, "🎯 Тип контента: %s\n", sess.ContentType.DisplayName())
	}
	if sess.LastRequest != "" {
		fmt.Fprintf(&b, "📝 Текущий запрос: %s\n", promptPreview(sess.LastRequest))
	}
	b.WriteString("\nНапишите новый запрос:")
	return Reply{Text: b.String()}
}

func LanguageMenu() Reply {
	return Reply{Text: "🌍 Выберите язык ответов AI:", Keyboard: LanguageKeyboard()}
}

func LengthMenu() Reply {
	return Reply{Text: "📏 Выберите длину контента:", Keyboard: LengthKeyboard()}
}

func StyleMenu() Reply {
	return Reply{Text: "🎭 Выберите стиль общения:", Keyboard: StyleKeyboard()}
}

func StatusMenu() Reply {
	return Reply{
		Text:     "📊 Управление статусами идей\n\nВыберите действие:",
		Keyboard: StatusManagementKeyboard(),
	}
}

// ChangeStatusMenu renders the status selection keyboard for one idea.
// A nil idea yields the not-found reply instead.
func ChangeStatusMenu(idea *store.ContentIdea) Reply {
	if idea == nil {
		return IdeaNotFound()
	}

	text := fmt.Sprintf(
		"📝 Изменение статуса идеи #%d\n\nТекст: %s\n\nТекущий статус: %s %s\n\nВыберите новый статус:",
		idea.ID,
		promptPreview(idea.Prompt),
		statusEmoji(idea.Status),
		statusName(idea.Status),
	)
	return Reply{Text: text, Keyboard: ChangeStatusKeyboard(idea.ID)}
}

func IdeaNotFound() Reply {
	return Reply{Text: "❌ Идея не найдена", Keyboard: StatusManagementKeyboard()}
}

func StatusChanged(idea *store.ContentIdea) Reply {
	text := fmt.Sprintf("✅ Статус идеи #%d изменен: %s %s",
		idea.ID, statusEmoji(idea.Status), statusName(idea.Status))
	return Reply{Text: text, Keyboard: StatusManagementKeyboard()}
}

func IdeaDeleted(ideaID int64) Reply {
	return Reply{
		Text:     fmt.Sprintf("🗑️ Идея #%d удалена", ideaID),
		Keyboard: StatusManagementKeyboard(),
	}
}

// recentIdeas returns the newest ideas first, capped at limit.
func recentIdeas(ideas []*store.ContentIdea, limit int) []*store.ContentIdea {
	sorted := make([]*store.ContentIdea, len(ideas))
	copy(sorted, ideas)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedTs > sorted[j].CreatedTs
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// promptPreview truncates a prompt for display, appending an ellipsis when
// the prompt exceeds the threshold.
func promptPreview(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > promptPreviewLen {
		return string(runes[:promptPreviewLen]) + "..."
	}
	return prompt
}

// truncateRunes hard-truncates without an ellipsis (used for button labels).
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max])
	}
	return s
}

func statusName(status store.IdeaStatus) string {
	switch status {
	case store.IdeaStatusDraft:
		return "Черновик"
	case store.IdeaStatusInProgress:
		return "В работе"
	case store.IdeaStatusPublished:
		return "Опубликовано"
	}
	return string(status)
}

func statusEmoji(status store.IdeaStatus) string {
	switch status {
	case store.IdeaStatusDraft:
		return "📝"
	case store.IdeaStatusInProgress:
		return "⏳"
	case store.IdeaStatusPublished:
		return "✅"
	}
	return "❔"
}
