package command

import (
	"fmt"

	"github.com/hrygo/contentmaker/internal/bot/callback"
	"github.com/hrygo/contentmaker/internal/bot/content"
	"github.com/hrygo/contentmaker/plugin/telegram"
	"github.com/hrygo/contentmaker/store"
)

func MainMenuKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			telegram.Row(
				telegram.Button("📝 Новая идея", callback.Encode(callback.Action{Kind: callback.KindNewContent})),
				telegram.Button("📋 Мои идеи", callback.Encode(callback.Action{Kind: callback.KindListIdeas})),
			),
			telegram.Row(
				telegram.Button("⚙️ Настройки", callback.Encode(callback.Action{Kind: callback.KindSettingsMenu})),
				telegram.Button("❓ Помощь", callback.Encode(callback.Action{Kind: callback.KindHelp})),
			),
		},
	}
}

func ContentTypeKeyboard() *telegram.InlineKeyboardMarkup {
	backButton := telegram.Button("🔙 Назад", callback.Encode(callback.Action{Kind: callback.KindBackToMain}))

	row := []telegram.InlineKeyboardButton{}
	keyboard := [][]telegram.InlineKeyboardButton{}
	for _, typ := range content.AllTypes() {
		row = append(row, telegram.Button(typ.DisplayName(), typ.CallbackData()))
		if len(row) == 2 {
			keyboard = append(keyboard, row)
			row = nil
		}
	}
	row = append(row, backButton)
	keyboard = append(keyboard, row)

	return &telegram.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}

// AiResponseActionsKeyboard is attached to every generated reply.
func AiResponseActionsKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			telegram.Row(
				telegram.Button("🔄 Сгенерировать еще раз", callback.Encode(callback.Action{Kind: callback.KindRetryGeneration})),
				telegram.Button("✏️ Изменить запрос", callback.Encode(callback.Action{Kind: callback.KindEditRequest})),
			),
			telegram.Row(
				telegram.Button("🔙 Главное меню", callback.Encode(callback.Action{Kind: callback.KindBackToMain})),
			),
		},
	}
}

func SettingMenuKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			telegram.Row(
				telegram.Button("🌍 Язык", callback.Encode(callback.Action{Kind: callback.KindLanguageMenu})),
				telegram.Button("📏 Длина", callback.Encode(callback.Action{Kind: callback.KindLengthMenu})),
			),
			telegram.Row(
				telegram.Button("🎭 Стиль", callback.Encode(callback.Action{Kind: callback.KindStyleMenu})),
				telegram.Button("🔙 Назад", callback.Encode(callback.Action{Kind: callback.KindBackToMain})),
			),
		},
	}
}

func LanguageKeyboard() *telegram.InlineKeyboardMarkup {
	keyboard := [][]telegram.InlineKeyboardButton{}
	for _, lang := range content.AllLanguages() {
		keyboard = append(keyboard, telegram.Row(telegram.Button(lang.DisplayName(), lang.CallbackData())))
	}
	keyboard = append(keyboard, telegram.Row(
		telegram.Button("🔙 К настройкам", callback.Encode(callback.Action{Kind: callback.KindSettingsMenu})),
	))
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}

func LengthKeyboard() *telegram.InlineKeyboardMarkup {
	lengths := content.AllLengths()
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			telegram.Row(
				telegram.Button(lengths[0].DisplayName(), lengths[0].CallbackData()),
				telegram.Button(lengths[1].DisplayName(), lengths[1].CallbackData()),
			),
			telegram.Row(
				telegram.Button(lengths[2].DisplayName(), lengths[2].CallbackData()),
				telegram.Button("🔙 К настройкам", callback.Encode(callback.Action{Kind: callback.KindSettingsMenu})),
			),
		},
	}
}

func StyleKeyboard() *telegram.InlineKeyboardMarkup {
	keyboard := [][]telegram.InlineKeyboardButton{}
	for _, style := range content.AllStyles() {
		keyboard = append(keyboard, telegram.Row(telegram.Button(style.DisplayName(), style.CallbackData())))
	}
	keyboard = append(keyboard, telegram.Row(
		telegram.Button("🔙 К настройкам", callback.Encode(callback.Action{Kind: callback.KindSettingsMenu})),
	))
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}

func StatusManagementKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			telegram.Row(
				telegram.Button("📝 Черновики", callback.Encode(callback.Action{Kind: callback.KindFilterByStatus, Status: store.IdeaStatusDraft})),
				telegram.Button("⏳ В работе", callback.Encode(callback.Action{Kind: callback.KindFilterByStatus, Status: store.IdeaStatusInProgress})),
			),
			telegram.Row(
				telegram.Button("✅ Опубликованные", callback.Encode(callback.Action{Kind: callback.KindFilterByStatus, Status: store.IdeaStatusPublished})),
				telegram.Button("📋 Все идеи", callback.Encode(callback.Action{Kind: callback.KindListIdeas})),
			),
			telegram.Row(
				telegram.Button("🔙 Главное меню", callback.Encode(callback.Action{Kind: callback.KindBackToMain})),
			),
		},
	}
}

func ChangeStatusKeyboard(ideaID int64) *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			telegram.Row(
				telegram.Button("📝 Черновик", callback.Encode(callback.Action{Kind: callback.KindChangeStatus, IdeaID: ideaID, Status: store.IdeaStatusDraft})),
				telegram.Button("⏳ В работе", callback.Encode(callback.Action{Kind: callback.KindChangeStatus, IdeaID: ideaID, Status: store.IdeaStatusInProgress})),
			),
			telegram.Row(
				telegram.Button("✅ Опубликовано", callback.Encode(callback.Action{Kind: callback.KindChangeStatus, IdeaID: ideaID, Status: store.IdeaStatusPublished})),
				telegram.Button("🗑️ Удалить", callback.Encode(callback.Action{Kind: callback.KindDeleteIdea, IdeaID: ideaID})),
			),
			telegram.Row(
				telegram.Button("🔙 К управлению", callback.Encode(callback.Action{Kind: callback.KindStatusMenu})),
			),
		},
	}
}

// ideaManagementKeyboard lists a manage button per idea (at most 5) plus the
// navigation row.
func ideaManagementKeyboard(ideas []*store.ContentIdea) *telegram.InlineKeyboardMarkup {
	keyboard := [][]telegram.InlineKeyboardButton{}

	for i, idea := range ideas {
		if i == 5 {
			break
		}
		label := fmt.Sprintf("✏️ #%d: %s", idea.ID, truncateRunes(idea.Prompt, 20))
		keyboard = append(keyboard, telegram.Row(
			telegram.Button(label, callback.Encode(callback.Action{Kind: callback.KindManageIdea, IdeaID: idea.ID})),
		))
	}

	keyboard = append(keyboard, telegram.Row(
		telegram.Button("📊 К управлению статусами", callback.Encode(callback.Action{Kind: callback.KindStatusMenu})),
		telegram.Button("🔙 Главное меню", callback.Encode(callback.Action{Kind: callback.KindBackToMain})),
	))

	return &telegram.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}
