// Package content holds the static descriptor tables for content types and
// generation settings: display names, callback payloads, prompt templates and
// system prompt fragments.
package content

// Type is a template category shaping the generation prompt.
type Type string

const (
	TypePost     Type = "post"
	TypeReel     Type = "reel"
	TypeStory    Type = "story"
	TypeHashtags Type = "hashtags"
	TypeTitle    Type = "title"
)

type typeDescriptor struct {
	callbackData   string
	displayName    string
	promptTemplate string
	systemPrompt   string
}

var typeDescriptors = map[Type]typeDescriptor{
	TypePost: {
		callbackData:   "content_post",
		displayName:    "📱 Пост",
		promptTemplate: "Создай увлекательный пост для социальных сетей на тему: ",
		systemPrompt: "Ты эксперт по созданию вирусного контента для социальных сетей. " +
			"Создавай посты, которые вызывают эмоции, содержат призыв к действию и подходят для Instagram, VK, Telegram.",
	},
	TypeReel: {
		callbackData:   "content_reel",
		displayName:    "🎬 Reels",
		promptTemplate: "Напиши динамичный сценарий для короткого видео (Reels/TikTok) с хуками и CTA на тему: ",
		systemPrompt: "Ты сценарист коротких видео. Создавай динамичные сценарии с хуками в первые 3 секунды, " +
			"понятной структурой и сильным CTA. Формат: Reels/TikTok до 60 секунд.",
	},
	TypeStory: {
		callbackData:   "content_story",
		displayName:    "📖 Story",
		promptTemplate: "Создай идею для Stories с интерактивными элементами на тему: ",
		systemPrompt: "Ты специалист по Stories. Создавай интерактивный контент с опросами, вопросами, " +
			"стикерами. Думай о вовлечении аудитории и создании диалога.",
	},
	TypeHashtags: {
		callbackData:   "content_hashtags",
		displayName:    "#️⃣ Хештеги",
		promptTemplate: "Сгенерируй 15-20 релевантных хештегов для продвижения контента на тему: ",
		systemPrompt: "Ты эксперт по хештегам и продвижению в социальных сетях. " +
			"Создавай mix популярных, средних и нишевых хештегов для максимального охвата.",
	},
	TypeTitle: {
		callbackData:   "content_title",
		displayName:    "📰 Заголовок",
		promptTemplate: "Придумай 5 цепляющих заголовков, которые привлекут внимание, для темы: ",
		systemPrompt: "Ты копирайтер-эксперт по заголовкам. Создавай цепляющие заголовки, " +
			"которые останавливают скролл и заставляют кликнуть. Используй психологические триггеры.",
	},
}

// DefaultSystemPrompt is used when no content type is selected.
const DefaultSystemPrompt = "Ты полезный ассистент."

// AllTypes returns every content type in keyboard order.
func AllTypes() []Type {
	return []Type{TypePost, TypeReel, TypeStory, TypeHashtags, TypeTitle}
}

func (t Type) Valid() bool {
	_, ok := typeDescriptors[t]
	return ok
}

func (t Type) CallbackData() string {
	return typeDescriptors[t].callbackData
}

func (t Type) DisplayName() string {
	return typeDescriptors[t].displayName
}

// PromptTemplate returns the prefix applied to the user request when this
// type is selected.
func (t Type) PromptTemplate() string {
	return typeDescriptors[t].promptTemplate
}

// SystemPrompt returns the expert persona instruction for this type.
func (t Type) SystemPrompt() string {
	return typeDescriptors[t].systemPrompt
}

// TypeFromCallback resolves a callback payload to a content type.
func TypeFromCallback(callbackData string) (Type, bool) {
	for t, d := range typeDescriptors {
		if d.callbackData == callbackData {
			return t, true
		}
	}
	return "", false
}
