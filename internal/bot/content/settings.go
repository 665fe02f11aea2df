package content

// Language selects the response language of the generation backend.
type Language string

const (
	LanguageRU Language = "ru"
	LanguageEN Language = "en"
	LanguageUA Language = "ua"
)

// Length selects how long the generated content should be.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// Style selects the communication style of the generated content.
type Style string

const (
	StyleFriendly  Style = "friendly"
	StyleBusiness  Style = "business"
	StyleEmotional Style = "emotional"
)

type settingDescriptor struct {
	callbackData string
	displayName  string
	instruction  string
}

var languageDescriptors = map[Language]settingDescriptor{
	LanguageRU: {"lang_ru", "🇷🇺 Русский", "Отвечай ТОЛЬКО на русском языке."},
	LanguageEN: {"lang_en", "🇺🇸 English", "Answer ONLY in English."},
	LanguageUA: {"lang_ua", "🇺🇦 Українська", "Відповідай ТІЛЬКИ українською мовою."},
}

var lengthDescriptors = map[Length]settingDescriptor{
	LengthShort:  {"length_short", "📝 Короткий", "Создавай краткий контент (1-2 абзаца, до 200 слов)."},
	LengthMedium: {"length_medium", "📄 Средний", "Создавай средний контент (3-4 абзаца, 200-400 слов)."},
	LengthLong:   {"length_long", "📜 Длинный", "Создавай подробный контент (5+ абзацев, 400+ слов)."},
}

var styleDescriptors = map[Style]settingDescriptor{
	StyleFriendly:  {"style_friendly", "😊 Дружелюбный", "Используй дружелюбный, легкий тон с эмодзи и разговорными выражениями."},
	StyleBusiness:  {"style_business", "🎯 Деловой", "Используй профессиональный, деловой тон без лишних эмоций."},
	StyleEmotional: {"style_emotional", "🔥 Эмоциональный", "Используй эмоциональный, вдохновляющий тон с сильными словами и призывами."},
}

func AllLanguages() []Language {
	return []Language{LanguageRU, LanguageEN, LanguageUA}
}

func AllLengths() []Length {
	return []Length{LengthShort, LengthMedium, LengthLong}
}

func AllStyles() []Style {
	return []Style{StyleFriendly, StyleBusiness, StyleEmotional}
}

func (l Language) CallbackData() string { return languageDescriptors[l].callbackData }
func (l Language) DisplayName() string  { return languageDescriptors[l].displayName }
func (l Language) Instruction() string  { return languageDescriptors[l].instruction }

func (l Length) CallbackData() string { return lengthDescriptors[l].callbackData }
func (l Length) DisplayName() string  { return lengthDescriptors[l].displayName }
func (l Length) Instruction() string  { return lengthDescriptors[l].instruction }

func (s Style) CallbackData() string { return styleDescriptors[s].callbackData }
func (s Style) DisplayName() string  { return styleDescriptors[s].displayName }
func (s Style) Instruction() string  { return styleDescriptors[s].instruction }

// LanguageFromCallback resolves a callback payload to a language.
func LanguageFromCallback(callbackData string) (Language, bool) {
	for l, d := range languageDescriptors {
		if d.callbackData == callbackData {
			return l, true
		}
	}
	return "", false
}

// LengthFromCallback resolves a callback payload to a length.
func LengthFromCallback(callbackData string) (Length, bool) {
	for l, d := range lengthDescriptors {
		if d.callbackData == callbackData {
			return l, true
		}
	}
	return "", false
}

// StyleFromCallback resolves a callback payload to a style.
func StyleFromCallback(callbackData string) (Style, bool) {
	for s, d := range styleDescriptors {
		if d.callbackData == callbackData {
			return s, true
		}
	}
	return "", false
}
