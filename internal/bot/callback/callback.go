// Package callback encodes and decodes the structured user intents carried in
// inline keyboard payloads. The wire strings are stable: they must keep
// working for menus rendered by earlier versions of the bot.
package callback

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hrygo/contentmaker/internal/bot/content"
	"github.com/hrygo/contentmaker/store"
)

// Kind discriminates the Action variants.
type Kind string

const (
	KindNewContent      Kind = "new_content"
	KindListIdeas       Kind = "list_ideas"
	KindSettingsMenu    Kind = "settings_menu"
	KindLanguageMenu    Kind = "settings_language"
	KindLengthMenu      Kind = "settings_length"
	KindStyleMenu       Kind = "settings_style"
	KindStatusMenu      Kind = "status_management"
	KindHelp            Kind = "help"
	KindBackToMain      Kind = "back_to_main"
	KindRefreshList     Kind = "refresh_list"
	KindRetryGeneration Kind = "retry_generation"
	KindEditRequest     Kind = "edit_request"

	KindSelectContentType Kind = "select_content_type"
	KindSelectLanguage    Kind = "select_language"
	KindSelectLength      Kind = "select_length"
	KindSelectStyle       Kind = "select_style"
	KindManageIdea        Kind = "manage_idea"
	KindFilterByStatus    Kind = "filter_by_status"
	KindChangeStatus      Kind = "change_status"
	KindDeleteIdea        Kind = "delete_idea"

	KindUnknown Kind = "unknown"
)

// Prefixes of the parameterized payload forms. Fixed keyword literals take
// precedence over these during decoding.
const (
	prefixManageIdea   = "manage_idea_"
	prefixFilterStatus = "filter_status_"
	prefixChangeStatus = "change_status_"
	prefixDeleteIdea   = "delete_idea_"
)

// Action is a decoded user intent. It exists only for the duration of one
// dispatch and is never persisted.
type Action struct {
	Kind Kind

	IdeaID      int64            // ManageIdea, ChangeStatus, DeleteIdea
	Status      store.IdeaStatus // FilterByStatus, ChangeStatus
	ContentType content.Type     // SelectContentType
	Language    content.Language // SelectLanguage
	Length      content.Length   // SelectLength
	Style       content.Style    // SelectStyle
	Raw         string           // Unknown: the original payload
}

// fixedKinds maps the literal keyword payloads. Checked before any prefix or
// enum table so that e.g. settings_language is never captured by a broader
// match.
var fixedKinds = map[string]Kind{
	"new_content":       KindNewContent,
	"list_ideas":        KindListIdeas,
	"settings_menu":     KindSettingsMenu,
	"settings_language": KindLanguageMenu,
	"settings_length":   KindLengthMenu,
	"settings_style":    KindStyleMenu,
	"status_management": KindStatusMenu,
	"help":              KindHelp,
	"back_to_main":      KindBackToMain,
	"refresh_list":      KindRefreshList,
	"retry_generation":  KindRetryGeneration,
	"edit_request":      KindEditRequest,
}

// Decode resolves a raw callback payload into an Action. It is total:
// malformed payloads, non-numeric ids and unrecognized enum names yield
// Unknown, never an error.
func Decode(payload string) Action {
	if payload == "" {
		return unknown(payload)
	}

	if kind, ok := fixedKinds[payload]; ok {
		return Action{Kind: kind}
	}

	if t, ok := content.TypeFromCallback(payload); ok {
		return Action{Kind: KindSelectContentType, ContentType: t}
	}
	if l, ok := content.LanguageFromCallback(payload); ok {
		return Action{Kind: KindSelectLanguage, Language: l}
	}
	if l, ok := content.LengthFromCallback(payload); ok {
		return Action{Kind: KindSelectLength, Length: l}
	}
	if s, ok := content.StyleFromCallback(payload); ok {
		return Action{Kind: KindSelectStyle, Style: s}
	}

	// change_status_<id>_<STATUS> before the other id-bearing prefixes: it is
	// the only form with two parameters.
	if rest, ok := strings.CutPrefix(payload, prefixChangeStatus); ok {
		idPart, statusPart, found := strings.Cut(rest, "_")
		if !found {
			return unknown(payload)
		}
		id, err := strconv.ParseInt(idPart, 10, 64)
		if err != nil {
			return unknown(payload)
		}
		status, ok := store.IdeaStatusFromString(statusPart)
		if !ok {
			return unknown(payload)
		}
		return Action{Kind: KindChangeStatus, IdeaID: id, Status: status}
	}
	if rest, ok := strings.CutPrefix(payload, prefixManageIdea); ok {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return unknown(payload)
		}
		return Action{Kind: KindManageIdea, IdeaID: id}
	}
	if rest, ok := strings.CutPrefix(payload, prefixDeleteIdea); ok {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return unknown(payload)
		}
		return Action{Kind: KindDeleteIdea, IdeaID: id}
	}
	if rest, ok := strings.CutPrefix(payload, prefixFilterStatus); ok {
		status, ok := store.IdeaStatusFromString(rest)
		if !ok {
			return unknown(payload)
		}
		return Action{Kind: KindFilterByStatus, Status: status}
	}

	return unknown(payload)
}

// Encode renders an Action back to its wire payload. Encode(Decode(p)) == p
// for every payload Encode can produce.
func Encode(a Action) string {
	switch a.Kind {
	case KindNewContent, KindListIdeas, KindSettingsMenu, KindLanguageMenu,
		KindLengthMenu, KindStyleMenu, KindStatusMenu, KindHelp,
		KindBackToMain, KindRefreshList, KindRetryGeneration, KindEditRequest:
		return string(a.Kind)
	case KindSelectContentType:
		return a.ContentType.CallbackData()
	case KindSelectLanguage:
		return a.Language.CallbackData()
	case KindSelectLength:
		return a.Length.CallbackData()
	case KindSelectStyle:
		return a.Style.CallbackData()
	case KindManageIdea:
		return prefixManageIdea + strconv.FormatInt(a.IdeaID, 10)
	case KindFilterByStatus:
		return prefixFilterStatus + string(a.Status)
	case KindChangeStatus:
		return fmt.Sprintf("%s%d_%s", prefixChangeStatus, a.IdeaID, a.Status)
	case KindDeleteIdea:
		return prefixDeleteIdea + strconv.FormatInt(a.IdeaID, 10)
	default:
		return a.Raw
	}
}

func unknown(payload string) Action {
	return Action{Kind: KindUnknown, Raw: payload}
}
