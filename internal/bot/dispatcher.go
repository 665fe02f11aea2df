// Package bot routes inbound Telegram updates to their handlers: slash
// commands, free-text generation requests and inline keyboard callbacks.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hrygo/contentmaker/internal/bot/callback"
	"github.com/hrygo/contentmaker/internal/bot/command"
	"github.com/hrygo/contentmaker/internal/bot/content"
	"github.com/hrygo/contentmaker/internal/bot/session"
	berrors "github.com/hrygo/contentmaker/internal/errors"
	"github.com/hrygo/contentmaker/internal/observability"
	"github.com/hrygo/contentmaker/plugin/ai"
	"github.com/hrygo/contentmaker/plugin/telegram"
	"github.com/hrygo/contentmaker/store"
)

// Sender is the outbound Telegram surface the dispatcher needs.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) error
	EditMessageText(ctx context.Context, chatID int64, messageID int64, text string) error
	AnswerCallbackQuery(ctx context.Context, callbackQueryID string) error
}

// ContentStore is the idea persistence surface the dispatcher needs.
type ContentStore interface {
	CreateIdea(ctx context.Context, prompt, response string) (*store.ContentIdea, error)
	ListIdeas(ctx context.Context, find *store.FindContentIdea) ([]*store.ContentIdea, error)
	GetIdea(ctx context.Context, id int64) (*store.ContentIdea, error)
	UpdateIdeaStatus(ctx context.Context, id int64, status store.IdeaStatus) (*store.ContentIdea, error)
	DeleteIdea(ctx context.Context, id int64) error
}

// Dispatcher owns one update's journey from wire payload to reply.
// HandleUpdate is safe for concurrent use; per-chat state lives in the
// session store.
type Dispatcher struct {
	sender    Sender
	store     ContentStore
	generator ai.Generator
	sessions  *session.Store
	logger    *slog.Logger
}

func NewDispatcher(sender Sender, contentStore ContentStore, generator ai.Generator, sessions *session.Store, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender:    sender,
		store:     contentStore,
		generator: generator,
		sessions:  sessions,
		logger:    logger,
	}
}

// HandleUpdate processes one inbound update. Every failure is absorbed here:
// the user gets an apology message and the error is logged with its code, so
// a broken update never takes the poller down.
func (d *Dispatcher) HandleUpdate(ctx context.Context, update telegram.Update) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic while handling update",
				slog.Int64("update_id", update.UpdateID),
				slog.Any("panic", r))
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		d.handleCallbackQuery(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		d.handleMessage(ctx, update.Message)
	default:
		d.logger.Debug("ignoring update without text or callback",
			slog.Int64("update_id", update.UpdateID))
	}
}

func (d *Dispatcher) handleMessage(ctx context.Context, msg *telegram.Message) {
	chatID := msg.Chat.ID
	ec := observability.NewEventContext(d.logger, "message", chatID)

	var err error
	if strings.HasPrefix(msg.Text, "/") {
		err = d.dispatchCommand(ctx, ec, chatID, msg.Text)
	} else {
		err = d.generateAndReply(ctx, ec, chatID, msg.Text)
	}

	if err != nil {
		d.replyWithError(ctx, ec, chatID, err)
		return
	}
	ec.Info("update handled", slog.Int64(observability.LogFieldDuration, ec.DurationMs()))
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, ec *observability.EventContext, chatID int64, text string) error {
	cmd, _, _ := strings.Cut(text, " ")
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}
	ec.Debug("dispatching command", slog.String("command", cmd))

	switch cmd {
	case "/start":
		return d.send(ctx, chatID, command.Start())
	case "/help":
		return d.send(ctx, chatID, command.Help())
	case "/list":
		return d.sendIdeaList(ctx, chatID)
	case "/new":
		return d.send(ctx, chatID, command.NewContent())
	case "/settings":
		return d.send(ctx, chatID, command.Settings(d.sessions.Get(chatID).Settings))
	case "/status":
		return d.send(ctx, chatID, command.StatusMenu())
	default:
		ec.Warn("unknown command", slog.String("command", cmd))
		return d.send(ctx, chatID, command.Help())
	}
}

// generateAndReply is the free-text path: compose the prompt from the chat's
// session, call the generation backend, persist the idea and reply with the
// response plus the follow-up actions keyboard.
func (d *Dispatcher) generateAndReply(ctx context.Context, ec *observability.EventContext, chatID int64, request string) error {
	sess := d.sessions.Get(chatID)

	prompt := request
	systemPrompt := content.DefaultSystemPrompt
	if sess.Scoped() {
		prompt = sess.ContentType.PromptTemplate() + request
		systemPrompt = sess.ContentType.SystemPrompt()
	}
	systemPrompt = systemPrompt + " " + sess.Settings.Instructions()

	if err := d.sender.SendMessage(ctx, chatID, "🤔 Генерирую ответ...", nil); err != nil {
		ec.Warn("progress message failed", slog.String("error", err.Error()))
	}

	response, err := d.generator.Generate(ctx, prompt, systemPrompt)
	if err != nil {
		return err
	}

	if _, err := d.store.CreateIdea(ctx, request, response); err != nil {
		return err
	}

	d.sessions.SetLastRequest(chatID, request)

	return d.send(ctx, chatID, command.Reply{
		Text:     response,
		Keyboard: command.AiResponseActionsKeyboard(),
	})
}

func (d *Dispatcher) handleCallbackQuery(ctx context.Context, query *telegram.CallbackQuery) {
	if query.Message == nil {
		d.logger.Warn("callback query without message", slog.String("callback_query_id", query.ID))
		return
	}
	chatID := query.Message.Chat.ID
	ec := observability.NewEventContext(d.logger, "callback", chatID)

	if err := d.sender.AnswerCallbackQuery(ctx, query.ID); err != nil {
		ec.Warn("answer callback failed", slog.String("error", err.Error()))
	}

	action := callback.Decode(query.Data)
	if action.Kind == callback.KindUnknown {
		ec.Warn("unknown callback payload", slog.String(observability.LogFieldCallback, action.Raw))
		return
	}

	if err := d.dispatchCallback(ctx, ec, chatID, query.Message.MessageID, action); err != nil {
		d.replyWithError(ctx, ec, chatID, err)
		return
	}
	ec.Info("callback handled",
		slog.String(observability.LogFieldCallback, query.Data),
		slog.Int64(observability.LogFieldDuration, ec.DurationMs()))
}

func (d *Dispatcher) dispatchCallback(ctx context.Context, ec *observability.EventContext, chatID, messageID int64, action callback.Action) error {
	switch action.Kind {
	case callback.KindNewContent:
		return d.send(ctx, chatID, command.NewContent())

	case callback.KindListIdeas:
		return d.sendIdeaList(ctx, chatID)

	case callback.KindRefreshList:
		if err := d.sender.EditMessageText(ctx, chatID, messageID, "🔄 Обновляю список..."); err != nil {
			ec.Warn("edit message failed", slog.String("error", err.Error()))
		}
		return d.sendIdeaList(ctx, chatID)

	case callback.KindSettingsMenu:
		return d.send(ctx, chatID, command.Settings(d.sessions.Get(chatID).Settings))

	case callback.KindLanguageMenu:
		return d.send(ctx, chatID, command.LanguageMenu())

	case callback.KindLengthMenu:
		return d.send(ctx, chatID, command.LengthMenu())

	case callback.KindStyleMenu:
		return d.send(ctx, chatID, command.StyleMenu())

	case callback.KindStatusMenu:
		return d.send(ctx, chatID, command.StatusMenu())

	case callback.KindHelp:
		return d.send(ctx, chatID, command.Help())

	case callback.KindBackToMain:
		return d.send(ctx, chatID, command.Start())

	case callback.KindSelectContentType:
		d.sessions.SetContentType(chatID, action.ContentType)
		text := fmt.Sprintf("✅ Выбран тип: %s\n\nТеперь опишите тему, и я сгенерирую контент!",
			action.ContentType.DisplayName())
		return d.send(ctx, chatID, command.Reply{Text: text})

	case callback.KindSelectLanguage:
		d.sessions.UpdateSettings(chatID, func(s *session.AiSettings) {
			s.Language = action.Language
		})
		confirmation := fmt.Sprintf("✅ Язык изменен: %s", action.Language.DisplayName())
		return d.send(ctx, chatID, command.SettingsUpdated(confirmation, d.sessions.Get(chatID).Settings))

	case callback.KindSelectLength:
		d.sessions.UpdateSettings(chatID, func(s *session.AiSettings) {
			s.Length = action.Length
		})
		confirmation := fmt.Sprintf("✅ Длина изменена: %s", action.Length.DisplayName())
		return d.send(ctx, chatID, command.SettingsUpdated(confirmation, d.sessions.Get(chatID).Settings))

	case callback.KindSelectStyle:
		d.sessions.UpdateSettings(chatID, func(s *session.AiSettings) {
			s.Style = action.Style
		})
		confirmation := fmt.Sprintf("✅ Стиль изменен: %s", action.Style.DisplayName())
		return d.send(ctx, chatID, command.SettingsUpdated(confirmation, d.sessions.Get(chatID).Settings))

	case callback.KindRetryGeneration:
		request, ok := d.sessions.LastRequest(chatID)
		if !ok {
			return berrors.State("retry requested but no previous request is remembered")
		}
		return d.generateAndReply(ctx, ec, chatID, request)

	case callback.KindEditRequest:
		return d.send(ctx, chatID, command.EditRequest(d.sessions.Get(chatID)))

	case callback.KindManageIdea:
		idea, err := d.store.GetIdea(ctx, action.IdeaID)
		if err != nil {
			return err
		}
		return d.send(ctx, chatID, command.ChangeStatusMenu(idea))

	case callback.KindFilterByStatus:
		ideas, err := d.store.ListIdeas(ctx, &store.FindContentIdea{Status: &action.Status})
		if err != nil {
			return err
		}
		return d.send(ctx, chatID, command.FilteredList(action.Status, ideas))

	case callback.KindChangeStatus:
		idea, err := d.store.UpdateIdeaStatus(ctx, action.IdeaID, action.Status)
		if err != nil {
			if berrors.IsCode(err, berrors.ErrCodeNotFound) {
				return d.send(ctx, chatID, command.IdeaNotFound())
			}
			return err
		}
		return d.send(ctx, chatID, command.StatusChanged(idea))

	case callback.KindDeleteIdea:
		if err := d.store.DeleteIdea(ctx, action.IdeaID); err != nil {
			if berrors.IsCode(err, berrors.ErrCodeNotFound) {
				return d.send(ctx, chatID, command.IdeaNotFound())
			}
			return err
		}
		return d.send(ctx, chatID, command.IdeaDeleted(action.IdeaID))
	}

	ec.Warn("unhandled callback kind", slog.String("kind", string(action.Kind)))
	return nil
}

func (d *Dispatcher) sendIdeaList(ctx context.Context, chatID int64) error {
	ideas, err := d.store.ListIdeas(ctx, &store.FindContentIdea{})
	if err != nil {
		return err
	}
	return d.send(ctx, chatID, command.List(ideas))
}

func (d *Dispatcher) send(ctx context.Context, chatID int64, reply command.Reply) error {
	return d.sender.SendMessage(ctx, chatID, reply.Text, reply.Keyboard)
}

// replyWithError translates an internal failure into the user-facing apology
// and logs the original error with its code. Errors here are terminal: if the
// apology itself fails there is nothing left to do but log.
func (d *Dispatcher) replyWithError(ctx context.Context, ec *observability.EventContext, chatID int64, err error) {
	code := berrors.CodeOf(err, berrors.ErrCodeUpstream)
	ec.Error("update failed", err,
		slog.String(observability.LogFieldErrorCode, string(code)),
		slog.Int64(observability.LogFieldDuration, ec.DurationMs()))

	text := apologyText(err, code)
	if sendErr := d.sender.SendMessage(ctx, chatID, text, nil); sendErr != nil {
		ec.Error("apology message failed", sendErr)
	}
}

func apologyText(err error, code berrors.ErrorCode) string {
	switch code {
	case berrors.ErrCodeTimeout:
		return "Извините, произошла ошибка сети при обращении к AI"
	case berrors.ErrCodeEmptyResult:
		return "Извините получен пустой ответ от AI"
	case berrors.ErrCodeUpstream:
		if botErr, ok := err.(*berrors.BotError); ok && botErr.Message != "" {
			return fmt.Sprintf("Извините, произошла ошибка при обращении к AI: %s", botErr.Message)
		}
		return "Извините, произошла ошибка сети при обращении к AI"
	case berrors.ErrCodeNotFound:
		return "❌ Идея не найдена"
	case berrors.ErrCodeState:
		return "❌ Нет предыдущего запроса. Напишите, что сгенерировать!"
	default:
		return "Извините, произошла неожиданная ошибка"
	}
}
