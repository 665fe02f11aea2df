package bot

import (
	"context"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/contentmaker/internal/bot/content"
	"github.com/hrygo/contentmaker/internal/bot/session"
	berrors "github.com/hrygo/contentmaker/internal/errors"
	"github.com/hrygo/contentmaker/plugin/telegram"
	"github.com/hrygo/contentmaker/store"
)

type sentMessage struct {
	chatID int64
	text   string
	markup *telegram.InlineKeyboardMarkup
}

type mockSender struct {
	sent     []sentMessage
	edited   []string
	answered []string
}

func (m *mockSender) SendMessage(_ context.Context, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) error {
	m.sent = append(m.sent, sentMessage{chatID: chatID, text: text, markup: markup})
	return nil
}

func (m *mockSender) EditMessageText(_ context.Context, _ int64, _ int64, text string) error {
	m.edited = append(m.edited, text)
	return nil
}

func (m *mockSender) AnswerCallbackQuery(_ context.Context, id string) error {
	m.answered = append(m.answered, id)
	return nil
}

func (m *mockSender) lastText() string {
	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1].text
}

type mockStore struct {
	ideas       map[int64]*store.ContentIdea
	nextID      int64
	createErr   error
	created     []*store.ContentIdea
	updateCalls int
	deleteCalls int
}

func newMockStore() *mockStore {
	return &mockStore{ideas: map[int64]*store.ContentIdea{}, nextID: 1}
}

func (m *mockStore) CreateIdea(_ context.Context, prompt, response string) (*store.ContentIdea, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	idea := &store.ContentIdea{
		ID:       m.nextID,
		Prompt:   prompt,
		Response: response,
		Status:   store.IdeaStatusDraft,
	}
	m.nextID++
	m.ideas[idea.ID] = idea
	m.created = append(m.created, idea)
	return idea, nil
}

func (m *mockStore) ListIdeas(_ context.Context, find *store.FindContentIdea) ([]*store.ContentIdea, error) {
	result := []*store.ContentIdea{}
	for _, idea := range m.ideas {
		if find != nil && find.Status != nil && idea.Status != *find.Status {
			continue
		}
		result = append(result, idea)
	}
	return result, nil
}

func (m *mockStore) GetIdea(_ context.Context, id int64) (*store.ContentIdea, error) {
	return m.ideas[id], nil
}

func (m *mockStore) UpdateIdeaStatus(_ context.Context, id int64, status store.IdeaStatus) (*store.ContentIdea, error) {
	idea, ok := m.ideas[id]
	if !ok {
		return nil, berrors.NotFound("idea not found")
	}
	m.updateCalls++
	idea.Status = status
	return idea, nil
}

func (m *mockStore) DeleteIdea(_ context.Context, id int64) error {
	if _, ok := m.ideas[id]; !ok {
		return berrors.NotFound("idea not found")
	}
	m.deleteCalls++
	delete(m.ideas, id)
	return nil
}

type mockGenerator struct {
	prompts  []string
	systems  []string
	response string
	err      error
}

func (m *mockGenerator) Generate(_ context.Context, prompt, systemDirective string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.systems = append(m.systems, systemDirective)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type fixture struct {
	dispatcher *Dispatcher
	sender     *mockSender
	store      *mockStore
	generator  *mockGenerator
	sessions   *session.Store
}

func newFixture() *fixture {
	sender := &mockSender{}
	contentStore := newMockStore()
	generator := &mockGenerator{response: "сгенерированный контент"}
	sessions := session.NewStore()
	return &fixture{
		dispatcher: NewDispatcher(sender, contentStore, generator, sessions, slog.Default()),
		sender:     sender,
		store:      contentStore,
		generator:  generator,
		sessions:   sessions,
	}
}

func messageUpdate(chatID int64, text string) telegram.Update {
	return telegram.Update{
		UpdateID: 1,
		Message:  &telegram.Message{MessageID: 10, Chat: telegram.Chat{ID: chatID}, Text: text},
	}
}

func callbackUpdate(chatID int64, data string) telegram.Update {
	return telegram.Update{
		UpdateID: 2,
		CallbackQuery: &telegram.CallbackQuery{
			ID:      "cb-1",
			Data:    data,
			Message: &telegram.Message{MessageID: 10, Chat: telegram.Chat{ID: chatID}},
		},
	}
}

func TestFreeTextGeneration(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.dispatcher.HandleUpdate(ctx, messageUpdate(42, "идеи для блога о кофе"))

	require.Len(t, f.generator.prompts, 1)
	assert.Equal(t, "идеи для блога о кофе", f.generator.prompts[0])
	assert.Contains(t, f.generator.systems[0], content.DefaultSystemPrompt)
	assert.Contains(t, f.generator.systems[0], "ТОЛЬКО на русском")

	require.Len(t, f.store.created, 1)
	assert.Equal(t, "идеи для блога о кофе", f.store.created[0].Prompt)
	assert.Equal(t, "сгенерированный контент", f.store.created[0].Response)

	// Progress message then the response with the actions keyboard.
	require.Len(t, f.sender.sent, 2)
	assert.Equal(t, "сгенерированный контент", f.sender.lastText())
	assert.NotNil(t, f.sender.sent[1].markup)

	last, ok := f.sessions.LastRequest(42)
	require.True(t, ok)
	assert.Equal(t, "идеи для блога о кофе", last)
}

func TestScopedGenerationAppliesTemplate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.dispatcher.HandleUpdate(ctx, callbackUpdate(42, "content_post"))
	f.dispatcher.HandleUpdate(ctx, messageUpdate(42, "осенняя распродажа"))

	require.Len(t, f.generator.prompts, 1)
	assert.Equal(t, content.TypePost.PromptTemplate()+"осенняя распродажа", f.generator.prompts[0])
	assert.Contains(t, f.generator.systems[0], "эксперт по созданию вирусного контента")
}

func TestRetryWithoutPreviousRequest(t *testing.T) {
	f := newFixture()

	f.dispatcher.HandleUpdate(context.Background(), callbackUpdate(42, "retry_generation"))

	assert.Empty(t, f.generator.prompts, "no generation without a remembered request")
	require.NotEmpty(t, f.sender.sent)
	assert.Contains(t, f.sender.lastText(), "Нет предыдущего запроса")
}

func TestRetryReusesLastRequest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.dispatcher.HandleUpdate(ctx, callbackUpdate(42, "content_post"))
	f.dispatcher.HandleUpdate(ctx, messageUpdate(42, "тема А"))
	f.dispatcher.HandleUpdate(ctx, callbackUpdate(42, "retry_generation"))

	require.Len(t, f.generator.prompts, 2)
	assert.Equal(t, content.TypePost.PromptTemplate()+"тема А", f.generator.prompts[1])
	assert.Len(t, f.store.created, 2)
}

func TestUnknownCallbackIsSilent(t *testing.T) {
	f := newFixture()

	f.dispatcher.HandleUpdate(context.Background(), callbackUpdate(42, "bogus_payload_123"))

	assert.Empty(t, f.sender.sent, "unknown callbacks get no reply")
	assert.Empty(t, f.generator.prompts)
	assert.Zero(t, f.store.updateCalls)
	assert.Zero(t, f.store.deleteCalls)
	// The spinner is still dismissed.
	assert.Len(t, f.sender.answered, 1)
}

func TestChangeStatusMissingIdea(t *testing.T) {
	f := newFixture()

	f.dispatcher.HandleUpdate(context.Background(), callbackUpdate(42, "change_status_999_PUBLISHED"))

	assert.Zero(t, f.store.updateCalls)
	require.NotEmpty(t, f.sender.sent)
	assert.Contains(t, f.sender.lastText(), "не найдена")
}

func TestChangeStatusAndDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	idea, err := f.store.CreateIdea(ctx, "тема", "текст")
	require.NoError(t, err)

	f.dispatcher.HandleUpdate(ctx, callbackUpdate(42, "change_status_1_IN_PROGRESS"))
	assert.Equal(t, store.IdeaStatusInProgress, f.store.ideas[idea.ID].Status)
	assert.Contains(t, f.sender.lastText(), "Статус идеи #1 изменен")

	f.dispatcher.HandleUpdate(ctx, callbackUpdate(42, "delete_idea_1"))
	assert.NotContains(t, f.store.ideas, idea.ID)
	assert.Contains(t, f.sender.lastText(), "Идея #1 удалена")
}

func TestGenerationErrorsProduceApologies(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", berrors.Timeout("generation timed out"), "ошибка сети"},
		{"empty result", berrors.EmptyResult("no choices"), "пустой ответ"},
		{"upstream", berrors.Upstream("rate limited", nil), "ошибка при обращении к AI: rate limited"},
		{"unexpected", errors.New("boom"), "ошибка при обращении к AI"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.generator.err = tc.err

			f.dispatcher.HandleUpdate(context.Background(), messageUpdate(42, "тема"))

			assert.Contains(t, f.sender.lastText(), tc.want)
			assert.Empty(t, f.store.created)
		})
	}
}

func TestPersistenceFailureRendersApology(t *testing.T) {
	f := newFixture()
	f.store.createErr = berrors.Persistence("disk full", nil)

	f.dispatcher.HandleUpdate(context.Background(), messageUpdate(42, "тема"))

	assert.Contains(t, f.sender.lastText(), "Извините")
	assert.NotEqual(t, "сгенерированный контент", f.sender.lastText())

	_, ok := f.sessions.LastRequest(42)
	assert.False(t, ok, "a failed write must not remember the request")
}

func TestSlashCommands(t *testing.T) {
	cases := []struct {
		command string
		want    string
	}{
		{"/start", "Добро пожаловать"},
		{"/help", "Справка по командам"},
		{"/new", "Выберите тип контента"},
		{"/settings", "Настройки AI"},
		{"/status", "Управление статусами"},
		{"/frobnicate", "Справка по командам"},
	}

	for _, tc := range cases {
		t.Run(tc.command, func(t *testing.T) {
			f := newFixture()
			f.dispatcher.HandleUpdate(context.Background(), messageUpdate(42, tc.command))
			assert.Contains(t, f.sender.lastText(), tc.want)
		})
	}
}

func TestCommandsPreserveSessionState(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.dispatcher.HandleUpdate(ctx, callbackUpdate(42, "content_post"))
	f.dispatcher.HandleUpdate(ctx, messageUpdate(42, "тема А"))

	// Menu navigation must not disturb the scoped type or the remembered
	// request: a later retry still gets the template.
	f.dispatcher.HandleUpdate(ctx, messageUpdate(42, "/start"))
	f.dispatcher.HandleUpdate(ctx, messageUpdate(42, "/help"))
	f.dispatcher.HandleUpdate(ctx, callbackUpdate(42, "back_to_main"))

	sess := f.sessions.Get(42)
	assert.Equal(t, content.TypePost, sess.ContentType)
	assert.Equal(t, "тема А", sess.LastRequest)

	f.dispatcher.HandleUpdate(ctx, callbackUpdate(42, "retry_generation"))
	require.Len(t, f.generator.prompts, 2)
	assert.Equal(t, content.TypePost.PromptTemplate()+"тема А", f.generator.prompts[1])
}

func TestEditRequestReply(t *testing.T) {
	t.Run("scoped with remembered request", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()

		f.dispatcher.HandleUpdate(ctx, callbackUpdate(42, "content_post"))
		f.dispatcher.HandleUpdate(ctx, messageUpdate(42, "осенняя распродажа"))
		f.dispatcher.HandleUpdate(ctx, callbackUpdate(42, "edit_request"))

		text := f.sender.lastText()
		assert.Contains(t, text, content.TypePost.DisplayName())
		assert.Contains(t, text, "осенняя распродажа")
		assert.Contains(t, text, "Напишите новый запрос")
	})

	t.Run("empty session", func(t *testing.T) {
		f := newFixture()

		f.dispatcher.HandleUpdate(context.Background(), callbackUpdate(42, "edit_request"))

		text := f.sender.lastText()
		assert.Contains(t, text, "Напишите новый запрос")
		assert.NotContains(t, text, "Тип контента")
		assert.NotContains(t, text, "Текущий запрос")
	})
}

func TestSettingsSelectionUpdatesSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.dispatcher.HandleUpdate(ctx, callbackUpdate(42, "lang_en"))
	f.dispatcher.HandleUpdate(ctx, callbackUpdate(42, "length_long"))
	f.dispatcher.HandleUpdate(ctx, callbackUpdate(42, "style_business"))

	settings := f.sessions.Get(42).Settings
	assert.Equal(t, content.LanguageEN, settings.Language)
	assert.Equal(t, content.LengthLong, settings.Length)
	assert.Equal(t, content.StyleBusiness, settings.Style)

	// Each selection confirms the change above the refreshed overview.
	assert.Contains(t, f.sender.lastText(), "✅ Стиль изменен: 🎯 Деловой")
	assert.Contains(t, f.sender.lastText(), "Настройки AI")
}

func TestFilterByStatusCallback(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.store.CreateIdea(ctx, "черновик", "текст")
	require.NoError(t, err)

	f.dispatcher.HandleUpdate(ctx, callbackUpdate(42, "filter_status_PUBLISHED"))
	assert.Contains(t, f.sender.lastText(), "У вас нет идей со статусом")

	f.dispatcher.HandleUpdate(ctx, callbackUpdate(42, "filter_status_DRAFT"))
	assert.Contains(t, f.sender.lastText(), "черновик")
}

func TestUpdateWithoutContentIsIgnored(t *testing.T) {
	f := newFixture()

	f.dispatcher.HandleUpdate(context.Background(), telegram.Update{UpdateID: 7})

	assert.Empty(t, f.sender.sent)
	assert.Empty(t, f.generator.prompts)
}
