package v1

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	berrors "github.com/hrygo/contentmaker/internal/errors"
	"github.com/hrygo/contentmaker/store"
)

type fakeStore struct {
	ideas  map[int64]*store.ContentIdea
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{ideas: map[int64]*store.ContentIdea{}, nextID: 1}
}

func (f *fakeStore) CreateIdea(_ context.Context, prompt, response string) (*store.ContentIdea, error) {
	idea := &store.ContentIdea{
		ID:       f.nextID,
		UID:      "uid",
		Prompt:   prompt,
		Response: response,
		Status:   store.IdeaStatusDraft,
	}
	f.nextID++
	f.ideas[idea.ID] = idea
	return idea, nil
}

func (f *fakeStore) ListIdeas(_ context.Context, find *store.FindContentIdea) ([]*store.ContentIdea, error) {
	result := []*store.ContentIdea{}
	for _, idea := range f.ideas {
		if find != nil && find.Status != nil && idea.Status != *find.Status {
			continue
		}
		result = append(result, idea)
	}
	return result, nil
}

func (f *fakeStore) GetIdea(_ context.Context, id int64) (*store.ContentIdea, error) {
	return f.ideas[id], nil
}

func (f *fakeStore) UpdateIdeaStatus(_ context.Context, id int64, status store.IdeaStatus) (*store.ContentIdea, error) {
	idea, ok := f.ideas[id]
	if !ok {
		return nil, berrors.NotFound("idea not found")
	}
	idea.Status = status
	return idea, nil
}

func (f *fakeStore) DeleteIdea(_ context.Context, id int64) error {
	if _, ok := f.ideas[id]; !ok {
		return berrors.NotFound("idea not found")
	}
	delete(f.ideas, id)
	return nil
}

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt, _ string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestService() (*APIV1Service, *fakeStore, *fakeGenerator, *echo.Echo) {
	fs := newFakeStore()
	fg := &fakeGenerator{response: "generated text"}
	svc := NewAPIV1Service(fs, fg, slog.Default())
	e := echo.New()
	svc.RegisterRoutes(e)
	return svc, fs, fg, e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateIdea(t *testing.T) {
	_, fs, fg, e := newTestService()

	rec := doRequest(e, http.MethodPost, "/api/v1/ideas",
		`{"prompt":"идеи для блога","contentType":"post"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got ideaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "идеи для блога", got.Prompt)
	assert.Equal(t, "generated text", got.Response)
	assert.Equal(t, "DRAFT", got.Status)

	// The template prefix is applied to the generation prompt, but the raw
	// user prompt is what gets persisted.
	require.Len(t, fg.prompts, 1)
	assert.Contains(t, fg.prompts[0], "идеи для блога")
	assert.NotEqual(t, "идеи для блога", fg.prompts[0])
	assert.Len(t, fs.ideas, 1)
}

func TestCreateIdeaValidation(t *testing.T) {
	_, _, _, e := newTestService()

	rec := doRequest(e, http.MethodPost, "/api/v1/ideas", `{"prompt":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/v1/ideas",
		`{"prompt":"x","contentType":"sonnet"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateIdeaUpstreamFailure(t *testing.T) {
	_, fs, fg, e := newTestService()
	fg.err = berrors.Upstream("rate limited", nil)

	rec := doRequest(e, http.MethodPost, "/api/v1/ideas", `{"prompt":"x"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, fs.ideas)

	fg.err = berrors.Timeout("deadline exceeded")
	rec = doRequest(e, http.MethodPost, "/api/v1/ideas", `{"prompt":"x"}`)
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestListIdeasFiltered(t *testing.T) {
	_, fs, _, e := newTestService()
	idea, err := fs.CreateIdea(context.Background(), "p1", "r1")
	require.NoError(t, err)
	idea.Status = store.IdeaStatusPublished
	_, err = fs.CreateIdea(context.Background(), "p2", "r2")
	require.NoError(t, err)

	rec := doRequest(e, http.MethodGet, "/api/v1/ideas?status=PUBLISHED", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []ideaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].Prompt)

	rec = doRequest(e, http.MethodGet, "/api/v1/ideas?status=NOPE", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetIdea(t *testing.T) {
	_, fs, _, e := newTestService()
	_, err := fs.CreateIdea(context.Background(), "p", "r")
	require.NoError(t, err)

	rec := doRequest(e, http.MethodGet, "/api/v1/ideas/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/ideas/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/ideas/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateIdeaStatus(t *testing.T) {
	_, fs, _, e := newTestService()
	_, err := fs.CreateIdea(context.Background(), "p", "r")
	require.NoError(t, err)

	rec := doRequest(e, http.MethodPut, "/api/v1/ideas/1/status", `{"status":"IN_PROGRESS"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, store.IdeaStatusInProgress, fs.ideas[1].Status)

	rec = doRequest(e, http.MethodPut, "/api/v1/ideas/1/status", `{"status":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPut, "/api/v1/ideas/99/status", `{"status":"PUBLISHED"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteIdea(t *testing.T) {
	_, fs, _, e := newTestService()
	_, err := fs.CreateIdea(context.Background(), "p", "r")
	require.NoError(t, err)

	rec := doRequest(e, http.MethodDelete, "/api/v1/ideas/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, fs.ideas)

	rec = doRequest(e, http.MethodDelete, "/api/v1/ideas/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
