package v1

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/contentmaker/internal/bot/content"
	"github.com/hrygo/contentmaker/internal/bot/session"
	berrors "github.com/hrygo/contentmaker/internal/errors"
	"github.com/hrygo/contentmaker/store"
)

type createIdeaRequest struct {
	Prompt      string `json:"prompt"`
	ContentType string `json:"contentType,omitempty"` // post, reel, story, hashtags, title
}

type updateStatusRequest struct {
	Status string `json:"status"` // DRAFT, IN_PROGRESS, PUBLISHED
}

type ideaResponse struct {
	ID        int64  `json:"id"`
	UID       string `json:"uid"`
	Prompt    string `json:"prompt"`
	Response  string `json:"response"`
	Status    string `json:"status"`
	CreatedTs int64  `json:"createdTs"`
}

func ideaFromStore(idea *store.ContentIdea) ideaResponse {
	return ideaResponse{
		ID:        idea.ID,
		UID:       idea.UID,
		Prompt:    idea.Prompt,
		Response:  idea.Response,
		Status:    string(idea.Status),
		CreatedTs: idea.CreatedTs,
	}
}

// listIdeas returns stored ideas, optionally filtered by ?status=.
// GET /api/v1/ideas
func (s *APIV1Service) listIdeas(c echo.Context) error {
	find := &store.FindContentIdea{}
	if raw := c.QueryParam("status"); raw != "" {
		status, ok := store.IdeaStatusFromString(raw)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status: "+raw)
		}
		find.Status = &status
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit: "+raw)
		}
		find.Limit = &limit
	}

	ideas, err := s.Store.ListIdeas(c.Request().Context(), find)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]ideaResponse, 0, len(ideas))
	for _, idea := range ideas {
		resp = append(resp, ideaFromStore(idea))
	}
	return c.JSON(http.StatusOK, resp)
}

// createIdea generates content for the prompt and persists the result.
// POST /api/v1/ideas
func (s *APIV1Service) createIdea(c echo.Context) error {
	var req createIdeaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "prompt is required")
	}

	prompt := req.Prompt
	systemPrompt := content.DefaultSystemPrompt
	if req.ContentType != "" {
		typ := content.Type(req.ContentType)
		if !typ.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid contentType: "+req.ContentType)
		}
		prompt = typ.PromptTemplate() + req.Prompt
		systemPrompt = typ.SystemPrompt()
	}
	systemPrompt = systemPrompt + " " + session.DefaultSettings().Instructions()

	ctx := c.Request().Context()
	response, err := s.Generator.Generate(ctx, prompt, systemPrompt)
	if err != nil {
		s.Logger.Error("generation failed", slog.String("error", err.Error()))
		if berrors.IsCode(err, berrors.ErrCodeTimeout) {
			return echo.NewHTTPError(http.StatusGatewayTimeout, "generation timed out")
		}
		return echo.NewHTTPError(http.StatusBadGateway, "generation failed")
	}

	idea, err := s.Store.CreateIdea(ctx, req.Prompt, response)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, ideaFromStore(idea))
}

// getIdea returns one idea by id.
// GET /api/v1/ideas/:id
func (s *APIV1Service) getIdea(c echo.Context) error {
	id, err := parseIdeaID(c)
	if err != nil {
		return err
	}

	idea, err := s.Store.GetIdea(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if idea == nil {
		return echo.NewHTTPError(http.StatusNotFound, "idea not found")
	}
	return c.JSON(http.StatusOK, ideaFromStore(idea))
}

// updateIdeaStatus moves an idea to a new status.
// PUT /api/v1/ideas/:id/status
func (s *APIV1Service) updateIdeaStatus(c echo.Context) error {
	id, err := parseIdeaID(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	status, ok := store.IdeaStatusFromString(req.Status)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status: "+req.Status)
	}

	idea, err := s.Store.UpdateIdeaStatus(c.Request().Context(), id, status)
	if err != nil {
		if berrors.IsCode(err, berrors.ErrCodeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "idea not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ideaFromStore(idea))
}

// deleteIdea removes an idea.
// DELETE /api/v1/ideas/:id
func (s *APIV1Service) deleteIdea(c echo.Context) error {
	id, err := parseIdeaID(c)
	if err != nil {
		return err
	}

	if err := s.Store.DeleteIdea(c.Request().Context(), id); err != nil {
		if berrors.IsCode(err, berrors.ErrCodeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "idea not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func parseIdeaID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid idea id")
	}
	return id, nil
}
