// Package v1 exposes the REST surface of the idea store, mirroring the bot's
// generation and idea management operations for non-Telegram clients.
package v1

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/contentmaker/plugin/ai"
	"github.com/hrygo/contentmaker/store"
)

// ContentStore is the persistence surface the API needs.
type ContentStore interface {
	CreateIdea(ctx context.Context, prompt, response string) (*store.ContentIdea, error)
	ListIdeas(ctx context.Context, find *store.FindContentIdea) ([]*store.ContentIdea, error)
	GetIdea(ctx context.Context, id int64) (*store.ContentIdea, error)
	UpdateIdeaStatus(ctx context.Context, id int64, status store.IdeaStatus) (*store.ContentIdea, error)
	DeleteIdea(ctx context.Context, id int64) error
}

// APIV1Service wires the HTTP routes to the store and the generation backend.
type APIV1Service struct {
	Store     ContentStore
	Generator ai.Generator
	Logger    *slog.Logger
}

func NewAPIV1Service(contentStore ContentStore, generator ai.Generator, logger *slog.Logger) *APIV1Service {
	return &APIV1Service{
		Store:     contentStore,
		Generator: generator,
		Logger:    logger,
	}
}

// RegisterRoutes mounts all v1 routes on the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.GET("/ideas", s.listIdeas)
	g.POST("/ideas", s.createIdea)
	g.GET("/ideas/:id", s.getIdea)
	g.PUT("/ideas/:id/status", s.updateIdeaStatus)
	g.DELETE("/ideas/:id", s.deleteIdea)
}
