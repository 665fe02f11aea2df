package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/lithammer/shortuuid/v4"

	berrors "github.com/hrygo/contentmaker/internal/errors"
	"github.com/hrygo/contentmaker/internal/profile"
)

// Limits applied on the truncate retry when a write fails due to
// oversized fields.
const (
	maxPromptLen   = 4000
	maxResponseLen = 9000
)

// Store provides database access to persisted content ideas.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// Migrate applies the database schema.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.driver.Migrate(ctx); err != nil {
		return berrors.Wrap(err, berrors.ErrCodePersistence, "failed to apply database schema")
	}
	return nil
}

// CreateIdea persists a new DRAFT idea. If the write fails (typically due to
// oversized fields), it retries exactly once with the prompt truncated to 4000
// and the response truncated to 9000 characters; a second failure is reported
// as a persistence error.
func (s *Store) CreateIdea(ctx context.Context, prompt, response string) (*ContentIdea, error) {
	if prompt == "" {
		return nil, berrors.Validation("prompt must not be empty")
	}

	idea := &ContentIdea{
		UID:       shortuuid.New(),
		Prompt:    prompt,
		Response:  response,
		Status:    IdeaStatusDraft,
		CreatedTs: time.Now().Unix(),
	}

	created, err := s.driver.CreateContentIdea(ctx, idea)
	if err == nil {
		return created, nil
	}
	slog.Error("failed to save content idea, retrying with truncated text", "error", err)

	idea.Prompt = truncateWithEllipsis(prompt, maxPromptLen)
	idea.Response = truncateWithEllipsis(response, maxResponseLen)

	created, retryErr := s.driver.CreateContentIdea(ctx, idea)
	if retryErr != nil {
		return nil, berrors.Persistence("failed to save content idea even after truncation", retryErr)
	}
	slog.Warn("content idea saved with truncated text", "id", created.ID)
	return created, nil
}

// ListIdeas returns ideas matching find, newest first.
func (s *Store) ListIdeas(ctx context.Context, find *FindContentIdea) ([]*ContentIdea, error) {
	if find == nil {
		find = &FindContentIdea{}
	}
	return s.driver.ListContentIdeas(ctx, find)
}

// GetIdea returns the idea with the given id, or nil if it does not exist.
func (s *Store) GetIdea(ctx context.Context, id int64) (*ContentIdea, error) {
	ideas, err := s.driver.ListContentIdeas(ctx, &FindContentIdea{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(ideas) == 0 {
		return nil, nil
	}
	return ideas[0], nil
}

// UpdateIdeaStatus moves the idea with the given id to a new status.
// Returns a NOT_FOUND error if the idea does not exist.
func (s *Store) UpdateIdeaStatus(ctx context.Context, id int64, status IdeaStatus) (*ContentIdea, error) {
	updated, err := s.driver.UpdateContentIdea(ctx, &UpdateContentIdea{ID: id, Status: &status})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, berrors.NotFound("content idea not found")
	}
	return updated, nil
}

// DeleteIdea removes the idea with the given id.
// Returns a NOT_FOUND error if the idea does not exist.
func (s *Store) DeleteIdea(ctx context.Context, id int64) error {
	affected, err := s.driver.DeleteContentIdea(ctx, &DeleteContentIdea{ID: id})
	if err != nil {
		return err
	}
	if affected == 0 {
		return berrors.NotFound("content idea not found")
	}
	return nil
}

func truncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
