package store

// IdeaStatus is the lifecycle status of a content idea.
type IdeaStatus string

const (
	IdeaStatusDraft      IdeaStatus = "DRAFT"
	IdeaStatusInProgress IdeaStatus = "IN_PROGRESS"
	IdeaStatusPublished  IdeaStatus = "PUBLISHED"
)

// IdeaStatusFromString parses a wire status name. Returns false for
// unrecognized names.
func IdeaStatusFromString(s string) (IdeaStatus, bool) {
	switch IdeaStatus(s) {
	case IdeaStatusDraft, IdeaStatusInProgress, IdeaStatusPublished:
		return IdeaStatus(s), true
	}
	return "", false
}

// ContentIdea is a persisted (prompt, response) record produced by generation.
// ID is assigned by the store and immutable once created.
type ContentIdea struct {
	ID        int64
	UID       string
	Prompt    string
	Response  string
	Status    IdeaStatus
	CreatedTs int64
}

type FindContentIdea struct {
	ID     *int64
	UID    *string
	Status *IdeaStatus
	Limit  *int
}

type UpdateContentIdea struct {
	ID     int64
	Status *IdeaStatus
}

type DeleteContentIdea struct {
	ID int64
}
