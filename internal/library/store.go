package library

import (
	"context"

	"github.com/google/uuid"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/feedback"
)

// Store is the persistence surface the response library needs. *db.DB
// implements it; tests substitute an in-memory fake.
type Store interface {
	CreateResponse(ctx context.Context, input *db.ResponseCreateInput) (*db.Response, error)
	GetResponse(ctx context.Context, id, userID uuid.UUID) (*db.Response, error)
	ListResponses(ctx context.Context, userID uuid.UUID, filters db.ResponseFilters) ([]db.Response, error)
	UpdateResponseFields(ctx context.Context, id, userID uuid.UUID, input *db.ResponseUpdateInput) (*db.Response, error)
	DeleteResponse(ctx context.Context, id, userID uuid.UUID) (bool, error)

	InsertNextVersion(ctx context.Context, responseID uuid.UUID, responseText string, aiFeedback []byte) (*db.Version, error)
	GetVersion(ctx context.Context, versionID, responseID uuid.UUID) (*db.Version, error)
	ListVersions(ctx context.Context, responseID uuid.UUID) ([]db.Version, error)
	RestoreVersion(ctx context.Context, responseID uuid.UUID, version *db.Version) error

	AddTags(ctx context.Context, responseID uuid.UUID, tags []db.TagInput) error
	RemoveTags(ctx context.Context, responseID uuid.UUID, tagIDs []uuid.UUID) error
	SearchResponsesByTags(ctx context.Context, userID uuid.UUID, tagValues []string) ([]db.Response, error)

	CreateOutcome(ctx context.Context, input *db.OutcomeCreateInput) (*db.Outcome, error)
	ListOutcomes(ctx context.Context, responseID uuid.UUID) ([]db.Outcome, error)
}

// Analyzer is the slice of the feedback generator the library uses. The
// bool reports whether the payload came from the remote generator; false
// means the deterministic fallback.
type Analyzer interface {
	Analyze(ctx context.Context, text, questionType string) (*feedback.AnswerFeedback, bool)
}
