package library

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
)

// AddTags appends tags to a response and returns the refreshed response.
// No dedup is enforced on (type, value) pairs.
func (s *Service) AddTags(ctx context.Context, userID, responseID uuid.UUID, tags []db.TagInput) (*db.Response, error) {
	resp, err := s.store.GetResponse(ctx, responseID, userID)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &NotFoundError{Resource: "response", ID: responseID.String()}
	}

	for _, tag := range tags {
		if strings.TrimSpace(tag.TagValue) == "" {
			return nil, &ValidationError{Field: "tag_value", Message: "must not be empty"}
		}
	}

	if err := s.store.AddTags(ctx, responseID, tags); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, responseID)
}

// RemoveTags deletes the given tag IDs from a response and returns the
// refreshed response. IDs scoped to other responses are ignored.
func (s *Service) RemoveTags(ctx context.Context, userID, responseID uuid.UUID, tagIDs []uuid.UUID) (*db.Response, error) {
	resp, err := s.store.GetResponse(ctx, responseID, userID)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &NotFoundError{Resource: "response", ID: responseID.String()}
	}

	if err := s.store.RemoveTags(ctx, responseID, tagIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, responseID)
}
