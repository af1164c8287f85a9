// Package practice records rehearsal attempts against stored answers and
// attaches comparative feedback to each one. Practice sessions are
// independent of the version chain.
package practice

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
	"github.com/mmaryam28/Propel-ATS-sub003/internal/feedback"
)

// Store is the persistence surface the coach needs. *db.DB implements it.
type Store interface {
	GetResponse(ctx context.Context, id, userID uuid.UUID) (*db.Response, error)
	CreatePracticeSession(ctx context.Context, input *db.PracticeSessionCreateInput) (*db.PracticeSession, error)
	ListPracticeSessions(ctx context.Context, responseID uuid.UUID) ([]db.PracticeSession, error)
}

// Comparer is the slice of the feedback generator the coach uses
type Comparer interface {
	ComparePractice(ctx context.Context, originalText, practiceText, questionType string) (*feedback.PracticeFeedback, bool)
}

// Coach records practice sessions with comparative feedback
type Coach struct {
	store    Store
	comparer Comparer
}

// NewCoach creates a practice coach
func NewCoach(store Store, comparer Comparer) *Coach {
	return &Coach{store: store, comparer: comparer}
}

// ValidationError indicates missing practice input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// NotFoundError indicates the target response is absent or not owned by
// the caller.
type NotFoundError struct {
	ResponseID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("response not found: %s", e.ResponseID)
}

// SessionResult bundles the persisted session with its comparison payload
type SessionResult struct {
	Session        *db.PracticeSession        `json:"session"`
	Feedback       *feedback.PracticeFeedback `json:"feedback"`
	ComparisonNote string                     `json:"comparison_note"`
}

// CreateSession compares a practice delivery against the response's current
// text, persists the session and bumps the response's practice count. The
// comparison is best-effort: a degraded generator yields the fallback note,
// never a failure.
func (c *Coach) CreateSession(ctx context.Context, userID, responseID uuid.UUID, practiceText string, deliveryTime *int) (*SessionResult, error) {
	if strings.TrimSpace(practiceText) == "" {
		return nil, &ValidationError{Field: "practice_text", Message: "must not be empty"}
	}

	resp, err := c.store.GetResponse(ctx, responseID, userID)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &NotFoundError{ResponseID: responseID}
	}

	fb, remote := c.comparer.ComparePractice(ctx, resp.CurrentResponse, practiceText, resp.QuestionType)

	var stored []byte
	if remote {
		stored, err = json.Marshal(fb)
		if err != nil {
			log.Printf("[practice] failed to marshal feedback: %v", err)
			stored = nil
		}
	}

	session, err := c.store.CreatePracticeSession(ctx, &db.PracticeSessionCreateInput{
		UserID:       userID,
		ResponseID:   responseID,
		PracticeText: practiceText,
		DeliveryTime: deliveryTime,
		AIScore:      fb.Score,
		AIFeedback:   stored,
	})
	if err != nil {
		return nil, err
	}

	return &SessionResult{
		Session:        session,
		Feedback:       fb,
		ComparisonNote: fb.ComparisonNote,
	}, nil
}

// ListSessions returns all practice sessions for a response, newest first
func (c *Coach) ListSessions(ctx context.Context, userID, responseID uuid.UUID) ([]db.PracticeSession, error) {
	resp, err := c.store.GetResponse(ctx, responseID, userID)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &NotFoundError{ResponseID: responseID}
	}
	return c.store.ListPracticeSessions(ctx, responseID)
}
