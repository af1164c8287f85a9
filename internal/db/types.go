package db

import (
	"time"

	"github.com/google/uuid"
)

// QuestionType constants for the fixed set of interview question types
const (
	QuestionTypeBehavioral  = "behavioral"
	QuestionTypeTechnical   = "technical"
	QuestionTypeSituational = "situational"
)

// QuestionTypes lists every valid question type.
var QuestionTypes = []string{
	QuestionTypeBehavioral,
	QuestionTypeTechnical,
	QuestionTypeSituational,
}

// ValidQuestionType checks if a question type value is one of the fixed set
func ValidQuestionType(qt string) bool {
	switch qt {
	case QuestionTypeBehavioral, QuestionTypeTechnical, QuestionTypeSituational:
		return true
	default:
		return false
	}
}

// OutcomeResult constants for recorded interview outcomes
const (
	OutcomeOffer     = "offer"
	OutcomeNextRound = "next_round"
	OutcomeRejected  = "rejected"
	OutcomePending   = "pending"
)

// ValidOutcomeResult checks if an outcome value is valid
func ValidOutcomeResult(o string) bool {
	switch o {
	case OutcomeOffer, OutcomeNextRound, OutcomeRejected, OutcomePending:
		return true
	default:
		return false
	}
}

// InterviewerReaction constants
const (
	ReactionPositive = "positive"
	ReactionNeutral  = "neutral"
	ReactionNegative = "negative"
)

// ValidInterviewerReaction checks if a reaction value is valid
func ValidInterviewerReaction(r string) bool {
	switch r {
	case ReactionPositive, ReactionNeutral, ReactionNegative:
		return true
	default:
		return false
	}
}

// Response represents a stored interview answer. CurrentResponse always
// mirrors the text of the version identified by CurrentVersionID.
type Response struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	QuestionText     string    `json:"question_text"`
	QuestionType     string    `json:"question_type"`
	QuestionCategory *string   `json:"question_category,omitempty"`
	CurrentResponse  string    `json:"current_response"`
	CurrentVersionID uuid.UUID `json:"current_version_id"`
	IsFavorite       bool      `json:"is_favorite"`
	PracticeCount    int       `json:"practice_count"`
	SuccessCount     int       `json:"success_count"`
	TotalUses        int       `json:"total_uses"`
	SuccessRate      *float64  `json:"success_rate,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Denormalized for convenience (loaded via joins or separate queries)
	Tags []Tag `json:"tags,omitempty"`
}

// Version is one immutable snapshot in a response's version chain.
// Version numbers are unique per response and strictly increasing from 1.
type Version struct {
	ID            uuid.UUID `json:"id"`
	ResponseID    uuid.UUID `json:"response_id"`
	VersionNumber int       `json:"version_number"`
	ResponseText  string    `json:"response_text"`
	AIFeedback    []byte    `json:"ai_feedback,omitempty"` // structured feedback JSON, nil when analysis failed
	CreatedAt     time.Time `json:"created_at"`
}

// Tag labels a response for relevance matching. Duplicate (type, value)
// pairs are allowed.
type Tag struct {
	ID         uuid.UUID `json:"id"`
	ResponseID uuid.UUID `json:"response_id"`
	TagType    string    `json:"tag_type"`
	TagValue   string    `json:"tag_value"`
}

// Outcome records how an answer landed in a real interview. Append-only.
type Outcome struct {
	ID                  uuid.UUID  `json:"id"`
	ResponseID          uuid.UUID  `json:"response_id"`
	JobID               *uuid.UUID `json:"job_id,omitempty"`
	InterviewDate       *time.Time `json:"interview_date,omitempty"`
	Company             *string    `json:"company,omitempty"`
	Position            *string    `json:"position,omitempty"`
	Outcome             string     `json:"outcome"`
	InterviewerReaction *string    `json:"interviewer_reaction,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// PracticeSession records one rehearsal attempt against the current answer.
type PracticeSession struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	ResponseID   uuid.UUID `json:"response_id"`
	PracticeText string    `json:"practice_text"`
	DeliveryTime *int      `json:"delivery_time,omitempty"` // seconds
	AIScore      float64   `json:"ai_score"`
	AIFeedback   []byte    `json:"ai_feedback,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Job is a saved job posting that responses can be matched against.
type Job struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	Description string    `json:"description"`
	SourceURL   *string   `json:"source_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// User is an account record for the auth boundary.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResponseFilters holds optional filters for listing responses
type ResponseFilters struct {
	QuestionType     string
	QuestionCategory string
	IsFavorite       *bool
	Tags             []string // membership: at least one tag value in this set
}

// ResponseCreateInput carries the fields needed to create a response with
// its first version in one transaction.
type ResponseCreateInput struct {
	UserID           uuid.UUID
	QuestionText     string
	QuestionType     string
	QuestionCategory *string
	ResponseText     string
	AIFeedback       []byte
	Tags             []TagInput
}

// ResponseUpdateInput carries partial field updates. Nil pointers leave the
// stored value untouched.
type ResponseUpdateInput struct {
	QuestionText     *string
	QuestionType     *string
	QuestionCategory *string
	IsFavorite       *bool
	SuccessCount     *int
	TotalUses        *int
	SuccessRate      *float64
}

// TagInput is one tag to attach to a response
type TagInput struct {
	TagType  string `json:"tag_type"`
	TagValue string `json:"tag_value"`
}

// OutcomeCreateInput carries the fields for recording an outcome
type OutcomeCreateInput struct {
	ResponseID          uuid.UUID
	JobID               *uuid.UUID
	InterviewDate       *time.Time
	Company             *string
	Position            *string
	Outcome             string
	InterviewerReaction *string
	Notes               *string
}

// PracticeSessionCreateInput carries the fields for persisting a practice
// session together with the atomic practice_count increment.
type PracticeSessionCreateInput struct {
	UserID       uuid.UUID
	ResponseID   uuid.UUID
	PracticeText string
	DeliveryTime *int
	AIScore      float64
	AIFeedback   []byte
}
