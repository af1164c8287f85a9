// Package export assembles a structured interview prep guide from a user's
// response library. Pure read; no side effects.
package export

import (
	"time"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
)

// Guide is a grouped snapshot of the library, ready for rendering
type Guide struct {
	Title          string    `json:"title"`
	GeneratedAt    time.Time `json:"generated_at"`
	TotalResponses int       `json:"total_responses"`
	Sections       []Section `json:"sections"`
}

// Section groups responses sharing a question type
type Section struct {
	QuestionType string        `json:"question_type"`
	Responses    []db.Response `json:"responses"`
}

// BuildPrepGuide groups the given responses by question type. Sections
// appear in the fixed question-type order; empty types are omitted. The
// caller applies filter semantics before handing over the responses, so
// this sees the same set a filtered listing would.
func BuildPrepGuide(responses []db.Response, now time.Time) *Guide {
	byType := make(map[string][]db.Response)
	for _, resp := range responses {
		byType[resp.QuestionType] = append(byType[resp.QuestionType], resp)
	}

	guide := &Guide{
		Title:          "Interview Prep Guide",
		GeneratedAt:    now,
		TotalResponses: len(responses),
	}
	for _, qt := range db.QuestionTypes {
		if group, ok := byType[qt]; ok {
			guide.Sections = append(guide.Sections, Section{
				QuestionType: qt,
				Responses:    group,
			})
		}
	}
	return guide
}
