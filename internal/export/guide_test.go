package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
)

func TestBuildPrepGuide(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	responses := []db.Response{
		{QuestionText: "sit-1", QuestionType: db.QuestionTypeSituational},
		{QuestionText: "beh-1", QuestionType: db.QuestionTypeBehavioral},
		{QuestionText: "beh-2", QuestionType: db.QuestionTypeBehavioral},
	}

	guide := BuildPrepGuide(responses, now)

	assert.Equal(t, "Interview Prep Guide", guide.Title)
	assert.Equal(t, now, guide.GeneratedAt)
	assert.Equal(t, 3, guide.TotalResponses)

	// fixed type order, empty types omitted
	require.Len(t, guide.Sections, 2)
	assert.Equal(t, db.QuestionTypeBehavioral, guide.Sections[0].QuestionType)
	assert.Len(t, guide.Sections[0].Responses, 2)
	assert.Equal(t, db.QuestionTypeSituational, guide.Sections[1].QuestionType)
	assert.Equal(t, "sit-1", guide.Sections[1].Responses[0].QuestionText)
}

func TestBuildPrepGuide_Empty(t *testing.T) {
	guide := BuildPrepGuide(nil, time.Now())

	assert.Equal(t, 0, guide.TotalResponses)
	assert.Empty(t, guide.Sections)
}

func TestBuildPrepGuide_PreservesInputOrderWithinSection(t *testing.T) {
	responses := []db.Response{
		{QuestionText: "first", QuestionType: db.QuestionTypeTechnical},
		{QuestionText: "second", QuestionType: db.QuestionTypeTechnical},
	}

	guide := BuildPrepGuide(responses, time.Now())

	require.Len(t, guide.Sections, 1)
	assert.Equal(t, "first", guide.Sections[0].Responses[0].QuestionText)
	assert.Equal(t, "second", guide.Sections[0].Responses[1].QuestionText)
}
