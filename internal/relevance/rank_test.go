package relevance

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
)

func taggedResponse(question string, rate *float64, tagValues ...string) db.Response {
	id := uuid.New()
	resp := db.Response{
		ID:           id,
		QuestionText: question,
		QuestionType: db.QuestionTypeBehavioral,
		SuccessRate:  rate,
	}
	for _, v := range tagValues {
		resp.Tags = append(resp.Tags, db.Tag{
			ID:         uuid.New(),
			ResponseID: id,
			TagType:    "skill",
			TagValue:   v,
		})
	}
	return resp
}

func rate(v float64) *float64 { return &v }

func TestExtractSkills(t *testing.T) {
	r := NewRanker(nil)

	skills := r.ExtractSkills("We need a Python developer with strong SQL and Kubernetes experience.")

	assert.Contains(t, skills, "python")
	assert.Contains(t, skills, "sql")
	assert.Contains(t, skills, "kubernetes")
	assert.NotContains(t, skills, "java")
}

func TestExtractSkills_CaseInsensitive(t *testing.T) {
	r := NewRanker([]string{"terraform"})

	assert.Equal(t, []string{"terraform"}, r.ExtractSkills("Experience with TERRAFORM required"))
	assert.Empty(t, r.ExtractSkills("no infrastructure tools mentioned"))
}

func TestSuggestForJob_RanksByMatchCount(t *testing.T) {
	r := NewRanker(nil)
	description := "Looking for a backend engineer. Python and SQL required."

	both := taggedResponse("Tell me about a data pipeline you built.", nil, "python", "sql")
	pythonOnly := taggedResponse("Describe a script you automated.", nil, "python")
	unrelated := taggedResponse("How do you handle conflict?", nil, "communication")

	suggestions := r.SuggestForJob(description, []db.Response{unrelated, pythonOnly, both})

	require.Len(t, suggestions, 2)
	assert.Equal(t, both.ID, suggestions[0].Response.ID)
	assert.Equal(t, 2, suggestions[0].MatchCount)
	assert.ElementsMatch(t, []string{"python", "sql"}, suggestions[0].MatchedSkills)
	assert.Equal(t, pythonOnly.ID, suggestions[1].Response.ID)
	assert.Equal(t, 1, suggestions[1].MatchCount)
}

func TestSuggestForJob_SuccessRateBreaksTies(t *testing.T) {
	r := NewRanker(nil)
	description := "Python developer wanted."

	low := taggedResponse("low", rate(0.2), "python")
	high := taggedResponse("high", rate(0.9), "python")
	unrated := taggedResponse("unrated", nil, "python")

	suggestions := r.SuggestForJob(description, []db.Response{unrated, low, high})

	require.Len(t, suggestions, 3)
	assert.Equal(t, high.ID, suggestions[0].Response.ID)
	assert.Equal(t, low.ID, suggestions[1].Response.ID)
	// a null success rate sorts as zero, below any rated response
	assert.Equal(t, unrated.ID, suggestions[2].Response.ID)
}

func TestSuggestForJob_BidirectionalSubstringMatch(t *testing.T) {
	r := NewRanker([]string{"sql"})

	// tag contains the skill
	postgres := taggedResponse("postgres work", nil, "postgresql")
	suggestions := r.SuggestForJob("SQL experience needed", []db.Response{postgres})
	require.Len(t, suggestions, 1)
	assert.Equal(t, 1, suggestions[0].MatchCount)
}

func TestSuggestForJob_CapsAtFive(t *testing.T) {
	r := NewRanker(nil)

	var responses []db.Response
	for i := 0; i < 8; i++ {
		responses = append(responses, taggedResponse(fmt.Sprintf("q%d", i), rate(float64(i)/10), "python"))
	}

	suggestions := r.SuggestForJob("Python role", responses)

	require.Len(t, suggestions, 5)
	// highest success rates survive the cap
	assert.Equal(t, 0.7, *suggestions[0].Response.SuccessRate)
	assert.Equal(t, 0.3, *suggestions[4].Response.SuccessRate)
}

func TestSuggestForJob_NoSkillsInDescription(t *testing.T) {
	r := NewRanker(nil)
	tagged := taggedResponse("q", nil, "python")

	assert.Empty(t, r.SuggestForJob("We want someone nice.", []db.Response{tagged}))
}

func TestSuggestForJob_ZeroMatchesDropped(t *testing.T) {
	r := NewRanker(nil)
	untagged := taggedResponse("q", nil)

	assert.Empty(t, r.SuggestForJob("Python role", []db.Response{untagged}))
}
