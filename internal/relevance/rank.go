// Package relevance ranks stored responses against a job description using
// keyword overlap between response tags and skills mentioned in the
// posting. Heuristic matching, not semantic.
package relevance

import (
	"sort"
	"strings"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
)

// maxSuggestions caps how many ranked responses a suggestion returns
const maxSuggestions = 5

// Ranker scores responses against job descriptions using an injected skill
// vocabulary.
type Ranker struct {
	vocabulary []string
}

// NewRanker creates a ranker. A nil or empty vocabulary falls back to the
// default list.
func NewRanker(vocabulary []string) *Ranker {
	if len(vocabulary) == 0 {
		vocabulary = DefaultSkillVocabulary
	}
	return &Ranker{vocabulary: vocabulary}
}

// Suggestion pairs a response with its relevance evidence
type Suggestion struct {
	Response      db.Response `json:"response"`
	MatchCount    int         `json:"match_count"`
	MatchedSkills []string    `json:"matched_skills"`
}

// ExtractSkills returns the vocabulary entries mentioned in the job
// description, matched case-insensitively by substring.
func (r *Ranker) ExtractSkills(jobDescription string) []string {
	lowered := strings.ToLower(jobDescription)

	var skills []string
	for _, skill := range r.vocabulary {
		if strings.Contains(lowered, strings.ToLower(skill)) {
			skills = append(skills, skill)
		}
	}
	return skills
}

// SuggestForJob ranks the given responses against a job description.
// matchCount is the number of a response's tags that overlap the extracted
// skill set (substring relation in either direction, case-insensitive).
// Zero-match responses are dropped; the rest sort by matchCount descending
// with success_rate (null treated as 0) breaking ties. At most five
// suggestions are returned.
func (r *Ranker) SuggestForJob(jobDescription string, responses []db.Response) []Suggestion {
	skills := r.ExtractSkills(jobDescription)
	if len(skills) == 0 {
		return nil
	}

	var suggestions []Suggestion
	for _, resp := range responses {
		count, matched := countTagMatches(resp.Tags, skills)
		if count == 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Response:      resp,
			MatchCount:    count,
			MatchedSkills: matched,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].MatchCount != suggestions[j].MatchCount {
			return suggestions[i].MatchCount > suggestions[j].MatchCount
		}
		return successRate(&suggestions[i].Response) > successRate(&suggestions[j].Response)
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// countTagMatches counts tags related to any extracted skill. A tag
// matches a skill when either string contains the other, ignoring case.
func countTagMatches(tags []db.Tag, skills []string) (int, []string) {
	count := 0
	matchedSet := make(map[string]bool)
	var matched []string

	for _, tag := range tags {
		tagValue := strings.ToLower(tag.TagValue)
		for _, skill := range skills {
			s := strings.ToLower(skill)
			if strings.Contains(tagValue, s) || strings.Contains(s, tagValue) {
				count++
				if !matchedSet[skill] {
					matchedSet[skill] = true
					matched = append(matched, skill)
				}
				break
			}
		}
	}
	return count, matched
}

func successRate(r *db.Response) float64 {
	if r.SuccessRate == nil {
		return 0
	}
	return *r.SuccessRate
}
