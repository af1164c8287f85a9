// Package gaps computes question-type and category coverage over a user's
// response library and suggests what to prepare next.
package gaps

import (
	"fmt"
	"strings"

	"github.com/mmaryam28/Propel-ATS-sub003/internal/db"
)

// DefaultCategories is the reference list of common interview question
// categories checked for coverage. Injected into the analyzer so it can be
// extended without code changes.
var DefaultCategories = []string{
	"leadership",
	"problem-solving",
	"conflict-resolution",
	"teamwork",
	"time-management",
	"communication",
	"adaptability",
	"technical-skills",
	"system-design",
	"debugging",
}

// Analyzer computes coverage gaps against a reference category list
type Analyzer struct {
	categories []string
}

// NewAnalyzer creates an analyzer. A nil or empty category list falls back
// to the default reference list.
func NewAnalyzer(categories []string) *Analyzer {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	return &Analyzer{categories: categories}
}

// Report describes the coverage of a response library
type Report struct {
	TypeCounts                 map[string]int `json:"type_counts"`
	CategoryCounts             map[string]int `json:"category_counts"`
	MissingTypes               []string       `json:"missing_types"`
	MissingCategories          []string       `json:"missing_categories"`
	UnderrepresentedCategories []string       `json:"underrepresented_categories"`
	Suggestions                []string       `json:"suggestions"`
}

// IdentifyGaps tallies responses per question type and per reference
// category. A category with zero responses is missing; one with exactly one
// response is underrepresented.
func (a *Analyzer) IdentifyGaps(responses []db.Response) *Report {
	typeCounts := make(map[string]int, len(db.QuestionTypes))
	for _, qt := range db.QuestionTypes {
		typeCounts[qt] = 0
	}
	categoryCounts := make(map[string]int, len(a.categories))
	for _, c := range a.categories {
		categoryCounts[c] = 0
	}

	for _, resp := range responses {
		if _, ok := typeCounts[resp.QuestionType]; ok {
			typeCounts[resp.QuestionType]++
		}
		if resp.QuestionCategory != nil {
			category := strings.ToLower(strings.TrimSpace(*resp.QuestionCategory))
			if _, ok := categoryCounts[category]; ok {
				categoryCounts[category]++
			}
		}
	}

	report := &Report{
		TypeCounts:     typeCounts,
		CategoryCounts: categoryCounts,
	}
	for _, qt := range db.QuestionTypes {
		if typeCounts[qt] == 0 {
			report.MissingTypes = append(report.MissingTypes, qt)
		}
	}
	for _, c := range a.categories {
		switch categoryCounts[c] {
		case 0:
			report.MissingCategories = append(report.MissingCategories, c)
		case 1:
			report.UnderrepresentedCategories = append(report.UnderrepresentedCategories, c)
		}
	}

	report.Suggestions = buildSuggestions(report)
	return report
}

// buildSuggestions produces the human-readable recommendations: missing
// types first, then up to three missing categories, otherwise an
// adequate-coverage note.
func buildSuggestions(report *Report) []string {
	var suggestions []string

	if len(report.MissingTypes) > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"Add responses for these question types: %s.",
			strings.Join(report.MissingTypes, ", ")))
	}

	if len(report.MissingCategories) > 0 {
		recommended := report.MissingCategories
		if len(recommended) > 3 {
			recommended = recommended[:3]
		}
		suggestions = append(suggestions, fmt.Sprintf(
			"Consider preparing answers for: %s.",
			strings.Join(recommended, ", ")))
	} else {
		suggestions = append(suggestions, "Your response library covers all common categories.")
	}

	return suggestions
}
