package feedback

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"
)

// wordsPerMinute is the assumed spoken delivery rate used to estimate how
// long an answer takes to say out loud.
const wordsPerMinute = 150

// UnavailableMessage is the fixed text carried by fallback payloads
const UnavailableMessage = "Automated feedback is currently unavailable."

// fallbackScore is the neutral mid-range score used when the remote
// generator cannot be reached or returns garbage.
const fallbackScore = 5.0

// Generator wraps a completion client with the never-fail feedback
// contract: every call resolves to a payload, remote or fallback, within
// the configured timeout. Failures are logged, never returned.
type Generator struct {
	client  Client
	timeout time.Duration
}

// NewGenerator creates a generator over the given client
func NewGenerator(client Client, cfg *Config) *Generator {
	return &Generator{
		client:  client,
		timeout: cfg.timeout(),
	}
}

// Analyze evaluates an answer's quality. The returned feedback is never
// nil; the second return reports whether it came from the remote generator
// (true) or is the deterministic fallback (false). WordCount and
// EstimatedDurationSeconds are always computed locally.
func (g *Generator) Analyze(ctx context.Context, text, questionType string) (*AnswerFeedback, bool) {
	fb, ok := g.analyzeRemote(ctx, text, questionType)
	if !ok {
		fb = fallbackAnswerFeedback()
	}
	fb.WordCount = CountWords(text)
	fb.EstimatedDurationSeconds = EstimateDurationSeconds(text)
	return fb, ok
}

func (g *Generator) analyzeRemote(ctx context.Context, text, questionType string) (*AnswerFeedback, bool) {
	raw, err := g.generate(ctx, buildAnalyzePrompt(text, questionType))
	if err != nil {
		log.Printf("[feedback] analyze call failed: %v", err)
		return nil, false
	}

	block := ExtractJSONBlock(raw)
	if block == "" {
		log.Printf("[feedback] analyze reply contained no JSON block")
		return nil, false
	}
	if err := ValidateAnswerFeedback(block); err != nil {
		log.Printf("[feedback] analyze payload rejected: %v", err)
		return nil, false
	}

	var fb AnswerFeedback
	if err := json.Unmarshal([]byte(block), &fb); err != nil {
		log.Printf("[feedback] analyze payload unmarshal failed: %v", err)
		return nil, false
	}

	clampAnswerScores(&fb)
	return &fb, true
}

// ComparePractice grades a practice delivery against the prepared answer.
// Same contract as Analyze: never nil, second return reports remote success.
func (g *Generator) ComparePractice(ctx context.Context, originalText, practiceText, questionType string) (*PracticeFeedback, bool) {
	raw, err := g.generate(ctx, buildComparePrompt(originalText, practiceText, questionType))
	if err != nil {
		log.Printf("[feedback] practice comparison call failed: %v", err)
		return fallbackPracticeFeedback(), false
	}

	block := ExtractJSONBlock(raw)
	if block == "" {
		log.Printf("[feedback] practice comparison reply contained no JSON block")
		return fallbackPracticeFeedback(), false
	}
	if err := ValidatePracticeFeedback(block); err != nil {
		log.Printf("[feedback] practice comparison payload rejected: %v", err)
		return fallbackPracticeFeedback(), false
	}

	var fb PracticeFeedback
	if err := json.Unmarshal([]byte(block), &fb); err != nil {
		log.Printf("[feedback] practice comparison payload unmarshal failed: %v", err)
		return fallbackPracticeFeedback(), false
	}

	clampPracticeScores(&fb)
	return &fb, true
}

// Close releases the underlying client
func (g *Generator) Close() error {
	return g.client.Close()
}

func (g *Generator) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.client.GenerateText(ctx, prompt)
}

// CountWords counts whitespace-delimited tokens
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// EstimateDurationSeconds estimates spoken delivery time at the assumed
// words-per-minute rate, rounded up to a whole second.
func EstimateDurationSeconds(text string) int {
	words := CountWords(text)
	if words == 0 {
		return 0
	}
	// ceil(words / wpm * 60)
	return (words*60 + wordsPerMinute - 1) / wordsPerMinute
}

// fallbackAnswerFeedback returns the fixed payload used when analysis
// cannot be obtained. Deterministic so repeated failures look identical.
func fallbackAnswerFeedback() *AnswerFeedback {
	return &AnswerFeedback{
		ClarityScore:    fallbackScore,
		StarMethodScore: fallbackScore,
		StructureScore:  fallbackScore,
		ContentScore:    fallbackScore,
		OverallScore:    fallbackScore,
		Strengths:       []string{},
		Suggestions:     []string{UnavailableMessage},
		StarAnalysis:    StarAnalysis{},
	}
}

// fallbackPracticeFeedback returns the fixed payload used when the
// comparison cannot be obtained.
func fallbackPracticeFeedback() *PracticeFeedback {
	return &PracticeFeedback{
		Score:        fallbackScore,
		Strengths:    []string{},
		Improvements: []string{},
		ScoreBreakdown: ScoreBreakdown{
			Clarity:   fallbackScore,
			Structure: fallbackScore,
			Content:   fallbackScore,
			Delivery:  fallbackScore,
		},
		ComparisonNote: UnavailableMessage,
	}
}

func clampAnswerScores(fb *AnswerFeedback) {
	fb.ClarityScore = clampScore(fb.ClarityScore)
	fb.StarMethodScore = clampScore(fb.StarMethodScore)
	fb.StructureScore = clampScore(fb.StructureScore)
	fb.ContentScore = clampScore(fb.ContentScore)
	fb.OverallScore = clampScore(fb.OverallScore)
}

func clampPracticeScores(fb *PracticeFeedback) {
	fb.Score = clampScore(fb.Score)
	fb.ScoreBreakdown.Clarity = clampScore(fb.ScoreBreakdown.Clarity)
	fb.ScoreBreakdown.Structure = clampScore(fb.ScoreBreakdown.Structure)
	fb.ScoreBreakdown.Content = clampScore(fb.ScoreBreakdown.Content)
	fb.ScoreBreakdown.Delivery = clampScore(fb.ScoreBreakdown.Delivery)
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}
