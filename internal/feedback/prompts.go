package feedback

import (
	"fmt"
	"strings"
)

// buildAnalyzePrompt constructs the quality-analysis prompt for one answer
func buildAnalyzePrompt(text, questionType string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert interview coach. Evaluate the following ")
	sb.WriteString(questionType)
	sb.WriteString(" interview answer.\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString(`{
  "clarity_score": number (0-10),
  "star_method_score": number (0-10),
  "structure_score": number (0-10),
  "content_score": number (0-10),
  "overall_score": number (0-10),
  "strengths": ["string"],
  "suggestions": ["string"],
  "star_analysis": {"situation": bool, "task": bool, "action": bool, "result": bool}
}`)
	sb.WriteString("\n\nIMPORTANT:\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")
	sb.WriteString("- star_analysis marks which STAR components (Situation, Task, Action, Result) the answer contains.\n\n")

	sb.WriteString("Answer:\n\"\"\"\n")
	sb.WriteString(text)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// buildComparePrompt constructs the practice-comparison prompt
func buildComparePrompt(originalText, practiceText, questionType string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(
		"You are an expert interview coach. A candidate practiced delivering their prepared %s answer. "+
			"Compare the practice delivery against the prepared answer and grade the delivery.\n\n",
		questionType))

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString(`{
  "score": number (0-10),
  "strengths": ["string"],
  "improvements": ["string"],
  "score_breakdown": {"clarity": number, "structure": number, "content": number, "delivery": number},
  "comparison_note": "string"
}`)
	sb.WriteString("\n\nIMPORTANT:\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")
	sb.WriteString("- comparison_note is a one-sentence summary of how the practice differed from the prepared answer.\n\n")

	sb.WriteString("Prepared answer:\n\"\"\"\n")
	sb.WriteString(originalText)
	sb.WriteString("\n\"\"\"\n\n")

	sb.WriteString("Practice delivery:\n\"\"\"\n")
	sb.WriteString(practiceText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}
