package feedback

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// JSON Schemas for the two remote payload shapes. A reply that parses as
// JSON but fails its schema is treated the same as a transport failure.

const answerFeedbackSchema = `{
  "type": "object",
  "required": ["clarity_score", "star_method_score", "structure_score", "content_score", "overall_score"],
  "properties": {
    "clarity_score":     {"type": "number", "minimum": 0, "maximum": 10},
    "star_method_score": {"type": "number", "minimum": 0, "maximum": 10},
    "structure_score":   {"type": "number", "minimum": 0, "maximum": 10},
    "content_score":     {"type": "number", "minimum": 0, "maximum": 10},
    "overall_score":     {"type": "number", "minimum": 0, "maximum": 10},
    "strengths":   {"type": "array", "items": {"type": "string"}},
    "suggestions": {"type": "array", "items": {"type": "string"}},
    "star_analysis": {
      "type": "object",
      "properties": {
        "situation": {"type": "boolean"},
        "task":      {"type": "boolean"},
        "action":    {"type": "boolean"},
        "result":    {"type": "boolean"}
      }
    }
  }
}`

const practiceFeedbackSchema = `{
  "type": "object",
  "required": ["score"],
  "properties": {
    "score":        {"type": "number", "minimum": 0, "maximum": 10},
    "strengths":    {"type": "array", "items": {"type": "string"}},
    "improvements": {"type": "array", "items": {"type": "string"}},
    "score_breakdown": {
      "type": "object",
      "properties": {
        "clarity":   {"type": "number", "minimum": 0, "maximum": 10},
        "structure": {"type": "number", "minimum": 0, "maximum": 10},
        "content":   {"type": "number", "minimum": 0, "maximum": 10},
        "delivery":  {"type": "number", "minimum": 0, "maximum": 10}
      }
    },
    "comparison_note": {"type": "string"}
  }
}`

// validateAgainstSchema checks a JSON document against a schema string
func validateAgainstSchema(schemaJSON, documentJSON string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewStringLoader(documentJSON)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("payload does not match schema: %s", errs[0].String())
		}
		return fmt.Errorf("payload does not match schema")
	}
	return nil
}

// ValidateAnswerFeedback checks a parsed analyze payload
func ValidateAnswerFeedback(documentJSON string) error {
	return validateAgainstSchema(answerFeedbackSchema, documentJSON)
}

// ValidatePracticeFeedback checks a parsed practice-comparison payload
func ValidatePracticeFeedback(documentJSON string) error {
	return validateAgainstSchema(practiceFeedbackSchema, documentJSON)
}
