package assessment

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/hiredesk/hiredesk/internal/types"
)

// questionSetSchema is the structural contract for generator output. The
// semantic checks in validateQuestions cover the same ground; the schema
// pass yields field-level diagnostics for logging before unmarshalling.
const questionSetSchema = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["question", "options", "correct_index"],
    "properties": {
      "question": {"type": "string"},
      "options": {
        "type": "array",
        "items": {"type": "string"}
      },
      "correct_index": {"type": "integer"}
    }
  }
}`

const (
	minQuestions       = 5
	optionsPerQuestion = 4
)

// parseQuestionSet validates raw generator output against the question-set
// schema and decodes it. Structural violations are reported as
// ErrMalformedGeneration.
func parseQuestionSet(raw string) ([]types.Question, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(questionSetSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return nil, &ErrMalformedGeneration{Reason: fmt.Sprintf("output is not valid JSON: %v", err)}
	}
	if !result.Valid() {
		reason := "output does not match the question schema"
		if errs := result.Errors(); len(errs) > 0 {
			reason = fmt.Sprintf("%s: %s", reason, errs[0].String())
		}
		return nil, &ErrMalformedGeneration{Reason: reason}
	}

	var questions []types.Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, &ErrMalformedGeneration{Reason: fmt.Sprintf("failed to decode question set: %v", err)}
	}

	if err := validateQuestions(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// validateQuestions enforces the semantic rules on a decoded question set:
// at least five questions, non-empty text, exactly four options, and a
// correct-option index inside the option range.
func validateQuestions(questions []types.Question) error {
	if len(questions) < minQuestions {
		return &ErrMalformedGeneration{
			Reason: fmt.Sprintf("got %d questions, need at least %d", len(questions), minQuestions),
		}
	}
	for i, q := range questions {
		if q.Text == "" {
			return &ErrMalformedGeneration{Reason: fmt.Sprintf("question %d has empty text", i+1)}
		}
		if len(q.Options) != optionsPerQuestion {
			return &ErrMalformedGeneration{
				Reason: fmt.Sprintf("question %d has %d options, need exactly %d", i+1, len(q.Options), optionsPerQuestion),
			}
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= optionsPerQuestion {
			return &ErrMalformedGeneration{
				Reason: fmt.Sprintf("question %d has correct_index %d outside [0,%d]", i+1, q.CorrectIndex, optionsPerQuestion-1),
			}
		}
	}
	return nil
}
