package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAnswerFeedback(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{
			name:    "all required scores",
			payload: `{"clarity_score": 7, "star_method_score": 6, "structure_score": 8, "content_score": 7, "overall_score": 7}`,
			wantErr: false,
		},
		{
			name:    "missing overall_score",
			payload: `{"clarity_score": 7, "star_method_score": 6, "structure_score": 8, "content_score": 7}`,
			wantErr: true,
		},
		{
			name:    "score above range",
			payload: `{"clarity_score": 11, "star_method_score": 6, "structure_score": 8, "content_score": 7, "overall_score": 7}`,
			wantErr: true,
		},
		{
			name:    "score is a string",
			payload: `{"clarity_score": "seven", "star_method_score": 6, "structure_score": 8, "content_score": 7, "overall_score": 7}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnswerFeedback(tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePracticeFeedback(t *testing.T) {
	assert.NoError(t, ValidatePracticeFeedback(`{"score": 6.5}`))
	assert.Error(t, ValidatePracticeFeedback(`{"comparison_note": "fine"}`))
	assert.Error(t, ValidatePracticeFeedback(`{"score": -1}`))
}
