package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		present bool
		valid   bool
		value   int64
	}{
		{name: "number", input: `{"v": 3}`, present: true, valid: true, value: 3},
		{name: "numeric string", input: `{"v": "3"}`, present: true, valid: true, value: 3},
		{name: "padded numeric string", input: `{"v": " 12 "}`, present: true, valid: true, value: 12},
		{name: "negative", input: `{"v": -1}`, present: true, valid: true, value: -1},
		{name: "float", input: `{"v": 1.5}`, present: true, valid: false},
		{name: "word", input: `{"v": "Science"}`, present: true, valid: false},
		{name: "null", input: `{"v": null}`, present: true, valid: false},
		{name: "object", input: `{"v": {"id": 1}}`, present: true, valid: false},
		{name: "missing", input: `{}`, present: false, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				V FlexibleInt `json:"v"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.input), &body))
			assert.Equal(t, tt.present, body.V.Present)
			assert.Equal(t, tt.valid, body.V.Valid)
			if tt.valid {
				assert.Equal(t, tt.value, body.V.Value)
			}
		})
	}
}

func TestCreateQuestionRequest_Decode(t *testing.T) {
	raw := `{"question":"What is the capital of Austria?","answer":"Vienna","category":"3","difficulty":1}`

	var req CreateQuestionRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))

	require.NotNil(t, req.Question)
	assert.Equal(t, "What is the capital of Austria?", *req.Question)
	require.NotNil(t, req.Answer)
	assert.Equal(t, "Vienna", *req.Answer)
	assert.Equal(t, NewFlexibleInt(3).Value, req.Category.Value)
	assert.True(t, req.Difficulty.Valid)
	assert.Equal(t, int64(1), req.Difficulty.Value)
}

func TestQuizResponse_NullQuestion(t *testing.T) {
	out, err := json.Marshal(QuizResponse{Success: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"question":null}`, string(out))
}
