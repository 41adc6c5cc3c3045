package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_RewriteResponse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"text", `{"tailored": "Led teams", "changes": ["reworded"]}`, false},
		{"bullets", `{"tailored": ["a", "b"], "changes": []}`, false},
		{"no changes", `{"tailored": "x"}`, false},
		{"missing tailored", `{"changes": []}`, true},
		{"number", `{"tailored": 42}`, true},
		{"mixed array", `{"tailored": ["a", 1]}`, true},
		{"not json", `tailored: x`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(RewriteResponse, []byte(tt.doc))
			if tt.wantErr {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.NotEmpty(t, ve.Errors)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_Session(t *testing.T) {
	valid := `{
		"id": "abc",
		"document": {
			"contact": {"name": "John Doe"},
			"sections": {"summary": {"shape": "text", "text": "Built tools."}},
			"raw_text": "John Doe\nSummary\nBuilt tools."
		},
		"requirements": [{"term": "migration", "category": "skill", "weight": 1}],
		"edits": {
			"summary": {
				"accepted": true,
				"original": {"shape": "text", "text": "Built tools."},
				"tailored": {"shape": "text", "text": "Built tools."},
				"override": null,
				"changes": null
			}
		}
	}`
	assert.NoError(t, Validate(Session, []byte(valid)))

	invalid := `{
		"document": {"sections": {"hobbies": {"shape": "text"}}, "raw_text": ""},
		"edits": {"education": {"accepted": "yes"}}
	}`
	err := Validate(Session, []byte(invalid))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), Session)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", []byte(`{}`))
	var le *SchemaLoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "nope.schema.json", le.Name)
}

func TestValidateString(t *testing.T) {
	schema := `{"type": "object", "required": ["a"]}`
	assert.NoError(t, ValidateString(schema, `{"a": 1}`))
	assert.Error(t, ValidateString(schema, `{}`))
}
