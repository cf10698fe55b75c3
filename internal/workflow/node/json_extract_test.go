package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
		check   func(t *testing.T, got string)
	}{
		{
			name: "plain object",
			in:   `{"verdict":"AI-Generated","confidence":82}`,
			check: func(t *testing.T, got string) {
				assert.JSONEq(t, `{"verdict":"AI-Generated","confidence":82}`, got)
			},
		},
		{
			name: "prose and code fence around object",
			in:   "Here is the analysis:\n```json\n{\"score\": 91}\n```\nHope it helps.",
			check: func(t *testing.T, got string) {
				assert.JSONEq(t, `{"score":91}`, got)
			},
		},
		{
			name: "braces inside string literals",
			in:   `result: {"reason":"uses } and { freely","nested":{"a":"\"}\""}} trailing }`,
			check: func(t *testing.T, got string) {
				assert.JSONEq(t, `{"reason":"uses } and { freely","nested":{"a":"\"}\""}}`, got)
			},
		},
		{
			name: "two objects picks the first",
			in:   `{"a":1} and later {"b":2}`,
			check: func(t *testing.T, got string) {
				assert.JSONEq(t, `{"a":1}`, got)
			},
		},
		{
			name: "stray open brace before real object",
			in:   `use { carefully. {"a":1}`,
			check: func(t *testing.T, got string) {
				assert.JSONEq(t, `{"a":1}`, got)
			},
		},
		{
			name: "invalid first span falls through to valid one",
			in:   `{not json} {"ok":true}`,
			check: func(t *testing.T, got string) {
				assert.JSONEq(t, `{"ok":true}`, got)
			},
		},
		{name: "no braces", in: "I cannot help with that.", wantErr: ErrJSONNotFound},
		{name: "empty", in: "", wantErr: ErrJSONNotFound},
		{name: "unbalanced", in: `{"score": 91`, wantErr: ErrJSONNotFound},
		{name: "balanced but malformed", in: `{"score": 91,}`, wantErr: ErrJSONParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, got.Raw)
		})
	}
}

func TestExtractJSONObjectIgnoresBraceFreeNoise(t *testing.T) {
	obj := `{"verdict":"Human-Written","metrics":{"perplexity":40}}`
	for _, noise := range []string{"", "Sure!", "Result follows:\n\n", "```json\n"} {
		for _, suffix := range []string{"", "\n```", " Let me know if you need more."} {
			got, err := ExtractJSONObject(noise + obj + suffix)
			require.NoError(t, err)
			assert.JSONEq(t, obj, got.Raw)
		}
	}
}
