package postprocess

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object",
			in:   `{"results": []}`,
			want: `{"results": []}`,
		},
		{
			name: "fenced with language tag",
			in:   "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "fenced without language tag",
			in:   "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "prose before and after",
			in:   "Here is my evaluation:\n{\"a\": 1}\nHope that helps!",
			want: `{"a": 1}`,
		},
		{
			name: "thinking block stripped",
			in:   "<thinking>{\"wrong\": true}</thinking>\n{\"a\": 1}",
			want: `{"a": 1}`,
		},
		{
			name: "think tag variant",
			in:   "<think>\nsome reasoning\n</think>{\"a\": 1}",
			want: `{"a": 1}`,
		},
		{
			name: "nested objects",
			in:   `text {"outer": {"inner": 1}} trailing`,
			want: `{"outer": {"inner": 1}}`,
		},
		{
			name: "braces inside string values",
			in:   `{"msg": "use { and } freely"} extra`,
			want: `{"msg": "use { and } freely"}`,
		},
		{
			name: "escaped quote inside string",
			in:   `{"msg": "she said \"hi\" {"} extra`,
			want: `{"msg": "she said \"hi\" {"}`,
		},
		{
			name: "no object returns cleaned text",
			in:   "no json here",
			want: "no json here",
		},
		{
			name: "unbalanced object returns text",
			in:   `{"a": 1`,
			want: `{"a": 1`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.in); got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
