package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain json",
			input: `{"summary": "ok"}`,
			want:  `{"summary": "ok"}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"summary\": \"ok\"}\n```",
			want:  `{"summary": "ok"}`,
		},
		{
			name:  "bare fence",
			input: "```\n{\"summary\": \"ok\"}\n```",
			want:  `{"summary": "ok"}`,
		},
		{
			name:  "fence with surrounding prose",
			input: "Here you go:\n```json\n{\"a\": 1}\n```\nLet me know!",
			want:  `{"a": 1}`,
		},
		{
			name:  "unclosed fence falls back to trimmed input",
			input: "```json\n{\"a\": 1}",
			want:  "```json\n{\"a\": 1}",
		},
		{
			name:  "whitespace trimmed",
			input: "  {\"a\": 1}\n",
			want:  `{"a": 1}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.input); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
