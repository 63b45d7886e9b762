package llm

import "testing"

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"news_items":[]}`,
			want:  `{"news_items":[]}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"script\":\"hola\"}\n```",
			want:  `{"script":"hola"}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"script\":\"hola\"}\n```",
			want:  `{"script":"hola"}`,
		},
		{
			name:  "drops prose around the object",
			input: "Aquí tienes las noticias:\n{\"news_items\":[]}\n¡Saludos!",
			want:  `{"news_items":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
