package llm

import "context"

// Completer turns a system and a user prompt into the model's raw text answer.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Name() string
}

// ImageGenerator returns a temporary URL for an image matching prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}
