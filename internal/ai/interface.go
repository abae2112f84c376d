package ai

import (
	"context"
)

// Invoker is the contract the planner uses to talk to a language model.
// Implementations wrap transport failures with types.ErrUpstream and schema
// mismatches with types.ErrParse.
type Invoker interface {
	// GenerateStructured asks for a JSON object matching schema and decodes it into out.
	GenerateStructured(ctx context.Context, prompt string, schema *Schema, out any) error

	// GenerateText returns free-form text (markdown) for prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)
}
