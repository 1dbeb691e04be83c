package driven

import (
	"context"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
)

// Drafter asks a language model for a semantic annotation of one chunk.
// The returned content is the raw model output: expected to be a JSON
// object, but callers must tolerate arbitrary text. A model response is
// unreliable by contract; transport failures are returned as errors.
type Drafter interface {
	// Draft returns the raw model content for the given chunk.
	Draft(ctx context.Context, chunk domain.Chunk) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}
