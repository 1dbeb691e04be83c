package driven

import (
	"context"

	"github.com/crucible-labs/forge-cli/internal/core/domain"
)

// Reviewer gathers a human decision for one draft record.
// The terminal implementation blocks on stdin per record; other
// implementations may answer from a file or UI. Records are reviewed
// strictly one at a time, in input order.
type Reviewer interface {
	Review(ctx context.Context, rec domain.DraftRecord) (domain.ReviewDecision, error)
}
