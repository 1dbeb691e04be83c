package domain

// Stage names one pipeline step.
type Stage string

// Pipeline stages in execution order.
const (
	StageIngest       Stage = "ingest"
	StageRefine       Stage = "refine"
	StageSegment      Stage = "segment"
	StageDraft        Stage = "draft"
	StageCanonicalize Stage = "canonicalize"
)

// StageResult is the explicit outcome of one stage invocation.
// Outputs lists every file the stage wrote, in a stable order; they are
// the stage's sole product and what downstream tooling consumes.
type StageResult struct {
	Stage   Stage
	Source  string
	Outputs []string
}
