// Package services implements the pipeline stages. Each service is a
// function from one on-disk artifact to the next: it validates its
// source path, applies its transformation, writes its outputs, and
// returns an explicit stage result. Services orchestrate calls to
// driven ports (extractors, the drafter, the reviewer) but hold no
// state between invocations beyond the filesystem.
package services
