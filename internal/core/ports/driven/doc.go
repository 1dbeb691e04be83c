// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): document extraction, PDF page extraction,
// LLM drafting, and human review.
package driven
