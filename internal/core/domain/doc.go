// Package domain contains the pipeline's core entities: chunks, draft
// and canonical records, the directory layout, and stage results.
// It has no dependencies outside the standard library.
package domain
