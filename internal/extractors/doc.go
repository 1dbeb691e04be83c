// Package extractors holds format-specific document extractors used by
// the ingest stage. Each subpackage implements driven.Extractor for one
// file format; dispatch between them is purely by file extension.
package extractors
