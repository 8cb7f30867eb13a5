package models

import "dex-ingest/core/dex"

// IngestReport is the response body for a successful ingest request.
type IngestReport struct {
	// ID identifies the ingested file for later retrieval.
	ID string `json:"id"`
	// Archived reports whether the raw file was stored in the archive bucket.
	Archived bool `json:"archived"`
	// Persisted reports whether the parse outcome was written to the database.
	Persisted bool `json:"persisted"`
	// Result is the full parse outcome.
	Result *dex.ParseResult `json:"result"`
}

// FileDetail is the response body for an audit file lookup.
type FileDetail struct {
	File       AuditFile      `json:"file"`
	Selections []SelectionRow `json:"selections"`
	Issues     []ParseIssue   `json:"issues"`
}
