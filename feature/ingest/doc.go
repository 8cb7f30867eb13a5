// Package ingest exposes audit file parsing as an HTTP feature.
//
// It accepts raw vending machine audit transmissions, runs them through the
// parse pipeline (core/dex), archives the raw bytes in object storage, and
// persists the consolidated outcome for later lookup.
//
// # Endpoints
//
//   - POST /dex          Parse a raw transmission from the request body.
//   - GET  /dex/:id      Retrieve a previously ingested file with its
//     selections and recorded issues.
//   - GET  /dex/:id/raw  Stream the archived raw transmission.
//
// # Degraded modes
//
// Both object storage and the database are optional. Without storage the
// raw file is not archived; without the database the outcome is not
// persisted and lookups return 503. Parsing itself always works.
package ingest
