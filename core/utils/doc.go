// Package utils provides common utility functions for dex-ingest.
// It holds the defensive type-conversion helpers shared by the DEX
// decoders and the persistence layer.
package utils
