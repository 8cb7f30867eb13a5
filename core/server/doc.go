// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this
// package defines the configuration structures and valid values for
// server settings, such as the upload size cap for raw DEX files.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key, and the maximum
// accepted upload size. The parse core places no bound on its input; the
// bound lives here, at the ingestion edge.
package server
